package user

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/KAsare1/blog-server/cmd/models"
	"github.com/KAsare1/blog-server/cmd/utils"
	"github.com/KAsare1/blog-server/db"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 4

// Only the prefix is checked: "abc-def" is an accepted nickname.
var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,}`)

type Handler struct {
	users  db.UserRepository
	tokens *utils.TokenManager
	log    *slog.Logger
	cost   int
}

func NewHandler(users db.UserRepository, tokens *utils.TokenManager, log *slog.Logger) *Handler {
	return &Handler{
		users:  users,
		tokens: tokens,
		log:    log,
		cost:   bcrypt.DefaultCost,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.Handle("/signup", utils.Handle(h.log, h.handleSignup)).Methods("POST")
	router.Handle("/login", utils.Handle(h.log, h.handleLogin)).Methods("POST")
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) error {
	malformed := utils.ValidationFailed(http.StatusBadRequest, "request body is malformed")

	body, err := utils.DecodeFields(w, r)
	if err != nil || !body.Exactly("nickname", "password", "confirm") {
		return malformed
	}
	nickname, ok1 := body.String("nickname")
	password, ok2 := body.String("password")
	confirm, ok3 := body.String("confirm")
	if !ok1 || !ok2 || !ok3 {
		return malformed
	}

	if err := validateSignup(nickname, password, confirm); err != nil {
		return err
	}

	_, err = h.users.GetUserByNickname(r.Context(), nickname)
	switch {
	case err == nil:
		return utils.ValidationFailed(http.StatusPreconditionFailed, "nickname is already taken")
	case !errors.Is(err, db.ErrNotFound):
		return utils.OperationFailed("signup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return utils.ValidationFailed(http.StatusPreconditionFailed, "password format is invalid")
	}
	if err != nil {
		return utils.OperationFailed("signup failed", err)
	}

	user := models.User{Nickname: nickname, PasswordHash: string(hash)}
	if err := h.users.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return utils.ValidationFailed(http.StatusPreconditionFailed, "nickname is already taken")
		}
		return utils.OperationFailed("signup failed", err)
	}

	h.log.InfoContext(r.Context(), "user signed up", "user_id", user.ID)
	utils.WriteJSON(w, http.StatusCreated, utils.MessageBody{Message: "signup succeeded"})
	return nil
}

func validateSignup(nickname, password, confirm string) error {
	if !nicknamePattern.MatchString(nickname) {
		return utils.ValidationFailed(http.StatusPreconditionFailed, "nickname format is invalid")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return utils.ValidationFailed(http.StatusPreconditionFailed, "password format is invalid")
	}
	if strings.Contains(password, nickname) {
		return utils.ValidationFailed(http.StatusPreconditionFailed, "password must not contain the nickname")
	}
	if password != confirm {
		return utils.ValidationFailed(http.StatusPreconditionFailed, "passwords do not match")
	}
	return nil
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) error {
	malformed := utils.ValidationFailed(http.StatusBadRequest, "login failed")

	body, err := utils.DecodeFields(w, r)
	if err != nil || !body.Exactly("nickname", "password") {
		return malformed
	}
	nickname, ok1 := body.NonEmptyString("nickname")
	password, ok2 := body.NonEmptyString("password")
	if !ok1 || !ok2 {
		return malformed
	}

	badCredentials := utils.InvalidCredentials("check your nickname or password")

	user, err := h.users.GetUserByNickname(r.Context(), nickname)
	if errors.Is(err, db.ErrNotFound) {
		return badCredentials
	}
	if err != nil {
		return utils.OperationFailed("login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return badCredentials
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		return utils.OperationFailed("login failed", err)
	}

	http.SetCookie(w, utils.AuthCookie(token, expiresAt))
	utils.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
	return nil
}
