package forum

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/KAsare1/blog-server/cmd/models"
	"github.com/KAsare1/blog-server/cmd/utils"
	"github.com/KAsare1/blog-server/db"
	"github.com/gorilla/mux"
)

type PostHandler struct {
	store db.Store
	likes *LikeService
	auth  *utils.Authenticator
	log   *slog.Logger
	now   func() time.Time
}

func NewPostHandler(store db.Store, auth *utils.Authenticator, log *slog.Logger) *PostHandler {
	return &PostHandler{
		store: store,
		likes: NewLikeService(store),
		auth:  auth,
		log:   log,
		now:   time.Now,
	}
}

func (h *PostHandler) RegisterRoutes(router *mux.Router) {
	// /posts/like must be registered before /posts/{postId}.
	router.Handle("/posts/like", h.protected(h.GetLikedPosts)).Methods("GET")

	// Post routes
	router.Handle("/posts", h.public(h.GetPosts)).Methods("GET")
	router.Handle("/posts", h.protected(h.CreatePost)).Methods("POST")
	router.Handle("/posts/{postId}", h.public(h.GetPost)).Methods("GET")
	router.Handle("/posts/{postId}", h.protected(h.UpdatePost)).Methods("PUT")
	router.Handle("/posts/{postId}", h.protected(h.DeletePost)).Methods("DELETE")

	// Like routes
	router.Handle("/posts/{postId}/like", h.protected(h.ToggleLike)).Methods("PUT")

	// Comment routes
	router.Handle("/posts/{postId}/comments", h.public(h.GetComments)).Methods("GET")
	router.Handle("/posts/{postId}/comments", h.protected(h.AddComment)).Methods("POST")
	router.Handle("/posts/{postId}/comments/{commentId}", h.protected(h.UpdateComment)).Methods("PUT")
	router.Handle("/posts/{postId}/comments/{commentId}", h.protected(h.DeleteComment)).Methods("DELETE")
}

func (h *PostHandler) public(fn utils.HandlerFunc) http.Handler {
	return utils.Handle(h.log, fn)
}

func (h *PostHandler) protected(fn utils.HandlerFunc) http.Handler {
	return h.auth.Middleware(utils.Handle(h.log, fn))
}

type postsResponse struct {
	Posts []models.PostSummary `json:"posts"`
}

type postResponse struct {
	Post models.Post `json:"post"`
}

type likeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

// GetPosts lists every post without content, newest first. No posts at all is a 404.
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) error {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		return utils.OperationFailed("failed to load posts", err)
	}
	if len(posts) == 0 {
		return utils.NotFound("no posts exist")
	}

	utils.WriteJSON(w, http.StatusOK, postsResponse{Posts: models.Summaries(posts)})
	return nil
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) error {
	identity, err := utils.GetIdentityFromContext(r)
	if err != nil {
		return err
	}

	title, content, err := decodePostBody(w, r)
	if err != nil {
		return err
	}

	now := h.now()
	post := models.Post{
		UserID:    identity.UserID,
		Nickname:  identity.Nickname,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.CreatePost(r.Context(), &post); err != nil {
		return utils.OperationFailed("failed to create the post", err)
	}

	utils.WriteJSON(w, http.StatusCreated, utils.MessageBody{Message: "post created"})
	return nil
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) error {
	post, err := h.loadPost(r)
	if err != nil {
		return err
	}

	utils.WriteJSON(w, http.StatusOK, postResponse{Post: post})
	return nil
}

// UpdatePost replaces title and content. Ownership is checked before the body.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) error {
	identity, err := utils.GetIdentityFromContext(r)
	if err != nil {
		return err
	}

	post, err := h.loadPost(r)
	if err != nil {
		return err
	}
	if post.UserID != identity.UserID {
		return utils.Forbidden("you are not allowed to edit this post")
	}

	title, content, err := decodePostBody(w, r)
	if err != nil {
		return err
	}

	if err := h.store.UpdatePost(r.Context(), post.ID, title, content, h.now()); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return utils.NotFound("post does not exist")
		}
		return utils.OperationFailed("failed to update the post", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.MessageBody{Message: "post updated"})
	return nil
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) error {
	identity, err := utils.GetIdentityFromContext(r)
	if err != nil {
		return err
	}

	post, err := h.loadPost(r)
	if err != nil {
		return err
	}
	if post.UserID != identity.UserID {
		return utils.Forbidden("you are not allowed to delete this post")
	}

	if err := h.store.DeletePost(r.Context(), post.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return utils.NotFound("post does not exist")
		}
		return utils.OperationFailed("failed to delete the post", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.MessageBody{Message: "post deleted"})
	return nil
}

func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) error {
	identity, err := utils.GetIdentityFromContext(r)
	if err != nil {
		return err
	}

	postID, err := utils.PathID(r, "postId", "post does not exist")
	if err != nil {
		return err
	}

	liked, err := h.likes.Toggle(r.Context(), identity.UserID, postID)
	if err != nil {
		return err
	}

	message := "like removed"
	if liked {
		message = "post liked"
	}
	utils.WriteJSON(w, http.StatusOK, likeResponse{Message: message, Liked: liked})
	return nil
}

// GetLikedPosts lists the caller's liked posts without content. None liked is a 404.
func (h *PostHandler) GetLikedPosts(w http.ResponseWriter, r *http.Request) error {
	identity, err := utils.GetIdentityFromContext(r)
	if err != nil {
		return err
	}

	posts, err := h.store.ListLikedPosts(r.Context(), identity.UserID)
	if err != nil {
		return utils.OperationFailed("failed to load liked posts", err)
	}
	if len(posts) == 0 {
		return utils.NotFound("no liked posts exist")
	}

	utils.WriteJSON(w, http.StatusOK, postsResponse{Posts: models.Summaries(posts)})
	return nil
}

func (h *PostHandler) loadPost(r *http.Request) (models.Post, error) {
	postID, err := utils.PathID(r, "postId", "post does not exist")
	if err != nil {
		return models.Post{}, err
	}

	post, err := h.store.GetPost(r.Context(), postID)
	if errors.Is(err, db.ErrNotFound) {
		return models.Post{}, utils.NotFound("post does not exist")
	}
	if err != nil {
		return models.Post{}, utils.OperationFailed("failed to load the post", err)
	}
	return post, nil
}

// decodePostBody accepts exactly {title, content}, both non-empty strings.
func decodePostBody(w http.ResponseWriter, r *http.Request) (string, string, error) {
	body, err := utils.DecodeFields(w, r)
	if err != nil {
		return "", "", utils.ValidationFailed(http.StatusBadRequest, "request body is malformed")
	}
	if !body.Exactly("title", "content") {
		return "", "", utils.ValidationFailed(http.StatusPreconditionFailed, "data format is invalid")
	}

	title, ok := body.NonEmptyString("title")
	if !ok {
		return "", "", utils.ValidationFailed(http.StatusPreconditionFailed, "post title format is invalid")
	}
	content, ok := body.NonEmptyString("content")
	if !ok {
		return "", "", utils.ValidationFailed(http.StatusPreconditionFailed, "post content format is invalid")
	}
	return title, content, nil
}
