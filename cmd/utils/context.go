package utils

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KAsare1/blog-server/cmd/models"
	"github.com/KAsare1/blog-server/db"
)

type contextKey string

const IdentityKey contextKey = "identity"

const (
	AuthCookieName = "Authorization"
	bearerPrefix   = "Bearer "
)

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentityFromContext(r *http.Request) (models.Identity, error) {
	identity, ok := r.Context().Value(IdentityKey).(models.Identity)
	if !ok {
		return models.Identity{}, Unauthenticated("login is required")
	}
	return identity, nil
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (models.User, error)
}

type Authenticator struct {
	tokens *TokenManager
	users  UserLookup
	log    *slog.Logger
}

func NewAuthenticator(tokens *TokenManager, users UserLookup, log *slog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: log}
}

// Middleware rejects requests without a valid token and attaches the caller's identity.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.authenticate(r)
		if err != nil {
			WriteError(w, r, a.log, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (models.Identity, error) {
	tokenString, ok := bearerToken(r)
	if !ok {
		return models.Identity{}, Unauthenticated("login is required")
	}

	userID, err := a.tokens.Parse(tokenString)
	if err != nil {
		a.log.DebugContext(r.Context(), "token rejected", "error", err)
		return models.Identity{}, Unauthenticated("login is required")
	}

	user, err := a.users.GetUserByID(r.Context(), userID)
	if errors.Is(err, db.ErrNotFound) {
		return models.Identity{}, Unauthenticated("login is required")
	}
	if err != nil {
		return models.Identity{}, OperationFailed("failed to authenticate", err)
	}

	return models.Identity{UserID: user.ID, Nickname: user.Nickname}, nil
}

// bearerToken reads "Bearer <token>" from the auth cookie, falling back to the header.
func bearerToken(r *http.Request) (string, bool) {
	if c, err := r.Cookie(AuthCookieName); err == nil {
		if token, ok := parseBearer(c.Value); ok {
			return token, true
		}
	}
	return parseBearer(r.Header.Get("Authorization"))
}

func parseBearer(value string) (string, bool) {
	if unescaped, err := url.QueryUnescape(value); err == nil {
		value = unescaped
	}
	value = strings.Trim(value, `"`)
	if !strings.HasPrefix(value, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(value, bearerPrefix))
	return token, token != ""
}

// AuthCookie is the cookie set on login.
func AuthCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    bearerPrefix + token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
