package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/KAsare1/blog-server/cmd/utils"
	"github.com/KAsare1/blog-server/config"
	"github.com/KAsare1/blog-server/db"
	"github.com/KAsare1/blog-server/service/forum"
	"github.com/KAsare1/blog-server/service/user"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type APIServer struct {
	config config.Config
	db     *gorm.DB
	log    *slog.Logger
	server *http.Server
}

func NewApiServer(cfg config.Config, db *gorm.DB, log *slog.Logger) *APIServer {
	s := &APIServer{
		config: cfg,
		db:     db,
		log:    log,
	}
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	return s
}

// Handler builds the full route tree and middleware chain.
func (s *APIServer) Handler() http.Handler {
	store := db.NewStore(s.db)
	tokens := utils.NewTokenManager(s.config.SecretKey, s.config.TokenTTL)
	auth := utils.NewAuthenticator(tokens, store, utils.Named(s.log, "auth"))

	router := mux.NewRouter()
	router.NotFoundHandler = utils.Handle(s.log, func(w http.ResponseWriter, r *http.Request) error {
		return utils.NotFound("resource does not exist")
	})
	router.MethodNotAllowedHandler = utils.Handle(s.log, func(w http.ResponseWriter, r *http.Request) error {
		return &utils.APIError{
			Kind:    utils.KindNotFound,
			Status:  http.StatusMethodNotAllowed,
			Message: "method not allowed",
		}
	})

	subrouter := router.PathPrefix("/api").Subrouter()

	userHandler := user.NewHandler(store, tokens, utils.Named(s.log, "service.user"))
	userHandler.RegisterRoutes(subrouter)

	forumHandler := forum.NewPostHandler(store, auth, utils.Named(s.log, "service.forum"))
	forumHandler.RegisterRoutes(subrouter)

	var handler http.Handler = router
	handler = handlers.CORS(
		handlers.AllowedOrigins(s.config.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", utils.RequestIDHeader}),
		handlers.AllowCredentials(),
	)(handler)
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError)),
	)(handler)
	handler = utils.RequestLogger(utils.Named(s.log, "http"))(handler)

	return handler
}

// Run serves until the listener fails or Shutdown is called.
func (s *APIServer) Run() error {
	s.log.Info("server running", "addr", s.config.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *APIServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
