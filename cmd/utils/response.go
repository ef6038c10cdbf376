package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// HandlerFunc is an http handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

type ErrorBody struct {
	ErrorMessage string `json:"errorMessage"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// Handle adapts fn to http.Handler; returned errors go through WriteError.
func Handle(log *slog.Logger, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, log, err)
		}
	})
}

func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		log.ErrorContext(r.Context(), "unhandled error",
			slog.Group("http", "method", r.Method, "path", r.URL.Path),
			"error", err,
		)
		WriteJSON(w, http.StatusInternalServerError, ErrorBody{ErrorMessage: "internal server error"})
		return
	}

	if apiErr.Err != nil {
		log.WarnContext(r.Context(), "request failed",
			slog.Group("http", "method", r.Method, "path", r.URL.Path),
			"kind", apiErr.Kind,
			"status", apiErr.Status,
			"error", apiErr.Err,
		)
	}
	WriteJSON(w, apiErr.Status, ErrorBody{ErrorMessage: apiErr.Message})
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
