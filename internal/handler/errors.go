package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/auth"
	"github.com/BuzzLyutic/tasklists/internal/repo"
	"github.com/BuzzLyutic/tasklists/internal/service"
	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

// handleErrors is the single error mapping of the JSON API.
func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.FieldError(w, r, http.StatusBadRequest, ve.Field, ve.Message)
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	default:
		logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}

// expected reports whether err is a user-facing failure rather than a fault.
func expected(err error) bool {
	return errors.Is(err, service.ErrValidation) ||
		errors.Is(err, repo.ErrorNotFound) ||
		errors.Is(err, repo.ErrorConflict)
}

// Unauthorized is the API rejection for a missing or invalid token.
func Unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	respond.Error(w, r, http.StatusUnauthorized, "unauthorized")
}

func currentUser(r *http.Request) int64 {
	id, _ := auth.UserID(r.Context())
	return id
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
