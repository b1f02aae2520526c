package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"taskflow-service/core"
	"taskflow-service/pkg/res"
)

// WriteErr maps domain errors to HTTP statuses. Conflicts return 400, not
// 409, matching the public API contract. Unknown errors are logged and
// hidden behind a generic 500.
func WriteErr(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrBadArguments), errors.Is(err, core.ErrInvalidID):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrUserExists), errors.Is(err, core.ErrTagExists):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidCredentials), errors.Is(err, core.ErrUnauthenticated):
		res.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrForbidden), errors.Is(err, core.ErrPriorityProtected):
		res.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrPriorityNotFound),
		errors.Is(err, core.ErrTagNotFound),
		errors.Is(err, core.ErrTaskNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error("request failed", "error", err)
		res.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
