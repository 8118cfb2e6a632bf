package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

// errorStatuses is checked in order; more specific errors come before the
// parents they wrap.
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{service.ErrStorageQuotaExceeded, http.StatusRequestEntityTooLarge},
	{store.ErrUserLimitReached, http.StatusForbidden},
	{service.ErrQuotaExceeded, http.StatusForbidden},

	{store.ErrUserAlreadyExists, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrNoteNotFound, http.StatusNotFound},
	{store.ErrFileNotFound, http.StatusNotFound},
	{store.ErrUploadTooLarge, http.StatusBadRequest},
	{store.ErrStorageIO, http.StatusInternalServerError},

	{ErrAdminOnly, http.StatusForbidden},
	{ErrNoUserInContext, http.StatusUnauthorized},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its mapped status. Client errors carry
// the rejection reason; server errors only the status text.
func writeError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Int("status", status).Msg(msg)
	http.Error(w, err.Error(), status)
}
