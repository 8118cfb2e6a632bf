package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/store"
)

var (
	// ErrValidation marks input rejected before any state was touched.
	ErrValidation = errors.New("validation error")

	ErrWrongPassword = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// ErrQuotaExceeded is the parent of every limit violation, including
// [store.ErrUserLimitReached].
var ErrQuotaExceeded = store.ErrQuotaExceeded

// ErrStorageQuotaExceeded is returned when an attachment would push a user
// over the per-user storage limit.
var ErrStorageQuotaExceeded = fmt.Errorf("%w: storage limit reached", ErrQuotaExceeded)

// ErrAdminUndeletable is returned when the administrator account is the
// target of a deletion. It matches [ErrValidation].
var ErrAdminUndeletable = fmt.Errorf("%w: the administrator account cannot be deleted", ErrValidation)
