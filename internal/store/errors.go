package store

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded is the parent of every limit violation. Callers match the
// broad class with [errors.Is] and the specific limit with the child sentinel.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Sentinel errors returned by the stores to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when registering a username that is
	// already present in the user registry.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserLimitReached is returned when the registry already holds the
	// maximum number of users. It matches [ErrQuotaExceeded].
	ErrUserLimitReached = fmt.Errorf("%w: user limit reached", ErrQuotaExceeded)

	// ErrNoUserWasFound is returned when a lookup by username matches nothing.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when a note id is absent from the owner's
	// note mapping.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrFileNotFound is returned when an attachment blob cannot be resolved
	// on disk.
	ErrFileNotFound = errors.New("file was not found")

	// ErrUploadTooLarge is returned when an attachment stream carries more
	// bytes than the size it declared.
	ErrUploadTooLarge = errors.New("upload exceeds declared size")
)

// ErrStorageIO wraps every failed write, rename or remove of the data
// directory.
var ErrStorageIO = errors.New("storage io error")
