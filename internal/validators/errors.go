package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogin       = errors.New("login is required")
	ErrInvalidLogin     = errors.New("login may contain only letters, digits, '_', '.' and '-' (1-64 characters)")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 bytes")
	ErrEmptyNote        = errors.New("note must have content or a file")
	ErrEmptyNoteID      = errors.New("note id is required")
	ErrEmptyFileName    = errors.New("file name is required")
	ErrNegativeFileSize = errors.New("file size must not be negative")
)
