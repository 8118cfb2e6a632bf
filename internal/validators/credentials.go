// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
)

// Field names accepted by [CredentialsValidator].
const (
	FieldLogin    = "login"
	FieldPassword = "password"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// usernamePattern restricts usernames to names that are safe as a single
// directory component.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// CredentialsValidator validates [models.Credentials].
type CredentialsValidator struct {
}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

// Validate checks the login and password of a [models.Credentials] value or
// pointer. Passing fields restricts the check to the named ones.
func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if err := ValidateUsername(c.Login); err != nil {
				return err
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
			if len(c.Password) > maxPasswordBytes {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateUsername reports whether username can be used as an account name
// and as the name of its data directory.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyLogin
	}
	if username == "." || username == ".." || !usernamePattern.MatchString(username) {
		return ErrInvalidLogin
	}

	return nil
}
