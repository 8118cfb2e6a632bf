// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the note service HTTP API.
//
// [NotesClient] hides request building, bearer token handling and response
// decoding. Non-2xx responses are mapped by mapHTTPError to the sentinel
// errors in errors.go, so callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notes_client_mock.go -package=mock

// NotesClient talks to the note service on behalf of one signed-in user.
type NotesClient interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the current bearer token, or "" before sign-in.
	Token() string

	// Register creates an account and stores the issued token.
	Register(ctx context.Context, credentials models.Credentials) error

	// Login authenticates and stores the issued token.
	Login(ctx context.Context, credentials models.Credentials) error

	ListNotes(ctx context.Context) (models.NotesResponse, error)

	// AddNote creates a note. A nil file sends a text-only JSON request.
	AddNote(ctx context.Context, content, timestamp string, file *models.Upload) (string, error)

	GetNote(ctx context.Context, noteID string) (models.Note, error)
	UpdateNote(ctx context.Context, noteID, content string) error
	DeleteNote(ctx context.Context, noteID string) error

	// DownloadFile streams the note attachment into w and returns the file
	// name announced by the server and the number of bytes written.
	DownloadFile(ctx context.Context, noteID string, w io.Writer) (string, int64, error)

	StorageUsage(ctx context.Context) (models.StorageUsage, error)

	ListUsers(ctx context.Context) (models.UsersResponse, error)
	SetUserPassword(ctx context.Context, username, password string) error
	DeleteUser(ctx context.Context, username string) error

	ServerVersion(ctx context.Context) (string, error)
}
