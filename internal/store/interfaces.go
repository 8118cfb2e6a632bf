package store

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserStore is the global user registry kept in users.json.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUser(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
	DeleteUser(ctx context.Context, username string) error
}

// NoteStore holds the per-user note mapping kept in <user>/notes.json.
type NoteStore interface {
	ListNotes(ctx context.Context, username string) (map[string]models.Note, error)
	GetNote(ctx context.Context, username, noteID string) (models.Note, error)
	SaveNote(ctx context.Context, username string, note models.Note) error
	DeleteNote(ctx context.Context, username, noteID string) error
}

// AttachmentStore manages the attachment blobs under <user>/files.
type AttachmentStore interface {
	Save(ctx context.Context, username, noteID, fileName string, r io.Reader, declaredSize int64) (string, int64, error)
	Delete(ctx context.Context, username, noteID string) error
	Usage(ctx context.Context, username string) (int64, error)
	Resolve(ctx context.Context, username string, note models.Note) (string, error)
	Open(ctx context.Context, username string, note models.Note) (*os.File, error)
}

// TempSweeper removes temp files abandoned by interrupted atomic writes.
type TempSweeper interface {
	SweepTempFiles(ctx context.Context, maxAge time.Duration) (int, error)
}
