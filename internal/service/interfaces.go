package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	EnsureAdmin(ctx context.Context) error
	IsAdmin(username string) bool
}

// NoteService owns the note lifecycle of a single user. Every method takes
// the authenticated username explicitly.
type NoteService interface {
	AddNote(ctx context.Context, username string, note models.NewNote) (string, error)
	UpdateNote(ctx context.Context, username, noteID, content string) error
	DeleteNote(ctx context.Context, username, noteID string) error
	GetNote(ctx context.Context, username, noteID string) (models.Note, error)
	ListNotes(ctx context.Context, username string) ([]models.Note, error)
	ResolveDownload(ctx context.Context, username, noteID string) (models.Download, error)
	StorageUsage(ctx context.Context, username string) (models.StorageUsage, error)
}

type QuotaEnforcer interface {
	CheckAdd(ctx context.Context, username string, incomingSize int64) error
	Usage(ctx context.Context, username string) (models.StorageUsage, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.UserInfo, error)
	SetUserPassword(ctx context.Context, username, newPassword string) error
	DeleteUser(ctx context.Context, username string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
