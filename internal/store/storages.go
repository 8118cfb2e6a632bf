package store

import (
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// Storages bundles every file-backed store sharing one data directory.
type Storages struct {
	UserStore       UserStore
	NoteStore       NoteStore
	AttachmentStore AttachmentStore
	TempSweeper     TempSweeper
}

// NewStorages builds all stores over cfg.Files.DataDir.
func NewStorages(cfg config.Storage, logger *logger.Logger) *Storages {
	dataDir := cfg.Files.DataDir
	logger.Info().Str("data_dir", dataDir).Msg("initializing file storages")

	return &Storages{
		UserStore:       NewUserStore(dataDir, logger),
		NoteStore:       NewNoteStore(dataDir, logger),
		AttachmentStore: NewAttachmentStore(dataDir, logger),
		TempSweeper:     NewTempSweeper(dataDir, logger),
	}
}
