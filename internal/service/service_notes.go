// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteService drives the note lifecycle nonexistent -> active -> nonexistent.
// Every mutation for one user runs under that user's lock, so the quota check
// and the attachment write it guards cannot interleave with another write.
type noteService struct {
	notes       store.NoteStore
	attachments store.AttachmentStore
	quota       QuotaEnforcer
	locks       *UserLocks
	validator   validators.Validator

	newID func() string
	now   func() time.Time

	logger *logger.Logger
}

func NewNoteService(
	notes store.NoteStore,
	attachments store.AttachmentStore,
	quota QuotaEnforcer,
	locks *UserLocks,
	logger *logger.Logger,
) NoteService {
	return &noteService{
		notes:       notes,
		attachments: attachments,
		quota:       quota,
		locks:       locks,
		validator:   validators.NewNoteValidator(),
		newID:       utils.NewUUIDGenerator().Generate,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// AddNote stores a new note and its optional attachment and returns the new
// note id. With an attachment the quota is checked before any byte is
// written; a rejected note leaves nothing behind.
func (s *noteService) AddNote(ctx context.Context, username string, newNote models.NewNote) (string, error) {
	log := logger.FromContext(ctx).WithUser(username)

	if err := s.validator.Validate(ctx, newNote); err != nil {
		log.Error().Err(err).Msg("invalid note provided")
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	unlock := s.locks.Lock(username)
	defer unlock()

	note := models.Note{
		ID:        s.newID(),
		Content:   newNote.Content,
		Timestamp: newNote.Timestamp,
		CreatedAt: s.now(),
	}

	if file := newNote.File; file != nil {
		if err := s.quota.CheckAdd(ctx, username, file.Size); err != nil {
			return "", err
		}

		path, _, err := s.attachments.Save(ctx, username, note.ID, file.Name, file.Reader, file.Size)
		if err != nil {
			log.Err(err).Str("note_id", note.ID).Msg("error saving attachment")
			if errors.Is(err, store.ErrUploadTooLarge) {
				return "", fmt.Errorf("%w: %w", ErrValidation, err)
			}
			return "", fmt.Errorf("error saving attachment: %w", err)
		}

		note.HasFile = true
		note.FileName = store.BaseFileName(file.Name)
		note.FilePath = path
	}

	if err := s.notes.SaveNote(ctx, username, note); err != nil {
		log.Err(err).Str("note_id", note.ID).Msg("error saving note")
		if note.HasFile {
			if rmErr := s.attachments.Delete(ctx, username, note.ID); rmErr != nil {
				log.Err(rmErr).Str("note_id", note.ID).Msg("error removing orphaned attachment")
			}
		}
		return "", fmt.Errorf("error saving note: %w", err)
	}

	log.Info().Str("note_id", note.ID).Bool("has_file", note.HasFile).Msg("note created")
	return note.ID, nil
}

// UpdateNote replaces the content of an existing note. All other fields are
// preserved.
func (s *noteService) UpdateNote(ctx context.Context, username, noteID, content string) error {
	unlock := s.locks.Lock(username)
	defer unlock()

	note, err := s.notes.GetNote(ctx, username, noteID)
	if err != nil {
		return err
	}

	note.Content = content
	if err := s.notes.SaveNote(ctx, username, note); err != nil {
		logger.FromContext(ctx).Err(err).Str("user", username).Str("note_id", noteID).Msg("error updating note")
		return fmt.Errorf("error updating note: %w", err)
	}

	return nil
}

// DeleteNote removes a note and its attachment. A failure to remove the blob
// is logged and does not keep the note alive.
func (s *noteService) DeleteNote(ctx context.Context, username, noteID string) error {
	log := logger.FromContext(ctx).WithUser(username)

	unlock := s.locks.Lock(username)
	defer unlock()

	note, err := s.notes.GetNote(ctx, username, noteID)
	if err != nil {
		return err
	}

	if note.HasFile {
		if err := s.attachments.Delete(ctx, username, noteID); err != nil {
			log.Err(err).Str("note_id", noteID).Msg("error removing attachment")
		}
	}

	if err := s.notes.DeleteNote(ctx, username, noteID); err != nil {
		log.Err(err).Str("note_id", noteID).Msg("error deleting note")
		return fmt.Errorf("error deleting note: %w", err)
	}

	return nil
}

func (s *noteService) GetNote(ctx context.Context, username, noteID string) (models.Note, error) {
	return s.notes.GetNote(ctx, username, noteID)
}

// ListNotes returns the user's notes newest first by Timestamp, ties broken by
// CreatedAt.
func (s *noteService) ListNotes(ctx context.Context, username string) ([]models.Note, error) {
	mapping, err := s.notes.ListNotes(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	notes := make([]models.Note, 0, len(mapping))
	for _, note := range mapping {
		notes = append(notes, note)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Timestamp != notes[j].Timestamp {
			return notes[i].Timestamp > notes[j].Timestamp
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return notes, nil
}

// ResolveDownload opens the attachment of a note. The caller must close
// Download.Content.
func (s *noteService) ResolveDownload(ctx context.Context, username, noteID string) (models.Download, error) {
	note, err := s.notes.GetNote(ctx, username, noteID)
	if err != nil {
		return models.Download{}, err
	}
	if !note.HasFile {
		return models.Download{}, store.ErrFileNotFound
	}

	f, err := s.attachments.Open(ctx, username, note)
	if err != nil {
		return models.Download{}, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return models.Download{}, fmt.Errorf("%w: %w", store.ErrStorageIO, err)
	}

	return models.Download{
		FileName: note.FileName,
		Size:     info.Size(),
		Content:  f,
	}, nil
}

func (s *noteService) StorageUsage(ctx context.Context, username string) (models.StorageUsage, error) {
	return s.quota.Usage(ctx, username)
}
