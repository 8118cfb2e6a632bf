package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

type noteStore struct {
	root   string
	logger *logger.Logger

	// mu guards the read-modify-write cycle of every notes.json. Callers
	// additionally hold the per-user lock for multi-step operations.
	mu sync.Mutex
}

// NewNoteStore returns a [NoteStore] rooted at dataDir.
func NewNoteStore(dataDir string, logger *logger.Logger) NoteStore {
	logger.Debug().Str("data_dir", dataDir).Msg("NoteStore created")
	return &noteStore{
		root:   dataDir,
		logger: logger,
	}
}

// load returns the note mapping of username. Absent or unreadable files
// yield an empty mapping.
func (s *noteStore) load(username string) map[string]models.Note {
	notes := make(map[string]models.Note)

	err := readJSONFile(notesFilePath(s.root, username), &notes)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		return make(map[string]models.Note)
	default:
		s.logger.Warn().Err(err).Str("func", "*noteStore.load").Str("user", username).Msg("notes file unreadable, treating as empty")
		return make(map[string]models.Note)
	}

	return notes
}

func (s *noteStore) save(username string, notes map[string]models.Note) error {
	if err := requireUserDir(s.root, username); err != nil {
		s.logger.Warn().Err(err).Str("func", "*noteStore.save").Str("user", username).Msg("refusing to write notes of unprovisioned user")
		return err
	}

	if err := writeJSONFile(notesFilePath(s.root, username), notes); err != nil {
		s.logger.Err(err).Str("func", "*noteStore.save").Str("user", username).Msg("error writing notes file")
		return err
	}

	return nil
}

func (s *noteStore) ListNotes(ctx context.Context, username string) (map[string]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(username), nil
}

func (s *noteStore) GetNote(ctx context.Context, username, noteID string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.load(username)[noteID]
	if !ok {
		return models.Note{}, ErrNoteNotFound
	}

	return note, nil
}

// SaveNote inserts or replaces the note keyed by note.ID.
func (s *noteStore) SaveNote(ctx context.Context, username string, note models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.load(username)
	notes[note.ID] = note

	return s.save(username, notes)
}

func (s *noteStore) DeleteNote(ctx context.Context, username, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.load(username)
	if _, ok := notes[noteID]; !ok {
		return ErrNoteNotFound
	}
	delete(notes, noteID)

	return s.save(username, notes)
}
