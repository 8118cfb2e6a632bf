package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
)

// Field names accepted by [NoteValidator].
const (
	FieldContent = "content"
	FieldFile    = "file"
)

// NoteValidator validates [models.NewNote] before it is stored.
type NoteValidator struct {
}

func NewNoteValidator() Validator {
	return &NoteValidator{}
}

func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NewNote:
		return v.validateNewNote(value, fields...)
	case *models.NewNote:
		return v.validateNewNote(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

// validateNewNote enforces that a note carries text, a file, or both.
// Default validated fields: content, file.
func (v *NoteValidator) validateNewNote(note models.NewNote, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent, FieldFile}
	}

	for _, f := range fields {
		switch f {
		case FieldContent:
			if strings.TrimSpace(note.Content) == "" && note.File == nil {
				return ErrEmptyNote
			}
		case FieldFile:
			if note.File == nil {
				continue
			}
			if strings.TrimSpace(note.File.Name) == "" {
				return ErrEmptyFileName
			}
			if note.File.Size < 0 {
				return ErrNegativeFileSize
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
