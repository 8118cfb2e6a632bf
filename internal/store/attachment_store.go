// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// defaultFileName replaces attachment names that reduce to nothing usable.
const defaultFileName = "file"

type attachmentStore struct {
	root   string
	logger *logger.Logger
}

// NewAttachmentStore returns an [AttachmentStore] rooted at dataDir.
func NewAttachmentStore(dataDir string, logger *logger.Logger) AttachmentStore {
	logger.Debug().Str("data_dir", dataDir).Msg("AttachmentStore created")
	return &attachmentStore{
		root:   dataDir,
		logger: logger,
	}
}

// Save streams r into <user>/files/<noteID>_<base(fileName)>. When
// declaredSize is non-negative the stream must not exceed it. It returns the
// blob path relative to the user directory and the number of bytes written.
func (s *attachmentStore) Save(ctx context.Context, username, noteID, fileName string, r io.Reader, declaredSize int64) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	if err := requireUserDir(s.root, username); err != nil {
		return "", 0, err
	}

	dir := filesDir(s.root, username)
	if err := os.Mkdir(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return "", 0, fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	name := noteID + "_" + BaseFileName(fileName)

	var written int64
	err := writeFileAtomic(filepath.Join(dir, name), func(w io.Writer) error {
		src := r
		if declaredSize >= 0 {
			src = io.LimitReader(r, declaredSize+1)
		}

		n, err := io.Copy(w, src)
		written = n
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStorageIO, err)
		}
		if declaredSize >= 0 && n > declaredSize {
			return ErrUploadTooLarge
		}
		return nil
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*attachmentStore.Save").Str("user", username).Str("note_id", noteID).Msg("error saving attachment")
		return "", 0, err
	}

	return filesDirName + "/" + name, written, nil
}

// Delete removes every blob whose name starts with "<noteID>_". Missing files
// or a missing directory are not an error.
func (s *attachmentStore) Delete(ctx context.Context, username, noteID string) error {
	entries, err := os.ReadDir(filesDir(s.root, username))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	prefix := noteID + "_"
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		err := os.Remove(filepath.Join(filesDir(s.root, username), entry.Name()))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrStorageIO, errors.Join(errs...))
	}

	return nil
}

// Usage sums the sizes of all regular files below the user directory.
func (s *attachmentStore) Usage(ctx context.Context, username string) (int64, error) {
	var total int64

	err := filepath.WalkDir(userDir(s.root, username), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		total += info.Size()

		return ctx.Err()
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	return total, nil
}

// Resolve finds the blob of note. A note with a stored file path resolves
// to that path or to nothing. Records without one fall back to
// files/<file_name> and then files/<note id>_<file_name>; a blob of another
// note is never returned.
func (s *attachmentStore) Resolve(ctx context.Context, username string, note models.Note) (string, error) {
	base := userDir(s.root, username)

	if note.FilePath != "" {
		candidate := filepath.Join(base, filepath.FromSlash(note.FilePath))
		if within(filesDir(s.root, username), candidate) && isRegularFile(candidate) {
			return candidate, nil
		}
		return "", ErrFileNotFound
	}

	if note.FileName == "" || note.ID == "" {
		return "", ErrFileNotFound
	}
	fileName := BaseFileName(note.FileName)

	for _, name := range []string{fileName, note.ID + "_" + fileName} {
		candidate := filepath.Join(filesDir(s.root, username), name)
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	return "", ErrFileNotFound
}

func (s *attachmentStore) Open(ctx context.Context, username string, note models.Note) (*os.File, error) {
	path, err := s.Resolve(ctx, username, note)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	return f, nil
}

// BaseFileName strips any directory components from name. Names that reduce
// to nothing usable become "file".
func BaseFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" || base == "" {
		return defaultFileName
	}

	return base
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
