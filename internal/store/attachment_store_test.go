// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttachmentStore(t *testing.T) (AttachmentStore, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alice"), 0o755))
	return NewAttachmentStore(root, logger.Nop()), root
}

func TestAttachmentStore_Save(t *testing.T) {
	s, root := newTestAttachmentStore(t)
	ctx := context.Background()

	rel, n, err := s.Save(ctx, "alice", "n1", "report.pdf", strings.NewReader("payload"), 7)
	require.NoError(t, err)
	assert.Equal(t, "files/n1_report.pdf", rel)
	assert.Equal(t, int64(7), n)

	data, err := os.ReadFile(filepath.Join(root, "alice", "files", "n1_report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestAttachmentStore_Save_UnprovisionedUser(t *testing.T) {
	s, root := newTestAttachmentStore(t)

	_, _, err := s.Save(context.Background(), "ghost", "n1", "a.txt", strings.NewReader("a"), 1)
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	assert.NoDirExists(t, filepath.Join(root, "ghost"))
}

func TestAttachmentStore_Save_StripsDirectories(t *testing.T) {
	s, root := newTestAttachmentStore(t)

	rel, _, err := s.Save(context.Background(), "alice", "n1", "../../etc/passwd", strings.NewReader("x"), -1)
	require.NoError(t, err)
	assert.Equal(t, "files/n1_passwd", rel)
	assert.FileExists(t, filepath.Join(root, "alice", "files", "n1_passwd"))
}

func TestAttachmentStore_Save_RejectsOversizedStream(t *testing.T) {
	s, root := newTestAttachmentStore(t)

	_, _, err := s.Save(context.Background(), "alice", "n1", "a.txt", strings.NewReader("too many bytes"), 3)
	assert.ErrorIs(t, err, ErrUploadTooLarge)

	entries, err := os.ReadDir(filepath.Join(root, "alice", "files"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAttachmentStore_Delete(t *testing.T) {
	s, root := newTestAttachmentStore(t)
	ctx := context.Background()

	_, _, err := s.Save(ctx, "alice", "n1", "a.txt", strings.NewReader("a"), 1)
	require.NoError(t, err)
	_, _, err = s.Save(ctx, "alice", "n2", "b.txt", strings.NewReader("b"), 1)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "alice", "n1"))

	assert.NoFileExists(t, filepath.Join(root, "alice", "files", "n1_a.txt"))
	assert.FileExists(t, filepath.Join(root, "alice", "files", "n2_b.txt"))

	assert.NoError(t, s.Delete(ctx, "alice", "n1"))
	assert.NoError(t, s.Delete(ctx, "nobody", "n1"))
}

func TestAttachmentStore_Usage(t *testing.T) {
	s, root := newTestAttachmentStore(t)
	ctx := context.Background()

	used, err := s.Usage(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, used)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "alice"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "alice", "notes.json"), []byte("{}"), 0o600))
	_, _, err = s.Save(ctx, "alice", "n1", "a.bin", strings.NewReader("12345"), 5)
	require.NoError(t, err)

	used, err = s.Usage(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(7), used)
}

func TestAttachmentStore_Resolve(t *testing.T) {
	s, root := newTestAttachmentStore(t)
	ctx := context.Background()
	files := filepath.Join(root, "alice", "files")
	require.NoError(t, os.MkdirAll(files, 0o755))

	t.Run("stored path", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(files, "n1_a.txt"), []byte("a"), 0o600))

		path, err := s.Resolve(ctx, "alice", models.Note{ID: "n1", HasFile: true, FileName: "a.txt", FilePath: "files/n1_a.txt"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(files, "n1_a.txt"), path)
	})

	t.Run("exact file name", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(files, "plain.txt"), []byte("p"), 0o600))

		path, err := s.Resolve(ctx, "alice", models.Note{ID: "n2", HasFile: true, FileName: "plain.txt"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(files, "plain.txt"), path)
	})

	t.Run("suffix fallback", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(files, "n3_legacy.doc"), []byte("l"), 0o600))

		path, err := s.Resolve(ctx, "alice", models.Note{ID: "n3", HasFile: true, FileName: "legacy.doc"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(files, "n3_legacy.doc"), path)
	})

	t.Run("missing stored path never yields another note's blob", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(files, "nB_shared.txt"), []byte("BBB"), 0o600))

		_, err := s.Resolve(ctx, "alice", models.Note{ID: "nA", HasFile: true, FileName: "shared.txt", FilePath: "files/nA_shared.txt"})
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("record without stored path ignores other notes' blobs", func(t *testing.T) {
		_, err := s.Resolve(ctx, "alice", models.Note{ID: "nC", HasFile: true, FileName: "shared.txt"})
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("stored path outside files dir", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "alice", "notes.json"), []byte("{}"), 0o600))

		_, err := s.Resolve(ctx, "alice", models.Note{ID: "n7", HasFile: true, FileName: "notes.json", FilePath: "notes.json"})
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("stored path escaping user dir", func(t *testing.T) {
		_, err := s.Resolve(ctx, "alice", models.Note{ID: "n4", HasFile: true, FileName: "x", FilePath: "../../users.json"})
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("nothing matches", func(t *testing.T) {
		_, err := s.Resolve(ctx, "alice", models.Note{ID: "n5", HasFile: true, FileName: "gone.txt"})
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("no file name", func(t *testing.T) {
		_, err := s.Resolve(ctx, "alice", models.Note{ID: "n6"})
		assert.ErrorIs(t, err, ErrFileNotFound)
	})
}

func TestAttachmentStore_Open(t *testing.T) {
	s, _ := newTestAttachmentStore(t)
	ctx := context.Background()

	rel, _, err := s.Save(ctx, "alice", "n1", "a.txt", strings.NewReader("content"), 7)
	require.NoError(t, err)

	f, err := s.Open(ctx, "alice", models.Note{ID: "n1", HasFile: true, FileName: "a.txt", FilePath: rel})
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = s.Open(ctx, "alice", models.Note{ID: "n9", HasFile: true, FileName: "none.txt"})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestBaseFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.txt", "a.txt"},
		{"dir/a.txt", "a.txt"},
		{`C:\Users\me\a.txt`, "a.txt"},
		{"", "file"},
		{"..", "file"},
		{"/", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseFileName(tt.in))
		})
	}
}
