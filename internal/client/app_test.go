package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testCredentials = models.Credentials{Login: "alice", Password: "pw"}

func newTestApp(t *testing.T) (*App, *mock.MockNotesClient, *bytes.Buffer) {
	t.Helper()

	notes := mock.NewMockNotesClient(gomock.NewController(t))
	out := &bytes.Buffer{}
	app := NewApp(notes, testCredentials, out, logger.Nop())
	app.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	app.copyToClipboard = func(string) error { return errors.New("clipboard not stubbed") }

	return app, notes, out
}

func TestRun_NoCommand(t *testing.T) {
	app, _, out := newTestApp(t)

	err := app.Run(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNoCommand)
	assert.Contains(t, out.String(), "usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"frobnicate"})

	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_MissingArgument(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"update", "n1"})

	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestRun_NoCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.credentials = models.Credentials{}

	err := app.Run(context.Background(), []string{"list"})

	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestRun_LoginFailure(t *testing.T) {
	app, notes, _ := newTestApp(t)
	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(adapter.ErrUnauthorized)

	err := app.Run(context.Background(), []string{"list"})

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

func TestRegister(t *testing.T) {
	app, notes, out := newTestApp(t)
	notes.EXPECT().Register(gomock.Any(), testCredentials).Return(nil)

	require.NoError(t, app.Run(context.Background(), []string{"register"}))
	assert.Contains(t, out.String(), "user alice registered")
}

func TestList(t *testing.T) {
	app, notes, out := newTestApp(t)
	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil)
	notes.EXPECT().ListNotes(gomock.Any()).Return(models.NotesResponse{
		Notes: []models.Note{
			{ID: "n2", Timestamp: "t2", Content: "second line one\nline two"},
			{ID: "n1", Timestamp: "t1", Content: "first", FileName: "a.txt", HasFile: true},
		},
		Usage:  models.StorageUsage{UsedStr: "1.00 KB", RemainingStr: "49.99 MB"},
		Length: 2,
	}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"list"}))

	text := out.String()
	assert.Contains(t, text, "second line one")
	assert.NotContains(t, text, "line two")
	assert.Contains(t, text, "a.txt")
	assert.Less(t, strings.Index(text, "n2"), strings.Index(text, "n1"))
	assert.Contains(t, text, "storage: 1.00 KB used, 49.99 MB remaining")
}

func TestAdd_TextOnly(t *testing.T) {
	app, notes, out := newTestApp(t)
	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil)
	notes.EXPECT().AddNote(gomock.Any(), "hello", "2024-05-01T10:00:00Z", (*models.Upload)(nil)).Return("n1", nil)

	require.NoError(t, app.Run(context.Background(), []string{"add", "hello"}))
	assert.Contains(t, out.String(), "note n1 added")
}

func TestAdd_WithFile(t *testing.T) {
	app, notes, _ := newTestApp(t)

	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("JPEG"), 0o600))

	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil)
	notes.EXPECT().
		AddNote(gomock.Any(), "", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, file *models.Upload) (string, error) {
			require.NotNil(t, file)
			assert.Equal(t, "photo.jpg", file.Name)
			assert.Equal(t, int64(4), file.Size)
			data, err := io.ReadAll(file.Reader)
			require.NoError(t, err)
			assert.Equal(t, "JPEG", string(data))
			return "n2", nil
		})

	require.NoError(t, app.Run(context.Background(), []string{"add", "", path}))
}

func TestAdd_MissingFile(t *testing.T) {
	app, notes, _ := newTestApp(t)
	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil)

	err := app.Run(context.Background(), []string{"add", "x", filepath.Join(t.TempDir(), "nope")})

	assert.Error(t, err)
}

func TestGetUpdateDelete(t *testing.T) {
	app, notes, out := newTestApp(t)
	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil).Times(3)
	notes.EXPECT().GetNote(gomock.Any(), "n1").Return(models.Note{ID: "n1", Content: "body", HasFile: true, FileName: "f.bin"}, nil)
	notes.EXPECT().UpdateNote(gomock.Any(), "n1", "new").Return(nil)
	notes.EXPECT().DeleteNote(gomock.Any(), "n1").Return(nil)

	require.NoError(t, app.Run(context.Background(), []string{"get", "n1"}))
	require.NoError(t, app.Run(context.Background(), []string{"update", "n1", "new"}))
	require.NoError(t, app.Run(context.Background(), []string{"delete", "n1"}))

	text := out.String()
	assert.Contains(t, text, "body")
	assert.Contains(t, text, "f.bin")
	assert.Contains(t, text, "note n1 updated")
	assert.Contains(t, text, "note n1 deleted")
}

func TestDownload(t *testing.T) {
	app, notes, out := newTestApp(t)
	dest := filepath.Join(t.TempDir(), "saved.pdf")

	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil)
	notes.EXPECT().
		DownloadFile(gomock.Any(), "n1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, w io.Writer) (string, int64, error) {
			n, err := w.Write([]byte("%PDF"))
			return "report.pdf", int64(n), err
		})

	require.NoError(t, app.Run(context.Background(), []string{"download", "n1", dest}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
	assert.Contains(t, out.String(), "(4 bytes)")

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDownload_FailureLeavesNothing(t *testing.T) {
	app, notes, _ := newTestApp(t)
	dir := t.TempDir()

	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil)
	notes.EXPECT().DownloadFile(gomock.Any(), "n1", gomock.Any()).Return("", int64(0), adapter.ErrNotFound)

	err := app.Run(context.Background(), []string{"download", "n1", filepath.Join(dir, "x")})

	assert.ErrorIs(t, err, adapter.ErrNotFound)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopy(t *testing.T) {
	app, notes, out := newTestApp(t)
	var copied string
	app.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil)
	notes.EXPECT().GetNote(gomock.Any(), "n1").Return(models.Note{ID: "n1", Content: "secret text"}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"copy", "n1"}))
	assert.Equal(t, "secret text", copied)
	assert.Contains(t, out.String(), "copied")
}

func TestAdminCommands(t *testing.T) {
	app, notes, out := newTestApp(t)
	notes.EXPECT().Login(gomock.Any(), testCredentials).Return(nil).Times(3)
	notes.EXPECT().ListUsers(gomock.Any()).Return(models.UsersResponse{
		Users:  []models.UserInfo{{Username: "bob", Usage: models.StorageUsage{UsedStr: "0 B", RemainingStr: "50.00 MB"}}},
		Length: 1,
	}, nil)
	notes.EXPECT().SetUserPassword(gomock.Any(), "bob", "n3w").Return(nil)
	notes.EXPECT().DeleteUser(gomock.Any(), "bob").Return(nil)

	require.NoError(t, app.Run(context.Background(), []string{"users"}))
	require.NoError(t, app.Run(context.Background(), []string{"passwd", "bob", "n3w"}))
	require.NoError(t, app.Run(context.Background(), []string{"deluser", "bob"}))

	text := out.String()
	assert.Contains(t, text, "bob")
	assert.Contains(t, text, "50.00 MB")
	assert.Contains(t, text, "user bob deleted")
}

func TestVersion_DoesNotSignIn(t *testing.T) {
	app, notes, out := newTestApp(t)
	app.credentials = models.Credentials{}
	notes.EXPECT().ServerVersion(gomock.Any()).Return("1.2.3", nil)

	require.NoError(t, app.Run(context.Background(), []string{"version"}))
	assert.Contains(t, out.String(), "1.2.3")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	assert.Equal(t, "first", preview("first\nsecond"))

	long := strings.Repeat("ж", 60)
	got := []rune(preview(long))
	assert.Len(t, got, 48)
	assert.Equal(t, '…', got[47])
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "report.pdf", safeFileName("report.pdf", "n1"))
	assert.Equal(t, "passwd", safeFileName("../../etc/passwd", "n1"))
	assert.Equal(t, "n1", safeFileName("", "n1"))
}
