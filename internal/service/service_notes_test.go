// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type noteMocks struct {
	notes       *mock.MockNoteStore
	attachments *mock.MockAttachmentStore
	quota       *mock.MockQuotaEnforcer
}

func newMockedNoteSvc(t *testing.T) (*noteService, noteMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := noteMocks{
		notes:       mock.NewMockNoteStore(ctrl),
		attachments: mock.NewMockAttachmentStore(ctrl),
		quota:       mock.NewMockQuotaEnforcer(ctrl),
	}

	svc := NewNoteService(m.notes, m.attachments, m.quota, NewUserLocks(), logger.Nop()).(*noteService)
	svc.newID = func() string { return "note-1" }

	return svc, m
}

// newFileNoteSvc wires the note service over real file stores in a temp dir.
func newFileNoteSvc(t *testing.T) (NoteService, *store.Storages, string) {
	t.Helper()
	return newFileNoteSvcWithLimit(t, MaxStorageBytes)
}

// newFileNoteSvcWithLimit is newFileNoteSvc with a custom storage limit.
func newFileNoteSvcWithLimit(t *testing.T, limit int64) (NoteService, *store.Storages, string) {
	t.Helper()
	root := t.TempDir()
	log := logger.Nop()

	storages := &store.Storages{
		UserStore:       store.NewUserStore(root, log),
		NoteStore:       store.NewNoteStore(root, log),
		AttachmentStore: store.NewAttachmentStore(root, log),
	}
	quota := NewQuotaEnforcer(storages.AttachmentStore, log)
	quota.(*quotaEnforcer).limit = limit
	svc := NewNoteService(storages.NoteStore, storages.AttachmentStore, quota, NewUserLocks(), log)

	_, err := storages.UserStore.CreateUser(context.Background(), models.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	return svc, storages, root
}

func upload(name, body string) *models.Upload {
	return &models.Upload{Name: name, Size: int64(len(body)), Reader: strings.NewReader(body)}
}

// ─────────────────────────────────────────────
// AddNote (mocked stores)
// ─────────────────────────────────────────────

func TestNoteService_AddNote_TextOnly(t *testing.T) {
	svc, m := newMockedNoteSvc(t)

	m.notes.EXPECT().SaveNote(gomock.Any(), "alice", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, n models.Note) error {
			assert.Equal(t, "note-1", n.ID)
			assert.Equal(t, "hello", n.Content)
			assert.Equal(t, "2026-10-01 10:00", n.Timestamp)
			assert.False(t, n.HasFile)
			assert.False(t, n.CreatedAt.IsZero())
			return nil
		},
	)

	id, err := svc.AddNote(context.Background(), "alice", models.NewNote{Content: "hello", Timestamp: "2026-10-01 10:00"})
	require.NoError(t, err)
	assert.Equal(t, "note-1", id)
}

func TestNoteService_AddNote_BlankWithoutFile(t *testing.T) {
	svc, _ := newMockedNoteSvc(t)

	_, err := svc.AddNote(context.Background(), "alice", models.NewNote{Content: ""})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNoteService_AddNote_QuotaRejectedWritesNothing(t *testing.T) {
	svc, m := newMockedNoteSvc(t)

	m.quota.EXPECT().CheckAdd(gomock.Any(), "alice", int64(4)).Return(ErrStorageQuotaExceeded)

	_, err := svc.AddNote(context.Background(), "alice", models.NewNote{Content: "x", File: upload("a.txt", "data")})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestNoteService_AddNote_WithFile(t *testing.T) {
	svc, m := newMockedNoteSvc(t)

	gomock.InOrder(
		m.quota.EXPECT().CheckAdd(gomock.Any(), "alice", int64(4)).Return(nil),
		m.attachments.EXPECT().Save(gomock.Any(), "alice", "note-1", "dir/a.txt", gomock.Any(), int64(4)).
			Return("files/note-1_a.txt", int64(4), nil),
		m.notes.EXPECT().SaveNote(gomock.Any(), "alice", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, n models.Note) error {
				assert.True(t, n.HasFile)
				assert.Equal(t, "a.txt", n.FileName)
				assert.Equal(t, "files/note-1_a.txt", n.FilePath)
				return nil
			},
		),
	)

	_, err := svc.AddNote(context.Background(), "alice", models.NewNote{File: upload("dir/a.txt", "data")})
	require.NoError(t, err)
}

func TestNoteService_AddNote_SaveNoteFailureRemovesBlob(t *testing.T) {
	svc, m := newMockedNoteSvc(t)

	m.quota.EXPECT().CheckAdd(gomock.Any(), "alice", gomock.Any()).Return(nil)
	m.attachments.EXPECT().Save(gomock.Any(), "alice", "note-1", "a.txt", gomock.Any(), gomock.Any()).
		Return("files/note-1_a.txt", int64(4), nil)
	m.notes.EXPECT().SaveNote(gomock.Any(), "alice", gomock.Any()).Return(store.ErrStorageIO)
	m.attachments.EXPECT().Delete(gomock.Any(), "alice", "note-1").Return(nil)

	_, err := svc.AddNote(context.Background(), "alice", models.NewNote{File: upload("a.txt", "data")})
	assert.ErrorIs(t, err, store.ErrStorageIO)
}

func TestNoteService_AddNote_StreamLargerThanDeclared(t *testing.T) {
	svc, m := newMockedNoteSvc(t)

	m.quota.EXPECT().CheckAdd(gomock.Any(), "alice", gomock.Any()).Return(nil)
	m.attachments.EXPECT().Save(gomock.Any(), "alice", "note-1", "a.txt", gomock.Any(), gomock.Any()).
		Return("", int64(0), store.ErrUploadTooLarge)

	_, err := svc.AddNote(context.Background(), "alice", models.NewNote{File: upload("a.txt", "data")})
	assert.ErrorIs(t, err, ErrValidation)
}

// ─────────────────────────────────────────────
// Update / Delete / Download (mocked stores)
// ─────────────────────────────────────────────

func TestNoteService_UpdateNote_NotFound(t *testing.T) {
	svc, m := newMockedNoteSvc(t)
	m.notes.EXPECT().GetNote(gomock.Any(), "alice", "missing").Return(models.Note{}, store.ErrNoteNotFound)

	err := svc.UpdateNote(context.Background(), "alice", "missing", "x")
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestNoteService_DeleteNote_BlobFailureDoesNotBlock(t *testing.T) {
	svc, m := newMockedNoteSvc(t)

	m.notes.EXPECT().GetNote(gomock.Any(), "alice", "n1").Return(models.Note{ID: "n1", HasFile: true}, nil)
	m.attachments.EXPECT().Delete(gomock.Any(), "alice", "n1").Return(errors.New("disk gone"))
	m.notes.EXPECT().DeleteNote(gomock.Any(), "alice", "n1").Return(nil)

	assert.NoError(t, svc.DeleteNote(context.Background(), "alice", "n1"))
}

func TestNoteService_DeleteNote_NotFound(t *testing.T) {
	svc, m := newMockedNoteSvc(t)
	m.notes.EXPECT().GetNote(gomock.Any(), "alice", "n1").Return(models.Note{}, store.ErrNoteNotFound)

	assert.ErrorIs(t, svc.DeleteNote(context.Background(), "alice", "n1"), store.ErrNoteNotFound)
}

func TestNoteService_ResolveDownload_NoFile(t *testing.T) {
	svc, m := newMockedNoteSvc(t)
	m.notes.EXPECT().GetNote(gomock.Any(), "alice", "n1").Return(models.Note{ID: "n1"}, nil)

	_, err := svc.ResolveDownload(context.Background(), "alice", "n1")
	assert.ErrorIs(t, err, store.ErrFileNotFound)
}

func TestNoteService_ListNotes_Sorted(t *testing.T) {
	svc, m := newMockedNoteSvc(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	m.notes.EXPECT().ListNotes(gomock.Any(), "alice").Return(map[string]models.Note{
		"a": {ID: "a", Timestamp: "2026-01-01"},
		"b": {ID: "b", Timestamp: "2026-03-01"},
		"c": {ID: "c", Timestamp: "2026-02-01", CreatedAt: base},
		"d": {ID: "d", Timestamp: "2026-02-01", CreatedAt: base.Add(time.Minute)},
	}, nil)

	notes, err := svc.ListNotes(context.Background(), "alice")
	require.NoError(t, err)

	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids)
}

// ─────────────────────────────────────────────
// Behaviour over real file stores
// ─────────────────────────────────────────────

func TestNoteService_AddThenGet(t *testing.T) {
	svc, _, _ := newFileNoteSvc(t)
	ctx := context.Background()

	id, err := svc.AddNote(ctx, "alice", models.NewNote{Content: "hello", Timestamp: "t1"})
	require.NoError(t, err)

	note, err := svc.GetNote(ctx, "alice", id)
	require.NoError(t, err)
	assert.Equal(t, "hello", note.Content)
}

func TestNoteService_AttachmentOverQuota_LeavesNothing(t *testing.T) {
	svc, storages, root := newFileNoteSvc(t)
	ctx := context.Background()

	big := &models.Upload{Name: "big.bin", Size: MaxStorageBytes, Reader: strings.NewReader("")}
	_, err := svc.AddNote(ctx, "alice", models.NewNote{Content: "x", File: big})
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	notes, err := storages.NoteStore.ListNotes(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, notes)

	entries, err := os.ReadDir(filepath.Join(root, "alice", "files"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNoteService_DeleteWithAttachment(t *testing.T) {
	svc, _, root := newFileNoteSvc(t)
	ctx := context.Background()

	id, err := svc.AddNote(ctx, "alice", models.NewNote{Content: "x", File: upload("a.txt", "abc")})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "alice", "files", id+"_a.txt"))

	require.NoError(t, svc.DeleteNote(ctx, "alice", id))

	assert.NoFileExists(t, filepath.Join(root, "alice", "files", id+"_a.txt"))
	_, err = svc.ResolveDownload(ctx, "alice", id)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestNoteService_DownloadMissingBlob(t *testing.T) {
	svc, _, root := newFileNoteSvc(t)
	ctx := context.Background()

	id, err := svc.AddNote(ctx, "alice", models.NewNote{File: upload("a.txt", "abc")})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(root, "alice", "files", id+"_a.txt")))

	_, err = svc.ResolveDownload(ctx, "alice", id)
	assert.ErrorIs(t, err, store.ErrFileNotFound)
}

func TestNoteService_UpdateKeepsOtherFields(t *testing.T) {
	svc, _, _ := newFileNoteSvc(t)
	ctx := context.Background()

	id, err := svc.AddNote(ctx, "alice", models.NewNote{Content: "old", Timestamp: "t1", File: upload("a.txt", "abc")})
	require.NoError(t, err)
	before, err := svc.GetNote(ctx, "alice", id)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateNote(ctx, "alice", id, "new"))

	after, err := svc.GetNote(ctx, "alice", id)
	require.NoError(t, err)
	assert.Equal(t, "new", after.Content)
	assert.Equal(t, before.Timestamp, after.Timestamp)
	assert.Equal(t, before.HasFile, after.HasFile)
	assert.Equal(t, before.FileName, after.FileName)
	assert.Equal(t, before.FilePath, after.FilePath)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestNoteService_ResolveDownload_Streams(t *testing.T) {
	svc, _, _ := newFileNoteSvc(t)
	ctx := context.Background()

	id, err := svc.AddNote(ctx, "alice", models.NewNote{File: upload("report.txt", "contents")})
	require.NoError(t, err)

	dl, err := svc.ResolveDownload(ctx, "alice", id)
	require.NoError(t, err)
	defer dl.Content.Close()

	assert.Equal(t, "report.txt", dl.FileName)
	assert.Equal(t, int64(8), dl.Size)
	data, err := io.ReadAll(dl.Content)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
}

func TestNoteService_StorageUsage(t *testing.T) {
	svc, _, _ := newFileNoteSvc(t)
	ctx := context.Background()

	before, err := svc.StorageUsage(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.AddNote(ctx, "alice", models.NewNote{File: upload("a.bin", strings.Repeat("x", 2048))})
	require.NoError(t, err)

	after, err := svc.StorageUsage(ctx, "alice")
	require.NoError(t, err)
	assert.Greater(t, after.Used, before.Used+2047)
	assert.Equal(t, MaxStorageBytes, after.Limit)
}

// ─────────────────────────────────────────────
// Concurrent access for one user
// ─────────────────────────────────────────────

func TestNoteService_ConcurrentWritesLoseNothing(t *testing.T) {
	svc, _, _ := newFileNoteSvc(t)
	ctx := context.Background()

	const n = 16
	seeded := make([]string, n)
	for i := range n {
		id, err := svc.AddNote(ctx, "alice", models.NewNote{Content: fmt.Sprintf("seed-%d", i)})
		require.NoError(t, err)
		seeded[i] = id
	}

	var wg sync.WaitGroup
	added := make([]string, n)
	errs := make(chan error, 2*n)
	for i := range n {
		wg.Go(func() {
			id, err := svc.AddNote(ctx, "alice", models.NewNote{Content: fmt.Sprintf("new-%d", i)})
			added[i] = id
			errs <- err
		})
		wg.Go(func() {
			errs <- svc.UpdateNote(ctx, "alice", seeded[i], fmt.Sprintf("updated-%d", i))
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	notes, err := svc.ListNotes(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, notes, 2*n)

	for i := range n {
		note, err := svc.GetNote(ctx, "alice", seeded[i])
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("updated-%d", i), note.Content)

		note, err = svc.GetNote(ctx, "alice", added[i])
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("new-%d", i), note.Content)
	}
}

func TestNoteService_ConcurrentUploadsRespectQuota(t *testing.T) {
	const limit = 1000
	svc, storages, root := newFileNoteSvcWithLimit(t, limit)
	ctx := context.Background()

	body := strings.Repeat("x", 600)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Go(func() {
			_, errs[i] = svc.AddNote(ctx, "alice", models.NewNote{File: upload(fmt.Sprintf("f%d.bin", i), body)})
		})
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrQuotaExceeded):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)

	notes, err := storages.NoteStore.ListNotes(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	entries, err := os.ReadDir(filepath.Join(root, "alice", "files"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	used, err := storages.AttachmentStore.Usage(ctx, "alice")
	require.NoError(t, err)
	assert.LessOrEqual(t, used, int64(limit))
}
