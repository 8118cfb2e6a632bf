// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"
)

// Note is a user-owned text record with at most one attached file.
type Note struct {
	// ID is the opaque unique identifier of the note inside its owner's mapping.
	ID string `json:"id"`

	// Content is the note text. It may be blank only when a file is attached.
	Content string `json:"content"`

	// Timestamp is the caller-supplied display ordering key.
	Timestamp string `json:"timestamp"`

	// CreatedAt is the server time of creation.
	CreatedAt time.Time `json:"created_at"`

	// HasFile reports whether an attachment blob belongs to the note.
	HasFile bool `json:"has_file"`

	// FileName is the original name of the attachment, empty if none.
	FileName string `json:"file_name"`

	// FilePath is the blob location relative to the owner's data directory,
	// e.g. "files/<id>_<name>". Records written before it existed leave it empty.
	FilePath string `json:"file_path,omitempty"`
}

// NewNote is the input of note creation.
type NewNote struct {
	Content   string
	Timestamp string

	// File is nil when no attachment is supplied.
	File *Upload
}

// Upload carries raw uploaded bytes together with their declared name and size.
type Upload struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// Download is an opened attachment ready to be streamed to the caller.
// The caller must close Content.
type Download struct {
	FileName string
	Size     int64
	Content  io.ReadCloser
}
