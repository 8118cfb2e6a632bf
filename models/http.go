// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UpdateNoteRequest is the body of a note content update.
type UpdateNoteRequest struct {
	Content string `json:"content"`
}

// SetPasswordRequest is the body of an admin password reset.
type SetPasswordRequest struct {
	Password string `json:"password"`
}

// CreateNoteRequest is the JSON body of a text-only note. Notes with an
// attachment are sent as multipart forms instead.
type CreateNoteRequest struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
