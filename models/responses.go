// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NotesResponse is returned by the note listing endpoint: the caller's notes
// sorted for display together with the current quota usage.
type NotesResponse struct {
	Notes []Note       `json:"notes"`
	Usage StorageUsage `json:"usage"`

	// Length is the number of entries in Notes.
	Length int `json:"length"`
}

// NoteCreatedResponse carries the identifier of a freshly added note.
type NoteCreatedResponse struct {
	NoteID string `json:"note_id"`
}

// UsersResponse is the admin listing of all accounts.
type UsersResponse struct {
	Users  []UserInfo `json:"users"`
	Length int        `json:"length"`
}

// VersionResponse is the JSON form of the version endpoint.
type VersionResponse struct {
	Version string       `json:"version"`
	Build   AppBuildInfo `json:"build"`
}
