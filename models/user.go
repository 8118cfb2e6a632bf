// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is an account record kept in the global user registry.
// The username is the registry key and also names the user's data directory.
type User struct {
	// Username is the unique login of the user.
	Username string `json:"username"`

	// PasswordHash is the one-way hash of the user's password.
	// It is never exposed through the HTTP API.
	PasswordHash string `json:"password_hash"`

	// CreatedAt is the moment the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the login/password pair received on registration, login
// and admin password reset.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UserInfo is the admin view of an account: identity plus storage usage.
type UserInfo struct {
	Username  string       `json:"username"`
	CreatedAt time.Time    `json:"created_at"`
	Usage     StorageUsage `json:"usage"`
}
