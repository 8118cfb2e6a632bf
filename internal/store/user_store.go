// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// MaxUsers is the hard cap on registered accounts, administrator included.
const MaxUsers = 6

// userRecord is the value stored per username in users.json.
type userRecord struct {
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

type userStore struct {
	root   string
	logger *logger.Logger

	// mu serializes every read-modify-write of users.json.
	mu sync.Mutex
}

// NewUserStore returns a [UserStore] rooted at dataDir.
func NewUserStore(dataDir string, logger *logger.Logger) UserStore {
	logger.Debug().Str("data_dir", dataDir).Msg("UserStore created")
	return &userStore{
		root:   dataDir,
		logger: logger,
	}
}

// load reads users.json. An absent or unreadable registry is treated as
// empty so that a damaged file never takes the service down.
func (s *userStore) load() map[string]userRecord {
	users := make(map[string]userRecord)

	err := readJSONFile(usersFilePath(s.root), &users)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		return make(map[string]userRecord)
	default:
		s.logger.Warn().Err(err).Str("func", "*userStore.load").Msg("user registry unreadable, treating as empty")
		return make(map[string]userRecord)
	}

	return users
}

func (s *userStore) save(users map[string]userRecord) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	if err := writeJSONFile(usersFilePath(s.root), users); err != nil {
		s.logger.Err(err).Str("func", "*userStore.save").Msg("error writing user registry")
		return err
	}

	return nil
}

func (s *userStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	records := s.load()
	s.mu.Unlock()

	users := make([]models.User, 0, len(records))
	for username, rec := range records {
		users = append(users, toUser(username, rec))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})

	return users, nil
}

func (s *userStore) FindUser(ctx context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load()[username]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return toUser(username, rec), nil
}

// CreateUser registers user and provisions its data directory. The user cap
// is checked before the duplicate check.
func (s *userStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	if len(users) >= MaxUsers {
		return models.User{}, ErrUserLimitReached
	}
	if _, exists := users[user.Username]; exists {
		return models.User{}, ErrUserAlreadyExists
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	users[user.Username] = userRecord{
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	if err := s.provision(user.Username); err != nil {
		s.logger.Err(err).Str("func", "*userStore.CreateUser").Str("user", user.Username).Msg("error provisioning user directory")
		return models.User{}, err
	}
	if err := s.save(users); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// provision gives a new account a clean <user>/ with an empty notes.json and
// an empty files/. Leftovers of an earlier account with the same name are
// removed first.
func (s *userStore) provision(username string) error {
	dir := userDir(s.root, username)
	if _, err := os.Lstat(dir); err == nil {
		s.logger.Warn().Str("func", "*userStore.provision").Str("user", username).Msg("removing stale data directory")
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	if err := os.MkdirAll(filesDir(s.root, username), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	return writeJSONFile(notesFilePath(s.root, username), map[string]models.Note{})
}

func (s *userStore) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	rec, ok := users[username]
	if !ok {
		return ErrNoUserWasFound
	}

	rec.PasswordHash = passwordHash
	users[username] = rec

	return s.save(users)
}

// DeleteUser removes the registry entry first and the data directory second.
// The two steps are not atomic: a failure in between leaves an orphaned
// directory that is not reachable through any account.
func (s *userStore) DeleteUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	if _, ok := users[username]; !ok {
		return ErrNoUserWasFound
	}

	delete(users, username)
	if err := s.save(users); err != nil {
		return err
	}

	if err := os.RemoveAll(userDir(s.root, username)); err != nil {
		s.logger.Err(err).Str("func", "*userStore.DeleteUser").Str("user", username).Msg("error removing user directory")
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	return nil
}

func toUser(username string, rec userRecord) models.User {
	return models.User{
		Username:     username,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}
}
