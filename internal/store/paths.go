package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// On-disk layout below the configured data directory.
const (
	usersFileName = "users.json"
	notesFileName = "notes.json"
	filesDirName  = "files"
)

func usersFilePath(root string) string {
	return filepath.Join(root, usersFileName)
}

func userDir(root, username string) string {
	return filepath.Join(root, username)
}

func notesFilePath(root, username string) string {
	return filepath.Join(root, username, notesFileName)
}

func filesDir(root, username string) string {
	return filepath.Join(root, username, filesDirName)
}

// requireUserDir fails with ErrNoUserWasFound unless the provisioned
// directory of username exists. Writers never create it themselves.
func requireUserDir(root, username string) error {
	info, err := os.Stat(userDir(root, username))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ErrNoUserWasFound
	case err != nil:
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	case !info.IsDir():
		return ErrNoUserWasFound
	}

	return nil
}
