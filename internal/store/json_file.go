// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// tmpSuffix marks in-flight files. Anything left with this suffix belongs to
// an interrupted write and may be swept.
const tmpSuffix = ".tmp"

// readJSONFile decodes path into v. A missing file leaves v untouched and
// returns os.ErrNotExist so callers can tell "absent" from "corrupt".
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error decoding %s: %w", filepath.Base(path), err)
	}

	return nil
}

// writeJSONFile replaces path with the JSON encoding of v. The new content is
// written to a sibling temp file, synced and renamed over path, so readers see
// either the old or the new document, never a torn one.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: error encoding %s: %w", ErrStorageIO, filepath.Base(path), err)
	}

	return writeFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeFileAtomic streams write into a temp file next to path and renames it
// into place once write succeeds. On any failure the temp file is removed.
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*"+tmpSuffix)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := write(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrStorageIO, err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrStorageIO, err)
	}

	return nil
}
