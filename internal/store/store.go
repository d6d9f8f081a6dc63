// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the publication database as a single JSON
// document. The store is read whole at merge start and replaced whole at
// merge end; a timestamped backup copy is taken before any mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/scholarops/pubsync/pkg/types"
)

// backupTimeLayout produces suffixes like publications.json.backup.20260829_153012.
const backupTimeLayout = "20060102_150405"

// Load reads and parses the store document at path.
func Load(path string) (*types.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading store %s: %w", path, err)
	}
	var st types.Store
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", path, err)
	}
	return &st, nil
}

// LoadOrEmpty behaves like Load but returns an empty store when the file
// does not exist yet.
func LoadOrEmpty(path string) (*types.Store, error) {
	st, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &types.Store{}, nil
	}
	return st, err
}

// Save writes the store document to path atomically: the JSON is written
// to a temporary file in the same directory and renamed into place, so a
// crash mid-write never leaves a half-written store behind.
func Save(path string, st *types.Store) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp store file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting store file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}

// Backup copies the current store bytes to a sibling file suffixed with
// the given timestamp and returns the backup path. The copy is of the
// raw file contents, so the backup matches the pre-merge store exactly,
// byte for byte. Backup must succeed before any mutation is written;
// callers abort on error.
func Backup(path string, ts time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading store for backup: %w", err)
	}

	backupPath := fmt.Sprintf("%s.backup.%s", path, ts.Format(backupTimeLayout))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", backupPath, err)
	}
	return backupPath, nil
}
