// Copyright (c) 2026 PressArt. All rights reserved.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pressart/storefront/internal/platform/constants"
)

// Store persists the session between runs.
type Store interface {
	// Load returns the saved session, or nil when there is none.
	Load(context context.Context) (*State, error)
	Save(context context.Context, state State) error
	Clear(context context.Context) error
}

// FileStore keeps the session as JSON in the CLI state directory, readable
// only by the owner.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a [FileStore] under dir.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session_file_store_init_failed: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, constants.SessionKey+".json"), logger: logger}, nil
}

// Load reads the session file. A corrupt file is treated as no session.
func (store *FileStore) Load(_ context.Context) (*State, error) {
	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session_file_store_load_failed: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil || state.Token == "" {
		store.logger.Warn("session_file_unreadable", slog.String("path", store.path))
		return nil, nil
	}
	return &state, nil
}

// Save writes the session file with 0600 permissions.
func (store *FileStore) Save(_ context.Context, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session_encode_failed: %w", err)
	}
	if err := os.WriteFile(store.path, data, 0o600); err != nil {
		return fmt.Errorf("session_file_store_save_failed: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (store *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session_file_store_clear_failed: %w", err)
	}
	return nil
}
