// Copyright (c) 2026 PressArt. All rights reserved.

package cart

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

// # Guest Storage

// GuestStore persists anonymous carts, one JSON array of lines per guest.
type GuestStore interface {

	/*
		Load returns the guest's lines. A missing cart is an empty cart, and so
		is an unreadable one: it is logged and treated as empty.

		Parameters:
		  - context: context.Context
		  - guestID: string (May be empty for single-user stores)

		Returns:
		  - []Line: Stored lines, in insertion order
		  - error: Storage connectivity failures only
	*/
	Load(context context.Context, guestID string) ([]Line, error)

	// Save replaces the guest's lines.
	Save(context context.Context, guestID string, lines []Line) error

	// Clear deletes the guest's cart. Clearing a missing cart is not an error.
	Clear(context context.Context, guestID string) error
}

// FileStore keeps the guest cart in a JSON file, the terminal analogue of the
// browser's localStorage entry. The file is named after the storage key.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates a [FileStore] rooted at dir, creating it if needed.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("cart_file_store_init_failed: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (store *FileStore) path(guestID string) string {
	name := constants.GuestCartKey
	if guestID != "" {
		name += "-" + filepath.Base(guestID)
	}
	return filepath.Join(store.dir, name+".json")
}

// Load reads the guest cart file.
func (store *FileStore) Load(_ context.Context, guestID string) ([]Line, error) {
	data, err := os.ReadFile(store.path(guestID))
	if errors.Is(err, fs.ErrNotExist) {
		return []Line{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart_file_store_load_failed: %w", err)
	}

	return decodeLines(store.logger, data, guestID), nil
}

// Save writes the guest cart atomically (temp file + rename).
func (store *FileStore) Save(_ context.Context, guestID string, lines []Line) error {
	data, err := encodeLines(lines)
	if err != nil {
		return err
	}

	target := store.path(guestID)
	temp, err := os.CreateTemp(store.dir, filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("cart_file_store_save_failed: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return fmt.Errorf("cart_file_store_save_failed: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("cart_file_store_save_failed: %w", err)
	}
	if err := os.Rename(temp.Name(), target); err != nil {
		return fmt.Errorf("cart_file_store_save_failed: %w", err)
	}
	return nil
}

// Clear removes the guest cart file.
func (store *FileStore) Clear(_ context.Context, guestID string) error {
	err := os.Remove(store.path(guestID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cart_file_store_clear_failed: %w", err)
	}
	return nil
}

// # Encoding

func encodeLines(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("cart_encode_failed: %w", err)
	}
	return data, nil
}

// decodeLines never fails: corrupt data is logged and read as an empty cart.
func decodeLines(logger *slog.Logger, data []byte, guestID string) []Line {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn("guest_cart_unreadable",
			slog.String("guest_id", guestID),
			slog.String("error", err.Error()),
		)
		return []Line{}
	}
	if lines == nil {
		return []Line{}
	}
	return lines
}
