// Copyright (c) 2026 PressArt. All rights reserved.

package cart

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process [GuestStore]. The CLI uses it for
// --ephemeral runs; tests use it everywhere a real store is not the subject.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]Line
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Line)}
}

// Load returns a copy of the guest's lines.
func (store *MemoryStore) Load(_ context.Context, guestID string) ([]Line, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	lines := slices.Clone(store.carts[guestID])
	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}

// Save stores a copy of lines.
func (store *MemoryStore) Save(_ context.Context, guestID string, lines []Line) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.carts[guestID] = slices.Clone(lines)
	return nil
}

// Clear forgets the guest's cart.
func (store *MemoryStore) Clear(_ context.Context, guestID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.carts, guestID)
	return nil
}
