// Copyright (c) 2026 PressArt. All rights reserved.

package checkout_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/catalog"
	"github.com/pressart/storefront/internal/checkout"
	"github.com/pressart/storefront/internal/media"
	"github.com/pressart/storefront/internal/platform/apperr"
)

var errDown = apperr.Upstream(errors.New("connection refused"))

// fakeStore is an in-memory store API. err fails every call; syncErr fails
// only SyncCart. When block is set, AddLine signals entered and waits;
// syncBlock and syncEntered do the same for SyncCart.
type fakeStore struct {
	mu      sync.Mutex
	lines   []cart.Line
	next    int
	err     error
	syncErr error
	synced  [][]cart.Line

	block   chan struct{}
	entered chan struct{}

	syncBlock   chan struct{}
	syncEntered chan struct{}
}

func (store *fakeStore) snapshot() []cart.Line {
	return slices.Clone(store.lines)
}

func (store *fakeStore) Cart(_ context.Context, _ string) ([]cart.Line, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	return store.snapshot(), nil
}

func (store *fakeStore) AddLine(_ context.Context, _ string, line cart.Line) ([]cart.Line, error) {
	if store.block != nil {
		store.entered <- struct{}{}
		<-store.block
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	store.next++
	line.ID = "srv-" + strconv.Itoa(store.next)
	store.lines = append(store.lines, line)
	return store.snapshot(), nil
}

func (store *fakeStore) UpdateLine(_ context.Context, _ string, lineID string, line cart.Line) ([]cart.Line, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	index := cart.Find(store.lines, lineID)
	if index < 0 {
		return nil, apperr.Upstream(errors.New("not in cart"))
	}
	line.ID = lineID
	store.lines[index] = line
	return store.snapshot(), nil
}

func (store *fakeStore) RemoveLine(_ context.Context, _ string, lineID string) ([]cart.Line, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	if index := cart.Find(store.lines, lineID); index >= 0 {
		store.lines = slices.Delete(store.lines, index, index+1)
	}
	return store.snapshot(), nil
}

func (store *fakeStore) ClearCart(_ context.Context, _ string) ([]cart.Line, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	store.lines = nil
	return []cart.Line{}, nil
}

func (store *fakeStore) SyncCart(_ context.Context, _ string, lines []cart.Line) ([]cart.Line, error) {
	if store.syncBlock != nil {
		store.syncEntered <- struct{}{}
		<-store.syncBlock
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	if store.syncErr != nil {
		return nil, store.syncErr
	}
	store.synced = append(store.synced, slices.Clone(lines))
	for _, line := range lines {
		store.next++
		line.ID = "srv-" + strconv.Itoa(store.next)
		store.lines = append(store.lines, line)
	}
	return store.snapshot(), nil
}

// flakyGuests fails Clear while clearErr is set.
type flakyGuests struct {
	*cart.MemoryStore
	clearErr error
}

func (store *flakyGuests) Clear(context context.Context, guestID string) error {
	if store.clearErr != nil {
		return store.clearErr
	}
	return store.MemoryStore.Clear(context, guestID)
}

type fixture struct {
	service *checkout.Service
	store   *fakeStore
	guests  *cart.MemoryStore
	flaky   *flakyGuests
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry, err := catalog.NewRegistry(logger, catalog.Seed())
	require.NoError(t, err)
	catalogService := catalog.NewService(registry, media.NewCloudinary("djdbzgoxk", ".avif"))

	store := &fakeStore{}
	guests := cart.NewMemoryStore()
	flaky := &flakyGuests{MemoryStore: guests}
	clock := time.UnixMilli(1_700_000_000_000)
	guest := cart.NewGuest(flaky, func() time.Time { return clock })

	service := checkout.NewService(catalogService, store, guest,
		checkout.Channel{BaseURL: "https://wa.me/", Phone: "+1234567890"}, logger)

	return &fixture{service: service, store: store, guests: guests, flaky: flaky}
}

// seedGuest stores n guest lines for guestID.
func (fx *fixture) seedGuest(t *testing.T, guestID string, n int) []cart.Line {
	t.Helper()
	lines := make([]cart.Line, n)
	for index := range lines {
		lines[index] = cart.Entry{
			Code:     "SPACE-0" + strconv.Itoa(index+1),
			Size:     cart.SizeMedium,
			Quantity: index + 1,
		}.Line(strconv.Itoa(1_700_000_000_000+index), time.UnixMilli(1_700_000_000_000).UTC())
	}
	require.NoError(t, fx.guests.Save(context.Background(), guestID, lines))
	return lines
}
