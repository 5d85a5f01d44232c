// Copyright (c) 2026 PressArt. All rights reserved.

package cart_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/platform/apperr"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestFileStore_RoundTrip saves, loads and clears the CLI guest cart file.
*/
func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := cart.NewFileStore(dir, discard())
	require.NoError(t, err)
	ctx := context.Background()

	lines, err := store.Load(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.NotNil(t, lines)

	saved := []cart.Line{
		cart.Entry{Code: "AMONG-01", Size: cart.SizeMedium, Quantity: 2}.Line("1700000000000", time.UnixMilli(1_700_000_000_000).UTC()),
	}
	require.NoError(t, store.Save(ctx, "", saved))
	assert.FileExists(t, filepath.Join(dir, "pressart-cart-guest.json"))

	loaded, err := store.Load(ctx, "")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "1700000000000", loaded[0].ID)
	assert.Equal(t, cart.Money(50), loaded[0].Total)
	assert.True(t, saved[0].AddedAt.Equal(loaded[0].AddedAt))

	require.NoError(t, store.Clear(ctx, ""))
	require.NoError(t, store.Clear(ctx, ""))
	assert.NoFileExists(t, filepath.Join(dir, "pressart-cart-guest.json"))
}

/*
TestFileStore_Unreadable treats a corrupt cart file as empty and warns.
*/
func TestFileStore_Unreadable(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	store, err := cart.NewFileStore(dir, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pressart-cart-guest.json"), []byte("{not json"), 0o600))

	lines, err := store.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Contains(t, logs.String(), "guest_cart_unreadable")
}

/*
TestFileStore_PerGuest keeps guests apart when ids are given.
*/
func TestFileStore_PerGuest(t *testing.T) {
	store, err := cart.NewFileStore(t.TempDir(), discard())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", []cart.Line{{ID: "1", Code: "LOL-01", Size: cart.SizeSmall, Quantity: 1, Price: 15, Total: 15}}))

	other, err := store.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func newRedisStore(t *testing.T, ttl time.Duration) (*cart.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	return cart.NewRedisStore(client, ttl, discard()), server
}

/*
TestRedisStore_RoundTrip saves, loads and clears a guest cart under its key.
*/
func TestRedisStore_RoundTrip(t *testing.T) {
	store, server := newRedisStore(t, time.Minute)
	ctx := context.Background()
	guestID := uuid.NewString()
	key := "pressart-cart-guest:" + guestID

	lines, err := store.Load(ctx, guestID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	saved := []cart.Line{{ID: "1", Code: "LOL-01", Size: cart.SizeSmall, Quantity: 1, Price: 15, Total: 15}}
	require.NoError(t, store.Save(ctx, guestID, saved))
	assert.True(t, server.Exists(key))
	assert.Equal(t, time.Minute, server.TTL(key))

	lines, err = store.Load(ctx, guestID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "LOL-01", lines[0].Code)

	require.NoError(t, store.Clear(ctx, guestID))
	assert.False(t, server.Exists(key))
	lines, err = store.Load(ctx, guestID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

/*
TestRedisStore_TTL refreshes the expiry on every save and drops idle carts.
*/
func TestRedisStore_TTL(t *testing.T) {
	store, server := newRedisStore(t, time.Minute)
	ctx := context.Background()
	key := "pressart-cart-guest:g1"
	line := cart.Line{ID: "1", Code: "LOL-01", Size: cart.SizeSmall, Quantity: 1, Price: 15, Total: 15}

	require.NoError(t, store.Save(ctx, "g1", []cart.Line{line}))
	server.FastForward(40 * time.Second)
	assert.Equal(t, 20*time.Second, server.TTL(key))

	require.NoError(t, store.Save(ctx, "g1", []cart.Line{line}))
	assert.Equal(t, time.Minute, server.TTL(key))

	server.FastForward(2 * time.Minute)
	lines, err := store.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

/*
TestRedisStore_Unreadable loads corrupted data as an empty cart.
*/
func TestRedisStore_Unreadable(t *testing.T) {
	store, server := newRedisStore(t, time.Minute)
	require.NoError(t, server.Set("pressart-cart-guest:g1", "{not json"))

	lines, err := store.Load(context.Background(), "g1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

/*
TestRedisStore_Unavailable reports SERVICE_UNAVAILABLE when Redis is down.
*/
func TestRedisStore_Unavailable(t *testing.T) {
	store, server := newRedisStore(t, time.Minute)
	server.Close()
	ctx := context.Background()

	_, err := store.Load(ctx, "g1")
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable), err)
	assert.Equal(t, cart.MsgStorageUnavailable, err.Error())

	err = store.Save(ctx, "g1", nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable), err)

	err = store.Clear(ctx, "g1")
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable), err)
}

/*
TestGuest_Mutations walks a guest cart through add, update and remove.
*/
func TestGuest_Mutations(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	guest := cart.NewGuest(cart.NewMemoryStore(), func() time.Time { return now })
	ctx := context.Background()

	lines, err := guest.Add(ctx, "g1", cart.Entry{Code: "SPACE-01", Size: cart.SizeSmall, Quantity: 1})
	require.NoError(t, err)
	lines, err = guest.Add(ctx, "g1", cart.Entry{Code: "SPACE-02", Size: cart.SizeLarge, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.NotEqual(t, lines[0].ID, lines[1].ID)
	assert.Equal(t, cart.Money(95), cart.Total(lines))

	firstID := lines[0].ID
	lines, err = guest.Update(ctx, "g1", firstID, cart.Entry{Code: "SPACE-09", Size: cart.SizeExtraLarge, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, firstID, lines[0].ID)
	assert.Equal(t, "SPACE-09", lines[0].Code)
	assert.Equal(t, cart.Money(60), lines[0].Total)

	_, err = guest.Update(ctx, "g1", "missing", cart.Entry{Code: "SPACE-09", Size: cart.SizeSmall, Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrLineNotFound)

	lines, err = guest.Remove(ctx, "g1", firstID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "SPACE-02", lines[0].Code)

	lines, err = guest.Remove(ctx, "g1", "missing")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, guest.Clear(ctx, "g1"))
	lines, err = guest.Lines(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
