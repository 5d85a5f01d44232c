// Copyright (c) 2026 PressArt. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/checkout"
	"github.com/pressart/storefront/internal/session"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes one CLI invocation against dir.
func run(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("ENVIRONMENT", "test")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--state-dir", dir}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func guestLines(t *testing.T, dir string) []cart.Line {
	t.Helper()
	store, err := cart.NewFileStore(dir, discard)
	require.NoError(t, err)
	lines, err := store.Load(context.Background(), "")
	require.NoError(t, err)
	return lines
}

/*
TestCatalogCommands covers categories and code conversion.
*/
func TestCatalogCommands(t *testing.T) {
	dir := t.TempDir()

	out := run(t, dir, "", "categories")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "dc-heroes")
	assert.Contains(t, out.stdout, "HEROES-NN")

	out = run(t, dir, "", "codes", "encode", "dc-heroes", "7")
	require.NoError(t, out.err)
	assert.Equal(t, "HEROES-07\n", out.stdout)

	out = run(t, dir, "", "codes", "decode", "PAINTINGS-32")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "le-dejeuner-sur-lherbe")

	out = run(t, dir, "", "codes", "decode", "NOPE-01")
	assert.Error(t, out.err)

	out = run(t, dir, "", "urls", "league-of-legends", "--limit", "5")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "LOL-05")
	assert.NotContains(t, out.stdout, "LOL-06")
	assert.Contains(t, out.stdout, "page 1/12, 58 images")
}

/*
TestCartCommands adds, edits and removes guest lines across invocations.
*/
func TestCartCommands(t *testing.T) {
	dir := t.TempDir()

	out := run(t, dir, "", "cart", "add", "LOL-01", "-s", "m", "-q", "2")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Added LOL-01")
	assert.Contains(t, out.stdout, "Total: $50 (1 items, guest cart)")

	out = run(t, dir, "", "cart", "add", "FOO-01", "-s", "M")
	assert.EqualError(t, out.err, checkout.MsgUnavailableCode)

	out = run(t, dir, "", "cart", "add", "LOL-02")
	assert.EqualError(t, out.err, checkout.MsgSelectSize)

	out = run(t, dir, "", "cart", "add", "--size", "M")
	assert.EqualError(t, out.err, checkout.MsgEnterCode)

	lines := guestLines(t, dir)
	require.Len(t, lines, 1)
	id := lines[0].ID

	out = run(t, dir, "", "cart", "edit", id, "--size", "L")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Total: $80")

	lines = guestLines(t, dir)
	require.Len(t, lines, 1)
	assert.Equal(t, id, lines[0].ID, "edits keep the line id")
	assert.Equal(t, cart.SizeLarge, lines[0].Size)

	out = run(t, dir, "", "cart", "remove", id)
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Your cart is empty.")
	assert.Empty(t, guestLines(t, dir))
}

/*
TestCartCheckout prints the order message and link without touching the cart.
*/
func TestCartCheckout(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, run(t, dir, "", "cart", "add", "PAINTINGS-32", "-s", "M").err)

	out := run(t, dir, "", "cart", "checkout")
	assert.EqualError(t, out.err, checkout.MsgSelectItems)

	out = run(t, dir, "", "cart", "checkout", "--all")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Hi! I'd like to order the following items:")
	assert.Contains(t, out.stdout, "https://wa.me/+1234567890?text=")
	assert.Len(t, guestLines(t, dir), 1)

	out = run(t, dir, "", "cart", "select", "--all")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Selected: $25")

	require.NoError(t, run(t, dir, "", "cart", "clear").err)
	assert.Empty(t, guestLines(t, dir))
}

// storeServer fakes the store API for login, cart sync and logout.
type storeServer struct {
	mu     sync.Mutex
	token  string
	synced int
	calls  []string
}

func newStoreServer(t *testing.T) *storeServer {
	t.Helper()
	store := &storeServer{token: sign(t, jwt.MapClaims{"id": "u1", "exp": time.Now().Add(time.Hour).Unix()})}
	account := `{"success":true,"cart":{"items":[{"_id":"s1","code":"LOL-01","size":"M","quantity":2,"price":25,"total":50}]}}`

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		store.mu.Lock()
		defer store.mu.Unlock()
		store.calls = append(store.calls, request.Method+" "+request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		switch request.URL.Path {
		case "/api/auth/google":
			_, _ = writer.Write([]byte(`{"success":true,"token":"` + store.token +
				`","user":{"_id":"u1","email":"ada@example.com","name":"Ada Lovelace","given_name":"Ada","family_name":"Lovelace"}}`))
		case "/api/cart/sync":
			var body struct {
				LocalCartItems []json.RawMessage `json:"localCartItems"`
			}
			assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			store.synced += len(body.LocalCartItems)
			_, _ = writer.Write([]byte(account))
		case "/api/cart":
			_, _ = writer.Write([]byte(account))
		case "/api/auth/logout":
			_, _ = writer.Write([]byte(`{"success":true}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"success":false,"message":"not found"}`))
		}
	}))
	t.Cleanup(server.Close)
	t.Setenv("STORE_API_BASE_URL", server.URL+"/api")
	return store
}

/*
TestSessionCommands logs in, merges the local cart, and logs out.
*/
func TestSessionCommands(t *testing.T) {
	dir := t.TempDir()
	store := newStoreServer(t)
	credential := sign(t, jwt.MapClaims{"sub": "google-1", "email": "ada@example.com", "name": "Ada Lovelace"})

	require.NoError(t, run(t, dir, "", "cart", "add", "LOL-01", "-s", "M", "-q", "2").err)

	out := run(t, dir, "", "whoami")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Not logged in")

	out = run(t, dir, credential+"\n", "login", "--credential", "-")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Welcome, Ada!")
	assert.Contains(t, out.stdout, "Moved 1 local items")
	assert.Equal(t, 1, store.synced)
	assert.Empty(t, guestLines(t, dir), "the guest cart is cleared after the merge")

	out = run(t, dir, "", "whoami")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "[AL] Ada Lovelace <ada@example.com>")

	out = run(t, dir, "", "cart")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "(id s1)")
	assert.Contains(t, out.stdout, "server cart")

	out = run(t, dir, "", "logout")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Logged out.")
	assert.Contains(t, store.calls, "POST /api/auth/logout")

	out = run(t, dir, "", "cart")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Your cart is empty.")
}

/*
TestExpiredSession drops a saved session whose token has expired.
*/
func TestExpiredSession(t *testing.T) {
	dir := t.TempDir()
	store, err := session.NewFileStore(dir, discard)
	require.NoError(t, err)
	expired := sign(t, jwt.MapClaims{"id": "u1", "exp": time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, store.Save(context.Background(), session.State{Token: expired}))

	out := run(t, dir, "", "whoami")
	require.NoError(t, out.err)
	assert.Contains(t, out.stderr, MsgSessionExpired)
	assert.Contains(t, out.stdout, "Not logged in")

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved)
}

/*
TestChat drives the interactive assistant from code entry to checkout.
*/
func TestChat(t *testing.T) {
	dir := t.TempDir()
	script := strings.Join([]string{
		"help",
		"FOO-01",
		"SPACE-01",
		"size XL",
		"qty 2",
		"add",
		"select all",
		"checkout",
		"quit",
	}, "\n") + "\n"

	out := run(t, dir, script, "chat")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, checkout.MsgUnavailableCode)
	assert.Contains(t, out.stdout, "SPACE-01 - Space")
	assert.Contains(t, out.stdout, "SPACE-01: size XL, qty 2.")
	assert.Contains(t, out.stdout, "Added to your cart.")
	assert.Contains(t, out.stdout, "1 selected, $120")
	assert.Contains(t, out.stdout, "https://wa.me/+1234567890?text=")

	lines := guestLines(t, dir)
	require.Len(t, lines, 1)
	assert.Equal(t, cart.Money(120), lines[0].Total)
}
