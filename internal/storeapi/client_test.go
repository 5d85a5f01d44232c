// Copyright (c) 2026 PressArt. All rights reserved.

package storeapi_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/sec"
	"github.com/pressart/storefront/internal/storeapi"
)

type captured struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

// newServer answers every request with status and payload, recording the request.
func newServer(t *testing.T, status int, payload string) (*storeapi.Client, *captured) {
	t.Helper()
	seen := &captured{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen.method = request.Method
		seen.path = request.URL.Path
		seen.auth = request.Header.Get("Authorization")
		seen.body = nil
		if data, _ := io.ReadAll(request.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &seen.body))
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	client := storeapi.New(server.URL+"/api/", 2*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return client, seen
}

/*
TestLoginWithGoogle posts the credential and profile and reads the session.
*/
func TestLoginWithGoogle(t *testing.T) {
	client, seen := newServer(t, http.StatusOK,
		`{"success":true,"token":"session-token","user":{"_id":"u1","email":"ana@example.com","name":"Ana Lima","given_name":"Ana"}}`)

	session, err := client.LoginWithGoogle(context.Background(), "google-credential", sec.GoogleProfile{
		Sub: "123", Email: "ana@example.com", Name: "Ana Lima", EmailVerified: true,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "/api/auth/google", seen.path)
	assert.Empty(t, seen.auth)
	assert.Equal(t, "google-credential", seen.body["googleToken"])
	userData := seen.body["userData"].(map[string]any)
	assert.Equal(t, "123", userData["sub"])
	assert.Equal(t, true, userData["email_verified"])

	assert.Equal(t, "session-token", session.Token)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, "Ana", session.User.DisplayName())
}

/*
TestLoginWithGoogle_Rejected maps a login 401 to UNAUTHORIZED with the upstream message.
*/
func TestLoginWithGoogle_Rejected(t *testing.T) {
	client, _ := newServer(t, http.StatusUnauthorized, `{"success":false,"message":"Invalid Google token"}`)

	_, err := client.LoginWithGoogle(context.Background(), "bad", sec.GoogleProfile{Sub: "1"})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, "Invalid Google token", err.Error())
}

/*
TestCartCalls checks method, path, bearer header and body of every cart call.
*/
func TestCartCalls(t *testing.T) {
	const payload = `{"success":true,"cart":{"items":[{"_id":"l1","code":"SPACE-01","size":"M","quantity":2,"price":25,"total":50}]}}`
	line := cart.Entry{Code: "SPACE-01", Size: cart.SizeMedium, Quantity: 2}.Line("", time.Time{})

	tests := []struct {
		name   string
		call   func(client *storeapi.Client) ([]cart.Line, error)
		method string
		path   string
		body   map[string]any
	}{
		{
			"get", func(client *storeapi.Client) ([]cart.Line, error) {
				return client.Cart(context.Background(), "tok")
			}, http.MethodGet, "/api/cart", nil,
		},
		{
			"add", func(client *storeapi.Client) ([]cart.Line, error) {
				return client.AddLine(context.Background(), "tok", line)
			}, http.MethodPost, "/api/cart/add",
			map[string]any{"code": "SPACE-01", "size": "M", "quantity": float64(2), "price": float64(25)},
		},
		{
			"update", func(client *storeapi.Client) ([]cart.Line, error) {
				return client.UpdateLine(context.Background(), "tok", "l1", line)
			}, http.MethodPut, "/api/cart/update/l1",
			map[string]any{"code": "SPACE-01", "size": "M", "quantity": float64(2), "price": float64(25)},
		},
		{
			"remove", func(client *storeapi.Client) ([]cart.Line, error) {
				return client.RemoveLine(context.Background(), "tok", "l1")
			}, http.MethodDelete, "/api/cart/remove/l1", nil,
		},
		{
			"clear", func(client *storeapi.Client) ([]cart.Line, error) {
				return client.ClearCart(context.Background(), "tok")
			}, http.MethodDelete, "/api/cart/clear", nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, seen := newServer(t, http.StatusOK, payload)

			lines, err := tt.call(client)
			require.NoError(t, err)

			assert.Equal(t, tt.method, seen.method)
			assert.Equal(t, tt.path, seen.path)
			assert.Equal(t, "Bearer tok", seen.auth)
			assert.Equal(t, tt.body, seen.body)

			require.Len(t, lines, 1)
			assert.Equal(t, "l1", lines[0].ID)
			assert.Equal(t, cart.Money(50), lines[0].Total)
		})
	}
}

/*
TestSyncCart sends the guest lines under localCartItems.
*/
func TestSyncCart(t *testing.T) {
	client, seen := newServer(t, http.StatusOK, `{"success":true,"cart":{"items":[]}}`)

	guest := []cart.Line{
		{ID: "1700000000000", Code: "LOL-01", Size: cart.SizeSmall, Quantity: 1, Price: 15, Total: 15},
	}
	lines, err := client.SyncCart(context.Background(), "tok", guest)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.NotNil(t, lines)

	assert.Equal(t, "/api/cart/sync", seen.path)
	items := seen.body["localCartItems"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(1700000000000), items[0].(map[string]any)["id"])
}

/*
TestErrorMapping covers the failure taxonomy of authenticated calls.
*/
func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
		code    string
		message string
	}{
		{"expired", http.StatusUnauthorized, `{"success":false,"message":"jwt expired"}`, apperr.CodeSessionExpired, "Session expired. Please log in again."},
		{"server_error_message", http.StatusInternalServerError, `{"success":false,"message":"Database down"}`, apperr.CodeNetwork, "Database down"},
		{"server_error_html", http.StatusBadGateway, `<html>bad gateway</html>`, apperr.CodeNetwork, "The store service is unavailable. Please try again."},
		{"unsuccessful_200", http.StatusOK, `{"success":false,"message":"Item not in cart"}`, apperr.CodeNetwork, "Item not in cart"},
		{"garbage_200", http.StatusOK, `not json`, apperr.CodeNetwork, "The store service is unavailable. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newServer(t, tt.status, tt.payload)

			_, err := client.Cart(context.Background(), "tok")
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, tt.code), err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

/*
TestUnreachable maps transport failures to NETWORK_ERROR.
*/
func TestUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := storeapi.New(url, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := client.Cart(context.Background(), "tok")
	assert.True(t, apperr.HasCode(err, apperr.CodeNetwork))
	assert.Error(t, client.Ping(context.Background()))
}

/*
TestPing accepts any HTTP answer, even an error status.
*/
func TestPing(t *testing.T) {
	client, seen := newServer(t, http.StatusNotFound, `{"success":false}`)
	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "/api/", seen.path)
}

/*
TestMeAndLogout cover the remaining auth calls.
*/
func TestMeAndLogout(t *testing.T) {
	client, seen := newServer(t, http.StatusOK, `{"success":true,"user":{"id":"u9","email":"x@example.com","name":"X"}}`)

	user, err := client.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u9", user.ID)
	assert.Equal(t, "X", user.DisplayName())
	assert.Equal(t, "/api/auth/me", seen.path)

	require.NoError(t, client.VerifyToken(context.Background(), "tok"))
	assert.Equal(t, http.MethodPost, seen.method)
	assert.Equal(t, "/api/auth/verify-token", seen.path)

	require.NoError(t, client.Logout(context.Background(), "tok"))
	assert.Equal(t, "/api/auth/logout", seen.path)
}

/*
TestUser_Initials follows the avatar fallbacks.
*/
func TestUser_Initials(t *testing.T) {
	tests := []struct {
		user storeapi.User
		want string
	}{
		{storeapi.User{GivenName: "ana", FamilyName: "lima", Name: "Ana Maria Lima"}, "AL"},
		{storeapi.User{Name: "Ana Maria Lima"}, "AM"},
		{storeapi.User{Name: "ana"}, "A"},
		{storeapi.User{Email: "zed@example.com"}, "Z"},
		{storeapi.User{}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.user.Initials())
	}
}
