// Copyright (c) 2026 PressArt. All rights reserved.

package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressart/storefront/internal/checkout"
	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/middleware"
	"github.com/pressart/storefront/internal/session"
	"github.com/pressart/storefront/internal/storeapi"
)

const guestID = "0b6f3c7e-8a51-4a4e-9a3b-3f0f7f1e2d11"

func (auth *fakeAuth) Me(_ context.Context, token string) (*storeapi.User, error) {
	if token != auth.token {
		return nil, apperr.SessionExpired()
	}
	return &storeapi.User{ID: "u1", Email: "ada@example.com"}, nil
}

func (auth *fakeAuth) VerifyToken(_ context.Context, token string) error {
	if token != auth.token {
		return apperr.Unauthorized("Invalid token")
	}
	return nil
}

// fakeMerger records merge calls.
type fakeMerger struct {
	owners []checkout.Owner
	result checkout.MergeResult
	err    error
}

func (merger *fakeMerger) Merge(_ context.Context, owner checkout.Owner) (checkout.MergeResult, error) {
	merger.owners = append(merger.owners, owner)
	return merger.result, merger.err
}

func newAuthRouter(auth *fakeAuth, merger *fakeMerger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(nil))
	router.Mount("/auth", session.NewHandler(auth, merger).Routes())
	return router
}

func post(t *testing.T, router http.Handler, target, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	request.Header.Set("X-Guest-ID", guestID)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder, decoded
}

/*
TestHandler_LoginMergesGuestCart logs in and hands over the header's guest cart.
*/
func TestHandler_LoginMergesGuestCart(t *testing.T) {
	token := sign(t, jwt.MapClaims{"id": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	auth := &fakeAuth{token: token}
	merger := &fakeMerger{result: checkout.MergeResult{Status: checkout.MergeMerged, Merged: 2}}
	router := newAuthRouter(auth, merger)

	recorder, body := post(t, router, "/auth/google", `{"credential":"`+googleCredential(t)+`"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, token, data["token"])
	assert.Equal(t, "merged", data["merge_status"])
	assert.EqualValues(t, 2, data["merged"])

	require.Len(t, merger.owners, 1)
	assert.Equal(t, checkout.Owner{Token: token, GuestID: guestID}, merger.owners[0])
}

/*
TestHandler_LoginMergeError still logs in and reports merge_failed.
*/
func TestHandler_LoginMergeError(t *testing.T) {
	token := sign(t, jwt.MapClaims{"id": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	merger := &fakeMerger{err: apperr.Internal(assert.AnError)}
	router := newAuthRouter(&fakeAuth{token: token}, merger)

	recorder, body := post(t, router, "/auth/google", `{"credential":"`+googleCredential(t)+`"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, token, data["token"])
	assert.Equal(t, "merge_failed", data["merge_status"])
	assert.NotContains(t, data, "cart")
}

/*
TestHandler_LoginErrors covers bad credentials, bad guest ids and upstream rejection.
*/
func TestHandler_LoginErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		auth   *fakeAuth
		status int
		code   string
	}{
		{"undecodable_credential", `{"credential":"nope"}`, &fakeAuth{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_guest_id", `{"credential":"CRED","guest_id":"cart-1"}`, &fakeAuth{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"rejected", `{"credential":"CRED"}`, &fakeAuth{loginErr: apperr.Unauthorized("Login failed")}, http.StatusUnauthorized, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merger := &fakeMerger{}
			router := newAuthRouter(tt.auth, merger)

			body := strings.ReplaceAll(tt.body, "CRED", googleCredential(t))
			recorder, decoded := post(t, router, "/auth/google", body, "")
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, decoded["code"])
			assert.Empty(t, merger.owners)
		})
	}
}

/*
TestHandler_MeAndLogout checks the me, verify and logout endpoints.
*/
func TestHandler_MeAndLogout(t *testing.T) {
	token := sign(t, jwt.MapClaims{"id": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	auth := &fakeAuth{token: token}
	router := newAuthRouter(auth, &fakeMerger{})

	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"email":"ada@example.com"`)

	recorder, body := post(t, router, "/auth/verify", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, body["data"].(map[string]any)["valid"])

	recorder, _ = post(t, router, "/auth/verify", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, body = post(t, router, "/auth/logout", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, body["data"].(map[string]any)["logged_out"])
	assert.Equal(t, []string{token}, auth.loggedOut)

	recorder, _ = post(t, router, "/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, auth.loggedOut, 1)
}
