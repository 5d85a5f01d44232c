// Copyright (c) 2026 PressArt. All rights reserved.

package session

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pressart/storefront/internal/checkout"
	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/ctxutil"
	"github.com/pressart/storefront/internal/platform/middleware"
	requestutil "github.com/pressart/storefront/internal/platform/request"
	"github.com/pressart/storefront/internal/platform/respond"
	"github.com/pressart/storefront/internal/platform/sec"
	"github.com/pressart/storefront/internal/storeapi"
	"github.com/pressart/storefront/pkg/uuid"
)

// Upstream is the store API surface the auth endpoints proxy to.
type Upstream interface {
	Authenticator
	Me(context context.Context, token string) (*storeapi.User, error)
	VerifyToken(context context.Context, token string) error
}

// Merger hands a guest cart to an account. *checkout.Service satisfies it.
type Merger interface {
	Merge(context context.Context, owner checkout.Owner) (checkout.MergeResult, error)
}

// Handler proxies Google login for browser clients and merges the caller's
// guest cart into the account in the same round trip.
type Handler struct {
	upstream Upstream
	merger   Merger
}

// NewHandler constructs the auth [Handler].
func NewHandler(upstream Upstream, merger Merger) *Handler {
	return &Handler{upstream: upstream, merger: merger}
}

// Routes returns the /auth endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.GuestID())

	router.Post("/google", handler.loginWithGoogle)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)
	router.With(middleware.RequireAuth).Post("/verify", handler.verify)

	return router
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
	GuestID    string `json:"guest_id"`
}

type loginResponse struct {
	Token       string               `json:"token"`
	User        storeapi.User        `json:"user"`
	MergeStatus checkout.MergeStatus `json:"merge_status"`
	Merged      int                  `json:"merged"`
	Cart        *checkout.Cart       `json:"cart,omitempty"`
}

/*
POST /api/v1/auth/google.

Description: Exchanges a Google credential for a store session, then merges
the guest cart (guest_id, or the X-Guest-ID header) into the account.
A failed merge does not fail the login; merge_status reports it and the
guest cart is kept for the next attempt.

Request:
  - body: {credential, guest_id?}

Response:
  - 200: {token, user, merge_status, merged, cart}
  - 400: VALIDATION_ERROR: Missing or undecodable credential
  - 401: UNAUTHORIZED: Credential rejected upstream
  - 502: NETWORK_ERROR
*/
func (handler *Handler) loginWithGoogle(writer http.ResponseWriter, request *http.Request) {
	var input googleLoginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 1. Decode the credential ───────────────────────────────────────
	credential := strings.TrimSpace(input.Credential)
	profile, err := sec.ParseGoogleCredential(credential)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Failed to process login. Please try again.",
			apperr.FieldError{Field: "credential", Message: "Must be a Google ID token"}))
		return
	}

	guestID := requestutil.GuestID(request)
	if input.GuestID != "" {
		if !uuid.Valid(input.GuestID) {
			respond.Error(writer, request, apperr.ValidationError("Invalid guest identifier",
				apperr.FieldError{Field: "guest_id", Message: "Must be a valid UUID"}))
			return
		}
		guestID = input.GuestID
	}

	// ── 2. Upstream login ──────────────────────────────────────────────
	session, err := handler.upstream.LoginWithGoogle(request.Context(), credential, *profile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Guest cart handoff ──────────────────────────────────────────
	response := loginResponse{Token: session.Token, User: session.User}

	result, err := handler.merger.Merge(request.Context(), checkout.Owner{Token: session.Token, GuestID: guestID})
	if err != nil {
		ctxutil.GetLogger(request.Context()).Warn("login_merge_failed", slog.String("error", err.Error()))
		response.MergeStatus = checkout.MergeFailed
	} else {
		response.MergeStatus = result.Status
		response.Merged = result.Merged
		response.Cart = &result.Cart
	}

	respond.OK(writer, response)
}

// GET /api/v1/auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.upstream.Me(request.Context(), claims.Token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
POST /api/v1/auth/verify.

Description: Asks the store API whether the bearer token is still accepted.
The local expiry check has already run in the authenticate middleware.

Response:
  - 200: {valid: true}
  - 401: UNAUTHORIZED / SESSION_EXPIRED
  - 502: NETWORK_ERROR
*/
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	if err := handler.upstream.VerifyToken(request.Context(), requestutil.Token(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"valid": true})
}

// POST /api/v1/auth/logout. Always succeeds; the upstream call is best effort.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if token := requestutil.Token(request); token != "" {
		if err := handler.upstream.Logout(request.Context(), token); err != nil {
			ctxutil.GetLogger(request.Context()).Warn("logout_upstream_failed", slog.String("error", err.Error()))
		}
	}
	respond.OK(writer, map[string]bool{"logged_out": true})
}
