// Copyright (c) 2026 PressArt. All rights reserved.

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/constants"
	"github.com/pressart/storefront/internal/platform/ctxutil"
	"github.com/pressart/storefront/internal/platform/respond"
	"github.com/pressart/storefront/internal/platform/sec"
)

// Authenticate extracts the session token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous (guest).
//  3. If present, decode the token with [sec.ParseClaims]. The signature is
//     verified by the store API on every forwarded call, so only the expiry is
//     checked here.
//  4. An expired token is rejected with SESSION_EXPIRED so the client can drop
//     it and prompt for a new login.
//  5. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// The clock is injectable for tests; nil means [time.Now].
func Authenticate(now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], constants.AuthorizationBearer) {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Decoding ─────────────────────────────────────────────
			claims, err := sec.ParseClaims(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
				return
			}

			// ── 4. Expiry ─────────────────────────────────────────────────────
			if claims.Expired(now()) {
				respond.Error(writer, request, apperr.SessionExpired())
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
