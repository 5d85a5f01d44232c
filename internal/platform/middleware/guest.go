// Copyright (c) 2026 PressArt. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/constants"
	"github.com/pressart/storefront/internal/platform/ctxutil"
	"github.com/pressart/storefront/internal/platform/respond"
	"github.com/pressart/storefront/pkg/uuid"
)

// GuestID identifies anonymous shoppers by the X-Guest-ID header.
//
// A request without the header gets a fresh ID, echoed back in the response
// header so the client can keep it for later requests (the browser analogue
// is the guest cart key in localStorage). A malformed header is rejected
// rather than replaced, so a client bug cannot silently orphan a cart.
func GuestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			guestID := strings.TrimSpace(request.Header.Get(constants.HeaderXGuestID))

			switch {
			case guestID == "":
				guestID = uuid.New()
			case !uuid.Valid(guestID):
				respond.Error(writer, request, apperr.ValidationError("Invalid guest identifier",
					apperr.FieldError{Field: constants.HeaderXGuestID, Message: "Must be a valid UUID"},
				))
				return
			}

			writer.Header().Set(constants.HeaderXGuestID, guestID)
			ctx := ctxutil.WithGuestID(request.Context(), guestID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
