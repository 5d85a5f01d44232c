// Copyright (c) 2026 PressArt. All rights reserved.

package storeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/sec"
)

// # Authentication

type googleLoginRequest struct {
	GoogleToken string            `json:"googleToken"`
	UserData    sec.GoogleProfile `json:"userData"`
}

/*
LoginWithGoogle exchanges a Google credential for a store session.

Parameters:
  - credential: string (The raw Google ID token)
  - profile: sec.GoogleProfile (Decoded from the credential, forwarded as userData)

Returns:
  - *Session: The session token and user
  - error: Unauthorized when the store rejects the credential, NETWORK_ERROR otherwise
*/
func (client *Client) LoginWithGoogle(context context.Context, credential string, profile sec.GoogleProfile) (*Session, error) {
	body, err := client.call(context, http.MethodPost, "/auth/google", "", googleLoginRequest{
		GoogleToken: credential,
		UserData:    profile,
	})
	if err != nil {
		return nil, err
	}

	if body.Token == "" || body.User == nil {
		return nil, apperr.Upstream(fmt.Errorf("storeapi_login_incomplete: token or user missing"))
	}
	return &Session{Token: body.Token, User: *body.User}, nil
}

// Me fetches the user behind token.
func (client *Client) Me(context context.Context, token string) (*User, error) {
	body, err := client.call(context, http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	if body.User == nil {
		return nil, apperr.Upstream(fmt.Errorf("storeapi_me_incomplete: user missing"))
	}
	return body.User, nil
}

// VerifyToken asks the store API whether token is still accepted.
func (client *Client) VerifyToken(context context.Context, token string) error {
	_, err := client.call(context, http.MethodPost, "/auth/verify-token", token, nil)
	return err
}

// Logout invalidates the session upstream. Callers clear local state
// regardless of the outcome.
func (client *Client) Logout(context context.Context, token string) error {
	_, err := client.call(context, http.MethodPost, "/auth/logout", token, nil)
	return err
}
