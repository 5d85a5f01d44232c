// Copyright (c) 2026 PressArt. All rights reserved.

// Package sec provides token inspection for the storefront.
//
// # Architecture
//
// The storefront never signs tokens. Session tokens are issued by the external
// store API and Google ID tokens by Google; both are verified upstream. This
// package only reads their payloads: the session expiry (so an expired session
// is detected locally before a round trip) and the Google profile that the
// login call forwards as userData.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token cannot be decoded at all.
var ErrMalformedToken = errors.New("sec: malformed token")

// AuthClaims represents the payload of a store API session token.
//
// Token keeps the raw bearer string so that handlers can forward it upstream
// without re-reading the Authorization header.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
	Email  string `json:"email"`

	Token string `json:"-"`
}

// Expired reports whether the token is past its expiry at the given instant.
// A token without an exp claim counts as expired.
func (claims *AuthClaims) Expired(now time.Time) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(now)
}

// ParseClaims decodes a session token without verifying its signature.
//
// Expiry is NOT checked here; call [AuthClaims.Expired] so that the caller
// decides the clock.
func ParseClaims(token string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	// Some issuers put the identity only in "sub".
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	claims.Token = token

	return claims, nil
}

// # Google Identity

// GoogleProfile is the subset of a Google ID token forwarded to the store API
// as userData on login.
type GoogleProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture,omitempty"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// ParseGoogleCredential decodes the profile embedded in a Google ID token.
//
// The credential signature is verified by the store API, which receives the
// raw credential alongside the decoded profile.
func ParseGoogleCredential(credential string) (*GoogleProfile, error) {
	claims := jwt.MapClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	profile := &GoogleProfile{
		Sub:        stringClaim(claims, "sub"),
		Email:      stringClaim(claims, "email"),
		Name:       stringClaim(claims, "name"),
		Picture:    stringClaim(claims, "picture"),
		GivenName:  stringClaim(claims, "given_name"),
		FamilyName: stringClaim(claims, "family_name"),
	}

	// Google sends a bool, some older tokens a "true"/"false" string.
	switch verified := claims["email_verified"].(type) {
	case bool:
		profile.EmailVerified = verified
	case string:
		profile.EmailVerified = verified == "true"
	}

	if profile.Sub == "" {
		return nil, fmt.Errorf("%w: credential has no subject", ErrMalformedToken)
	}

	return profile, nil
}

func stringClaim(claims jwt.MapClaims, name string) string {
	value, _ := claims[name].(string)
	return value
}
