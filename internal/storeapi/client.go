// Copyright (c) 2026 PressArt. All rights reserved.

/*
Package storeapi is the client for the external store API that owns user
sessions and authenticated carts.

Every call is JSON over HTTP with an optional "Authorization: Bearer <token>"
header. Responses share one envelope: {success, message, token, user, cart}.

Error Mapping:

  - Transport failure, non-2xx status or success=false: [apperr.Upstream]
    (NETWORK_ERROR), carrying the upstream "message" when present.
  - 401 on an authenticated call: [apperr.SessionExpired].
  - 401 on login: [apperr.Unauthorized].

The client holds no session state; the bearer token is an argument, so one
client serves every shopper of the API server.
*/
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/constants"
)

// maxResponseBytes bounds how much of an upstream body is read.
const maxResponseBytes = 1 << 20

// # Wire Types

// User is the store API's view of a shopper.
type User struct {
	ID            string `json:"id,omitempty"`
	GoogleID      string `json:"googleId,omitempty"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}

// UnmarshalJSON accepts the user id as "id" or "_id".
func (user *User) UnmarshalJSON(data []byte) error {
	type plain User
	var decoded struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*user = User(decoded.plain)
	if user.ID == "" {
		user.ID = decoded.MongoID
	}
	return nil
}

// DisplayName is the name used in greetings.
func (user User) DisplayName() string {
	if user.GivenName != "" {
		return user.GivenName
	}
	return user.Name
}

// Initials are two letters for an avatar: given and family name first, else
// the first two words of the name, else the first letter of the name or email.
func (user User) Initials() string {
	if user.GivenName != "" && user.FamilyName != "" {
		return strings.ToUpper(firstRune(user.GivenName) + firstRune(user.FamilyName))
	}
	parts := strings.Fields(user.Name)
	switch {
	case len(parts) >= 2:
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[1]))
	case len(parts) == 1:
		return strings.ToUpper(firstRune(parts[0]))
	}
	return strings.ToUpper(firstRune(user.Email))
}

func firstRune(value string) string {
	for _, r := range value {
		return string(r)
	}
	return ""
}

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Cart    *struct {
		Items []cart.Line `json:"items"`
	} `json:"cart"`
}

func (body *envelope) lines() []cart.Line {
	if body.Cart == nil || body.Cart.Items == nil {
		return []cart.Line{}
	}
	return body.Cart.Items
}

// # Client

// Client calls the store API.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

/*
New creates a store API client.

Parameters:
  - baseURL: string (e.g. "http://localhost:10000/api")
  - timeout: time.Duration (Per-request ceiling, applied on top of the caller's context)
  - logger: *slog.Logger

Returns:
  - *Client: Safe for concurrent use
*/
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// BaseURL returns the configured API root.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// call performs one request and decodes the shared envelope.
func (client *Client) call(context context.Context, method, path, token string, payload any) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("storeapi_encode_failed: %w", err))
		}
		body = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(context, method, client.baseURL+path, body)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("storeapi_request_build_failed: %w", err))
	}
	request.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	request.Header.Set("Accept", constants.ContentTypeJSON)
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, constants.AuthorizationBearer+" "+token)
	}

	start := time.Now()
	response, err := client.http.Do(request)
	if err != nil {
		client.logger.Warn("storeapi_unreachable",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, apperr.Upstream(fmt.Errorf("storeapi_request_failed: %w", err))
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("storeapi_read_failed: %w", err))
	}

	client.logger.Debug("storeapi_call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	var decoded envelope
	decodeErr := json.Unmarshal(raw, &decoded)

	switch {
	case response.StatusCode == http.StatusUnauthorized && token != "":
		return nil, apperr.SessionExpired()
	case response.StatusCode == http.StatusUnauthorized:
		return nil, apperr.Unauthorized(messageOr(decoded.Message, "Login failed"))
	case response.StatusCode < 200 || response.StatusCode > 299:
		return nil, upstream(decoded.Message, fmt.Errorf("storeapi_status_%d: %s %s", response.StatusCode, method, path))
	case decodeErr != nil:
		return nil, apperr.Upstream(fmt.Errorf("storeapi_decode_failed: %w", decodeErr))
	case !decoded.Success:
		return nil, upstream(decoded.Message, fmt.Errorf("storeapi_unsuccessful: %s %s", method, path))
	}

	return &decoded, nil
}

func upstream(message string, cause error) *apperr.AppError {
	appErr := apperr.Upstream(cause)
	if message != "" {
		appErr.Message = message
	}
	return appErr
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

func linePath(action, lineID string) string {
	return "/cart/" + action + "/" + url.PathEscape(lineID)
}

// Ping reports whether the store API answers. Any HTTP response counts; only
// transport failures are errors.
func (client *Client) Ping(context context.Context) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("storeapi_request_build_failed: %w", err)
	}
	response, err := client.http.Do(request)
	if err != nil {
		return fmt.Errorf("storeapi_unreachable: %w", err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxResponseBytes))
	return response.Body.Close()
}
