// Copyright (c) 2026 PressArt. All rights reserved.

/*
Package session manages a shopper's login session: Google sign-in through the
store API, persistence between runs, and proactive expiry.

Lifecycle:

  - Restore: a saved session is reloaded only if its token is still live;
    an expired one is cleared and reported as SESSION_EXPIRED.
  - Login: the Google credential is decoded into the profile sent upstream,
    the returned session is saved, then login listeners run (cart merge).
  - Logout: local state is cleared even when the upstream call fails, then
    logout listeners run (guest cart reload).
  - Expiry: [Manager.Check] and [Manager.Watch] force a logout once the token
    is past its exp claim.
*/
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/sec"
	"github.com/pressart/storefront/internal/storeapi"
)

// State is a live session.
type State struct {
	Token string        `json:"token"`
	User  storeapi.User `json:"user"`
}

// Authenticator is the store API's auth surface. *storeapi.Client satisfies it.
type Authenticator interface {
	LoginWithGoogle(context context.Context, credential string, profile sec.GoogleProfile) (*storeapi.Session, error)
	Logout(context context.Context, token string) error
}

// LoginListener runs after a successful login.
type LoginListener func(context context.Context, state State)

// LogoutListener runs after every logout, forced or not.
type LogoutListener func(context context.Context)

// Manager owns the current session. It is safe for concurrent use.
type Manager struct {
	auth   Authenticator
	store  Store
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    *State
	onLogin  []LoginListener
	onLogout []LogoutListener
}

// NewManager creates a logged-out [Manager]. now may be nil.
func NewManager(auth Authenticator, store Store, logger *slog.Logger, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{auth: auth, store: store, logger: logger, now: now}
}

// OnLogin registers a listener for successful logins.
func (manager *Manager) OnLogin(listener LoginListener) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.onLogin = append(manager.onLogin, listener)
}

// OnLogout registers a listener for logouts.
func (manager *Manager) OnLogout(listener LogoutListener) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.onLogout = append(manager.onLogout, listener)
}

// Current returns a copy of the live session, or nil when logged out.
func (manager *Manager) Current() *State {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.state == nil {
		return nil
	}
	state := *manager.state
	return &state
}

// Token returns the live bearer token, or "".
func (manager *Manager) Token() string {
	if state := manager.Current(); state != nil {
		return state.Token
	}
	return ""
}

/*
Restore reloads the saved session.

Returns:
  - *State: The restored session, or nil when none was saved
  - error: SESSION_EXPIRED when the saved token is expired or unreadable (the
    saved session is cleared); storage errors otherwise
*/
func (manager *Manager) Restore(context context.Context) (*State, error) {
	saved, err := manager.store.Load(context)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, nil
	}

	if !manager.live(saved.Token) {
		if err := manager.store.Clear(context); err != nil {
			return nil, err
		}
		manager.logger.Info("session_restore_expired")
		return nil, apperr.SessionExpired()
	}

	manager.mu.Lock()
	manager.state = saved
	manager.mu.Unlock()

	return manager.Current(), nil
}

/*
LoginWithGoogle signs in with a Google ID token.

Parameters:
  - credential: string (Raw Google ID token)

Returns:
  - *State: The new session
  - error: VALIDATION_ERROR for an undecodable credential; upstream errors as is
*/
func (manager *Manager) LoginWithGoogle(context context.Context, credential string) (*State, error) {
	profile, err := sec.ParseGoogleCredential(credential)
	if err != nil {
		return nil, apperr.ValidationError("Failed to process login. Please try again.",
			apperr.FieldError{Field: "credential", Message: "Must be a Google ID token"})
	}

	session, err := manager.auth.LoginWithGoogle(context, credential, *profile)
	if err != nil {
		manager.logger.Warn("session_login_failed", slog.String("error", err.Error()))
		return nil, err
	}

	state := &State{Token: session.Token, User: session.User}
	if err := manager.store.Save(context, *state); err != nil {
		return nil, err
	}

	manager.mu.Lock()
	manager.state = state
	listeners := append([]LoginListener(nil), manager.onLogin...)
	manager.mu.Unlock()

	manager.logger.Info("session_login", slog.String("user_id", state.User.ID))
	for _, listener := range listeners {
		listener(context, *state)
	}
	return manager.Current(), nil
}

// Logout ends the session. The upstream call is best effort; local state is
// always cleared and logout listeners always run.
func (manager *Manager) Logout(context context.Context) error {
	token := manager.Token()
	if token != "" {
		if err := manager.auth.Logout(context, token); err != nil {
			manager.logger.Warn("session_logout_upstream_failed", slog.String("error", err.Error()))
		}
	}

	manager.mu.Lock()
	manager.state = nil
	listeners := append([]LogoutListener(nil), manager.onLogout...)
	manager.mu.Unlock()

	clearErr := manager.store.Clear(context)
	if clearErr != nil {
		manager.logger.Error("session_clear_failed", slog.String("error", clearErr.Error()))
	}

	for _, listener := range listeners {
		listener(context)
	}
	return clearErr
}

// Check forces a logout when the live token has expired. It returns
// SESSION_EXPIRED in that case, nil otherwise.
func (manager *Manager) Check(context context.Context) error {
	token := manager.Token()
	if token == "" || manager.live(token) {
		return nil
	}

	manager.logger.Info("session_expired_forced_logout")
	_ = manager.Logout(context)
	return apperr.SessionExpired()
}

// DefaultCheckInterval is the expiry polling period of long-lived clients.
const DefaultCheckInterval = 5 * time.Minute

/*
Watch runs [Manager.Check] every interval until ctx is done. A non-positive
interval means [DefaultCheckInterval].

Each forced logout is delivered on the returned channel, which is closed
when the watcher stops.
*/
func (manager *Manager) Watch(ctx context.Context, interval time.Duration) <-chan error {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	expired := make(chan error, 1)

	go func() {
		defer close(expired)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := manager.Check(ctx); err != nil {
					select {
					case expired <- err:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return expired
}

func (manager *Manager) live(token string) bool {
	claims, err := sec.ParseClaims(token)
	if err != nil {
		return false
	}
	return !claims.Expired(manager.now())
}
