// Package auth tracks the player's sign-in state on top of an external
// authentication provider, plus the remembered username and privacy consent.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/event"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/internal"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

var (
	// ErrPrivacyNotAccepted is returned when signing in before the privacy
	// policy was accepted.
	ErrPrivacyNotAccepted = errors.New("auth: privacy policy not accepted")

	// ErrInvalidCredentials is returned by providers for a bad username or
	// password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// State is the sign-in state shown to the player.
type State int

const (
	StateSignedOut State = iota
	StateSigningIn
	StateSignedIn
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSignedOut:
		return "signed-out"
	case StateSigningIn:
		return "signing-in"
	case StateSignedIn:
		return "signed-in"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Identity is what a provider returns after a successful sign-in.
type Identity struct {
	PlayerID  string
	Username  string
	Anonymous bool
}

// Provider is the authentication service.
type Provider interface {
	SignInAnonymously(ctx context.Context) (Identity, error)
	SignInWithPassword(ctx context.Context, username, password string) (Identity, error)
	SignOut(ctx context.Context) error
}

type Manager struct {
	provider Provider
	store    prefs.Prefs
	logger   *slog.Logger

	state    State
	identity Identity
	lastErr  error
	changed  event.Feed[State]
}

func New(provider Provider, store prefs.Prefs, logger *slog.Logger) *Manager {
	return &Manager{
		provider: provider,
		store:    store,
		logger:   internal.LoggerOr(logger).With("manager", "auth"),
	}
}

// Changed is emitted with the new state after every transition.
func (m *Manager) Changed() *event.Feed[State] {
	return &m.changed
}

func (m *Manager) State() State {
	return m.state
}

// Identity returns the signed-in identity; it is zero unless signed in.
func (m *Manager) Identity() Identity {
	return m.identity
}

// LastError returns the error behind the most recent Failed state.
func (m *Manager) LastError() error {
	return m.lastErr
}

func (m *Manager) PrivacyAccepted() bool {
	return m.store.GetBool(constants.PrefPrivacyAccepted, false)
}

func (m *Manager) SetPrivacyAccepted(accepted bool) {
	m.store.SetBool(constants.PrefPrivacyAccepted, accepted)
	m.save()
}

// RememberMe reports whether the username is kept between sessions.
func (m *Manager) RememberMe() bool {
	return m.store.GetBool(constants.PrefRememberMe, false)
}

// SetRememberMe changes the remember-me flag. Turning it off forgets the
// stored username.
func (m *Manager) SetRememberMe(remember bool) {
	m.store.SetBool(constants.PrefRememberMe, remember)
	if !remember {
		m.store.Delete(constants.PrefRememberedUsername)
	}
	m.save()
}

// RememberedUsername returns the stored username, or "".
func (m *Manager) RememberedUsername() string {
	return m.store.GetString(constants.PrefRememberedUsername, "")
}

// SignInAnonymously signs in without credentials.
func (m *Manager) SignInAnonymously(ctx context.Context) error {
	return m.signIn(ctx, "anonymous", func(ctx context.Context) (Identity, error) {
		return m.provider.SignInAnonymously(ctx)
	})
}

// SignInWithPassword signs in with a username and password, storing the
// username when remember-me is on.
func (m *Manager) SignInWithPassword(ctx context.Context, username, password string) error {
	err := m.signIn(ctx, "password", func(ctx context.Context) (Identity, error) {
		return m.provider.SignInWithPassword(ctx, username, password)
	})
	if err == nil && m.RememberMe() {
		m.store.SetString(constants.PrefRememberedUsername, username)
		m.save()
	}
	return err
}

func (m *Manager) signIn(ctx context.Context, method string, call func(context.Context) (Identity, error)) error {
	if !m.PrivacyAccepted() {
		m.logger.Warn("Sign in blocked until privacy policy is accepted", "method", method)
		return ErrPrivacyNotAccepted
	}
	if m.provider == nil {
		return m.fail(method, errors.New("auth: no provider configured"))
	}

	m.setState(StateSigningIn)
	identity, err := call(ctx)
	if err != nil {
		return m.fail(method, err)
	}

	m.identity = identity
	m.lastErr = nil
	m.logger.Info("Signed in", "method", method, "player_id", identity.PlayerID)
	m.setState(StateSignedIn)
	return nil
}

func (m *Manager) fail(method string, err error) error {
	m.identity = Identity{}
	m.lastErr = err
	m.logger.Error("Sign in failed", "method", method, "error", err)
	m.setState(StateFailed)
	return fmt.Errorf("sign in (%s): %w", method, err)
}

// SignOut signs out locally even when the provider reports an error; the
// error is logged and returned.
func (m *Manager) SignOut(ctx context.Context) error {
	var err error
	if m.provider != nil && m.state == StateSignedIn {
		err = m.provider.SignOut(ctx)
		if err != nil {
			m.logger.Error("Provider sign out failed", "error", err)
		}
	}
	m.identity = Identity{}
	m.setState(StateSignedOut)
	return err
}

func (m *Manager) setState(state State) {
	if m.state == state {
		return
	}
	m.state = state
	m.changed.Emit(state)
}

func (m *Manager) save() {
	if err := m.store.Save(); err != nil {
		m.logger.Error("Failed to save auth preferences", "error", err)
	}
}
