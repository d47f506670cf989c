package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aidosorynbay/simple-social/internal/tokenstore"
	"github.com/aidosorynbay/simple-social/pkg/logger"
	"go.uber.org/fx"
)

// State is the view-controller state: which pane the user sees and whether
// feed operations are allowed.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

var ErrInvalidTransition = errors.New("invalid session transition")

// Observer is notified after the machine enters a state. Entering
// StateAuthenticated always means a fresh feed load; entering
// StateUnauthenticated means showing the auth pane.
type Observer func(ctx context.Context, state State)

type Opts struct {
	fx.In

	Store  tokenstore.Store
	Logger logger.Logger
}

// Machine is the two-state session machine. Transitions are guarded:
// anything outside {restore, login success, logout, expiry} is an error, so
// illegal view states cannot be reached. The machine owns token
// persistence on every transition but delegates rendering to its observer.
type Machine struct {
	mu       sync.Mutex
	state    State
	store    tokenstore.Store
	logger   logger.Logger
	observer Observer
}

func New(opts Opts) *Machine {
	return &Machine{
		state:  StateUnauthenticated,
		store:  opts.Store,
		logger: opts.Logger.WithComponent("Session"),
	}
}

// OnTransition registers the single observer. Must be called before
// Restore.
func (m *Machine) OnTransition(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = fn
}

func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Restore sets the startup state from the token store: a stored token means
// the session resumes authenticated, otherwise the auth pane is shown.
func (m *Machine) Restore(ctx context.Context) error {
	token, err := m.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stored token: %w", err)
	}

	state := StateUnauthenticated
	if token != "" {
		state = StateAuthenticated
	}

	m.mu.Lock()
	m.state = state
	observer := m.observer
	m.mu.Unlock()

	m.logger.Info("Session restored", "state", state.String())
	if observer != nil {
		observer(ctx, state)
	}
	return nil
}

// LoginSucceeded persists the fresh token and enters the authenticated
// state. Only legal while unauthenticated.
func (m *Machine) LoginSucceeded(ctx context.Context, token string) error {
	m.mu.Lock()
	if m.state != StateUnauthenticated {
		m.mu.Unlock()
		return fmt.Errorf("%w: login while %s", ErrInvalidTransition, m.state)
	}

	if err := m.store.Set(ctx, token); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to persist token: %w", err)
	}

	m.state = StateAuthenticated
	observer := m.observer
	m.mu.Unlock()

	m.logger.Info("Session authenticated")
	if observer != nil {
		observer(ctx, StateAuthenticated)
	}
	return nil
}

// Logout clears the token and returns to the unauthenticated state. Only
// legal while authenticated.
func (m *Machine) Logout(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return fmt.Errorf("%w: logout while %s", ErrInvalidTransition, m.state)
	}

	if err := m.store.Set(ctx, ""); err != nil {
		m.logger.Warn("Failed to clear stored token on logout", "error", err)
	}

	m.state = StateUnauthenticated
	observer := m.observer
	m.mu.Unlock()

	m.logger.Info("Session closed")
	if observer != nil {
		observer(ctx, StateUnauthenticated)
	}
	return nil
}

// Expire handles a server-side 401: the token is cleared regardless of the
// current state and the machine lands on the auth pane.
func (m *Machine) Expire(ctx context.Context) {
	m.mu.Lock()
	if err := m.store.Set(ctx, ""); err != nil {
		m.logger.Warn("Failed to clear stored token on expiry", "error", err)
	}
	m.state = StateUnauthenticated
	observer := m.observer
	m.mu.Unlock()

	m.logger.Info("Session expired, token rejected by server")
	if observer != nil {
		observer(ctx, StateUnauthenticated)
	}
}
