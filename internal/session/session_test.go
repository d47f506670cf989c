package session

import (
	"context"
	"testing"

	"github.com/aidosorynbay/simple-social/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	token string
}

func (s *memStore) Get(context.Context) (string, error) { return s.token, nil }

func (s *memStore) Set(_ context.Context, token string) error {
	s.token = token
	return nil
}

func newMachine(store *memStore) *Machine {
	return New(Opts{
		Store:  store,
		Logger: logger.New(logger.Opts{Env: "development"}),
	})
}

func TestRestoreWithToken(t *testing.T) {
	store := &memStore{token: "T"}
	m := newMachine(store)

	var entered []State
	m.OnTransition(func(_ context.Context, s State) {
		entered = append(entered, s)
	})

	require.NoError(t, m.Restore(context.Background()))
	assert.Equal(t, StateAuthenticated, m.Current())
	assert.Equal(t, []State{StateAuthenticated}, entered, "observer fires exactly once on restore")
}

func TestRestoreWithoutToken(t *testing.T) {
	m := newMachine(&memStore{})

	var entered []State
	m.OnTransition(func(_ context.Context, s State) {
		entered = append(entered, s)
	})

	require.NoError(t, m.Restore(context.Background()))
	assert.Equal(t, StateUnauthenticated, m.Current())
	assert.Equal(t, []State{StateUnauthenticated}, entered)
}

func TestLoginSucceededPersistsToken(t *testing.T) {
	store := &memStore{}
	m := newMachine(store)

	require.NoError(t, m.LoginSucceeded(context.Background(), "T"))
	assert.Equal(t, StateAuthenticated, m.Current())
	assert.Equal(t, "T", store.token)
}

func TestLoginWhileAuthenticatedIsIllegal(t *testing.T) {
	m := newMachine(&memStore{})
	require.NoError(t, m.LoginSucceeded(context.Background(), "T"))

	err := m.LoginSucceeded(context.Background(), "T2")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLogoutClearsToken(t *testing.T) {
	store := &memStore{}
	m := newMachine(store)
	require.NoError(t, m.LoginSucceeded(context.Background(), "T"))

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, StateUnauthenticated, m.Current())
	assert.Empty(t, store.token)
}

func TestLogoutWhileUnauthenticatedIsIllegal(t *testing.T) {
	m := newMachine(&memStore{})
	assert.ErrorIs(t, m.Logout(context.Background()), ErrInvalidTransition)
}

func TestExpireFromAuthenticated(t *testing.T) {
	store := &memStore{token: "T"}
	m := newMachine(store)
	require.NoError(t, m.Restore(context.Background()))

	m.Expire(context.Background())
	assert.Equal(t, StateUnauthenticated, m.Current())
	assert.Empty(t, store.token, "401 must clear the stored token")
}

func TestExpireClearsTokenRegardlessOfState(t *testing.T) {
	store := &memStore{token: "stale"}
	m := newMachine(store)

	m.Expire(context.Background())
	assert.Equal(t, StateUnauthenticated, m.Current())
	assert.Empty(t, store.token)
}

func TestObserverSequence(t *testing.T) {
	store := &memStore{}
	m := newMachine(store)

	var entered []State
	m.OnTransition(func(_ context.Context, s State) {
		entered = append(entered, s)
	})

	ctx := context.Background()
	require.NoError(t, m.Restore(ctx))
	require.NoError(t, m.LoginSucceeded(ctx, "T"))
	require.NoError(t, m.Logout(ctx))

	assert.Equal(t, []State{
		StateUnauthenticated,
		StateAuthenticated,
		StateUnauthenticated,
	}, entered)
}
