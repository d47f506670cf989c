package tokenstore

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=tokenstore.go -destination=mocks/mock.go -package=mocks

// Store holds the single bearer credential for the current session. The
// token is opaque: it is persisted and returned as-is, never inspected.
type Store interface {
	// Get returns the stored token, or "" when logged out.
	Get(ctx context.Context) (string, error)
	// Set persists the token. Storing "" clears the credential.
	Set(ctx context.Context, token string) error
}
