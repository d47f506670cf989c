package api

import (
	"context"

	"github.com/aidosorynbay/simple-social/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=api.go -destination=mocks/mock.go -package=mocks

// UploadFile is a media file to publish, already read into memory.
type UploadFile struct {
	Name string
	Data []byte
}

// Client talks to the simple-social HTTP API. Every method converts
// transport failures and non-2xx statuses into errors whose message is safe
// to show the user; a feed fetch rejected with HTTP 401 yields
// apperrors.ErrUnauthorized so callers can force a logout instead of showing
// a generic failure.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) error
	FetchFeed(ctx context.Context) ([]domain.Post, error)
	UploadPost(ctx context.Context, file UploadFile, caption string) error
	DeletePost(ctx context.Context, id string) error
}
