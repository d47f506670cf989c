package apiimpl

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aidosorynbay/simple-social/internal/domain"
	apperrors "github.com/aidosorynbay/simple-social/pkg/errors"
)

// FetchFeed returns the feed in server order. HTTP 401 is a distinct
// signal: the session is no longer valid and the caller must transition to
// the unauthenticated view.
func (a *ApiImpl) FetchFeed(ctx context.Context) ([]domain.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/feed", nil)
	if err != nil {
		return nil, apperrors.Wrap(err, MsgNetworkError)
	}
	a.authorize(ctx, req)

	resp, err := a.Http.Do(req)
	if err != nil {
		a.Logger.Warn("Feed request failed", "error", err)
		return nil, apperrors.Wrap(err, MsgNetworkError)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, apperrors.ErrUnauthorized
	}
	if !isSuccess(resp.StatusCode) {
		return nil, apperrors.New("Failed to load feed.")
	}

	var out struct {
		Posts []domain.Post `json:"posts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		a.Logger.Warn("Failed to decode feed response", "error", err)
		return nil, apperrors.Wrap(err, "Failed to load feed.")
	}

	return out.Posts, nil
}
