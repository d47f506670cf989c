package apiimpl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aidosorynbay/simple-social/internal/api"
	"github.com/aidosorynbay/simple-social/internal/tokenstore"
	"github.com/aidosorynbay/simple-social/pkg/config"
	"github.com/aidosorynbay/simple-social/pkg/logger"
	"go.uber.org/fx"
)

const MsgNetworkError = "Network error. Try again."

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
	Tokens tokenstore.Store
}

type ApiImpl struct {
	BaseURL string
	Http    *http.Client
	Tokens  tokenstore.Store
	Logger  logger.Logger
}

func New(opts Opts) *ApiImpl {
	return &ApiImpl{
		BaseURL: strings.TrimRight(opts.Config.Api.BaseURL, "/"),
		Http:    &http.Client{Timeout: 30 * time.Second},
		Tokens:  opts.Tokens,
		Logger:  opts.Logger.WithComponent("ApiClient"),
	}
}

var _ api.Client = (*ApiImpl)(nil)

// authorize attaches the bearer credential when one is stored. A store read
// failure downgrades to an unauthenticated request rather than failing the
// call.
func (a *ApiImpl) authorize(ctx context.Context, req *http.Request) {
	token, err := a.Tokens.Get(ctx)
	if err != nil {
		a.Logger.Warn("Failed to read stored token", "error", err)
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// detailMessage extracts a human-readable message from an error response
// body. The server reports failures as {"detail": ...} where detail may be a
// plain string, an object with a "msg" field, or a list of such objects (the
// validation-error shape); list entries are joined into one string. Anything
// unrecognized falls back to the provided generic message.
func detailMessage(body []byte, fallback string) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return fallback
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil && s != "" {
		return s
	}

	var obj struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &obj); err == nil && obj.Msg != "" {
		return obj.Msg
	}

	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &list); err == nil {
		var msgs []string
		for _, item := range list {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, " ")
		}
	}

	return fallback
}

func readBody(resp *http.Response) []byte {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	return body
}
