package apiimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/aidosorynbay/simple-social/pkg/errors"
)

// Login exchanges credentials for a bearer token via the form-encoded JWT
// login endpoint.
func (a *ApiImpl) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.BaseURL+"/auth/jwt/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperrors.Wrap(err, MsgNetworkError)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.Http.Do(req)
	if err != nil {
		a.Logger.Warn("Login request failed", "error", err)
		return "", apperrors.Wrap(err, MsgNetworkError)
	}
	defer resp.Body.Close()

	body := readBody(resp)
	if !isSuccess(resp.StatusCode) {
		return "", apperrors.New(detailMessage(body, "Login failed."))
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.AccessToken == "" {
		a.Logger.Warn("Login response missing access token", "status", resp.StatusCode)
		return "", apperrors.New("Invalid response from server.")
	}

	return out.AccessToken, nil
}

// Register creates an account. The success body is ignored; callers follow
// up with an auto-login.
func (a *ApiImpl) Register(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return apperrors.Wrap(err, "Registration failed.")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.BaseURL+"/auth/register", bytes.NewReader(payload))
	if err != nil {
		return apperrors.Wrap(err, MsgNetworkError)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Http.Do(req)
	if err != nil {
		a.Logger.Warn("Register request failed", "error", err)
		return apperrors.Wrap(err, MsgNetworkError)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return apperrors.New(detailMessage(readBody(resp), "Registration failed."))
	}

	return nil
}
