package apiimpl

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/aidosorynbay/simple-social/internal/api"
	apperrors "github.com/aidosorynbay/simple-social/pkg/errors"
)

// UploadPost publishes a media file with an optional caption as multipart
// form data. A missing file is rejected before any request goes out.
func (a *ApiImpl) UploadPost(ctx context.Context, file api.UploadFile, caption string) error {
	if file.Name == "" || len(file.Data) == 0 {
		return apperrors.New("Please choose an image or video.")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return apperrors.Wrap(err, "Upload failed.")
	}
	if _, err := part.Write(file.Data); err != nil {
		return apperrors.Wrap(err, "Upload failed.")
	}
	if err := writer.WriteField("caption", strings.TrimSpace(caption)); err != nil {
		return apperrors.Wrap(err, "Upload failed.")
	}
	if err := writer.Close(); err != nil {
		return apperrors.Wrap(err, "Upload failed.")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/upload", &buf)
	if err != nil {
		return apperrors.Wrap(err, MsgNetworkError)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	a.authorize(ctx, req)

	resp, err := a.Http.Do(req)
	if err != nil {
		a.Logger.Warn("Upload request failed", "error", err)
		return apperrors.Wrap(err, MsgNetworkError)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return apperrors.ErrUnauthorized
	}
	if !isSuccess(resp.StatusCode) {
		return apperrors.New(detailMessage(readBody(resp), "Upload failed."))
	}

	return nil
}

// DeletePost removes a post by identifier.
func (a *ApiImpl) DeletePost(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		a.BaseURL+"/posts/"+url.PathEscape(id), nil)
	if err != nil {
		return apperrors.Wrap(err, MsgNetworkError)
	}
	a.authorize(ctx, req)

	resp, err := a.Http.Do(req)
	if err != nil {
		a.Logger.Warn("Delete request failed", "post_id", id, "error", err)
		return apperrors.Wrap(err, MsgNetworkError)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return apperrors.ErrUnauthorized
	}
	if !isSuccess(resp.StatusCode) {
		return apperrors.New(detailMessage(readBody(resp), "Could not delete post."))
	}

	return nil
}
