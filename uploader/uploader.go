// Package uploader talks to the external image host: one multipart POST per
// image, response carries a durable public URL. The host is a black box; no
// retries, no size validation.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"inkwell/constants"
)

// UploadError aborts whatever domain operation was relying on the upload;
// a post is never created with a partial image set.
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %q: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

type Client struct {
	uploadURL string
	httc      *http.Client
}

func New(uploadURL string) *Client {
	return &Client{uploadURL: uploadURL, httc: http.DefaultClient}
}

// Upload posts one image and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(constants.IMAGE_UPLOAD_FIELD, filename)
	if err != nil {
		return "", &UploadError{Filename: filename, Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", &UploadError{Filename: filename, Err: err}
	}
	if err := mw.Close(); err != nil {
		return "", &UploadError{Filename: filename, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", &UploadError{Filename: filename, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httc.Do(req)
	if err != nil {
		return "", &UploadError{Filename: filename, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UploadError{Filename: filename, Err: fmt.Errorf("image host returned status %d", resp.StatusCode)}
	}

	// imgbb-style envelope
	var out struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &UploadError{Filename: filename, Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.Data.URL == "" {
		return "", &UploadError{Filename: filename, Err: fmt.Errorf("image host returned no url")}
	}
	return out.Data.URL, nil
}
