// Package storage uploads public assets (avatars, workspace logos) to an
// object store exposing the bucket/object REST layout:
//
//	POST {base}/object/{bucket}/{path}         upload (x-upsert: true)
//	GET  {base}/object/public/{bucket}/{path}  public read
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"funil.app/crm/core/config"
)

// MaxObjectSize bounds a single upload.
const MaxObjectSize = 5 << 20

var ErrTooLarge = errors.New("object exceeds the maximum upload size")

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storage api returned %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New returns nil when storage is not configured.
func New(cfg config.StorageConfig, httpClient *http.Client) *Client {
	if !cfg.Enabled() {
		return nil
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
	}
}

// Upload stores data at bucket/objectPath, replacing any previous object, and
// returns its public URL.
func (c *Client) Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) (string, error) {
	if len(data) > MaxObjectSize {
		return "", ErrTooLarge
	}
	key := objectKey(bucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/object/"+key, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	return c.baseURL + "/object/public/" + key, nil
}

func objectKey(bucket, objectPath string) string {
	segments := strings.Split(path.Clean("/"+objectPath), "/")
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, url.PathEscape(bucket))
	for _, s := range segments {
		if s == "" {
			continue
		}
		escaped = append(escaped, url.PathEscape(s))
	}
	return strings.Join(escaped, "/")
}
