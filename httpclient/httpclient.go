// Package httpclient is a thin wrapper over net/http for the sidecar
// backends: health probes, multipart uploads and JSON response decoding.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// Config holds client configuration.
type Config struct {
	// BaseURL is the sidecar base URL, e.g. "http://localhost:8387".
	BaseURL string
	// Timeout bounds a whole request including the response body read.
	Timeout time.Duration
}

// Client talks to one HTTP sidecar.
type Client struct {
	base string
	hc   *http.Client
}

// New creates a Client for the given sidecar.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		base: cfg.BaseURL,
		hc:   &http.Client{Timeout: cfg.Timeout},
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.base }

// Healthy reports whether a GET on path returns 200.
func (c *Client) Healthy(ctx context.Context, path string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return false
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// PostMultipart posts body as multipart/form-data to path and decodes the
// JSON response into out. A non-200 status is returned as an error carrying
// the status code and the response body text.
func (c *Client) PostMultipart(ctx context.Context, path string, body MultipartBody, out any) error {
	reader, contentType, err := body.encode()
	if err != nil {
		return fmt.Errorf("encode multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(text))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
