// Package fetch is the shared HTTP layer for command handlers: JSON GETs,
// raw GETs with a body cap, HEAD probes and file downloads, all paced through
// an adaptive limiter so a burst of commands cannot hammer an upstream API.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"aurora/pkg/retrylimit"
)

const (
	// maxBodySize caps in-memory response bodies.
	maxBodySize = 8 << 20 // 8 MB

	defaultAttempts = 3
)

// Client wraps an http.Client with pacing and retry for upstream APIs.
// Downloads use a separate client without an overall timeout; callers bound
// them with a context deadline instead.
type Client struct {
	http *http.Client
	dl   *http.Client
	lim  *retrylimit.Limiter
}

// New returns a Client with a 15s request timeout and a 5 rps adaptive limit.
func New() *Client {
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
		dl:   &http.Client{},
		lim:  retrylimit.NewLimiter(5, 1, 20),
	}
}

// NewWithHTTPClient is used by tests to inject a transport.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{http: hc, dl: hc, lim: retrylimit.NewLimiter(5, 1, 20)}
}

// JSON fetches url and decodes the response body into out.
func (c *Client) JSON(ctx context.Context, url string, out any) error {
	raw, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// Get fetches url and returns at most maxBodySize bytes of the body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retrylimit.Do(ctx, c.lim, defaultAttempts, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &retrylimit.Permanent{Err: err}
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := &retrylimit.StatusError{Code: resp.StatusCode, URL: url}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return &retrylimit.Permanent{Err: err}
			}
			return err
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		return err
	})
	return body, err
}

// PostJSON sends payload as a JSON body and returns at most maxBodySize
// bytes of the response. Extra headers are set on top of Content-Type.
func (c *Client) PostJSON(ctx context.Context, url string, payload any, headers map[string]string) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode body for %s: %w", url, err)
	}

	var body []byte
	err = retrylimit.Do(ctx, c.lim, defaultAttempts, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
		if err != nil {
			return &retrylimit.Permanent{Err: err}
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := &retrylimit.StatusError{Code: resp.StatusCode, URL: url}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return &retrylimit.Permanent{Err: err}
			}
			return err
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		return err
	})
	return body, err
}

// Head probes url and returns its content type and length (-1 if unknown).
func (c *Client) Head(ctx context.Context, url string) (contentType string, size int64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", -1, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", -1, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", -1, &retrylimit.StatusError{Code: resp.StatusCode, URL: url}
	}
	return resp.Header.Get("Content-Type"), resp.ContentLength, nil
}

// Download streams url into path. The partial file is removed on failure.
func (c *Client) Download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.dl.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &retrylimit.StatusError{Code: resp.StatusCode, URL: url}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("download %s: %w", url, err)
	}
	return f.Close()
}
