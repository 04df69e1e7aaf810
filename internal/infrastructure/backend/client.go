// Package backend is the HTTP client for the marketplace REST API. It maps
// the backend's Spanish wire format to domain types and HTTP statuses to
// domain errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4 << 10
)

// APIError is a non-2xx answer from the backend. It unwraps to the domain
// sentinel matching the status code.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.kind }

// Client talks to the marketplace backend.
type Client struct {
	http *http.Client
	base string
	log  zerolog.Logger
}

// NewClient returns a Client rooted at baseURL (e.g. http://localhost:4000).
// A default timeout is applied when none is provided.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		base: strings.TrimRight(baseURL, "/"),
		log:  log,
	}
}

// Ping reports whether the backend answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return statusError(resp.StatusCode, "")
	}
	return nil
}

// send performs the request and returns the raw response on 2xx. The caller
// owns the body.
func (c *Client) send(ctx context.Context, method, path string, cred domain.Credential, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if !cred.Empty() {
		req.Header.Set("Authorization", cred.AuthorizationHeader())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := statusError(resp.StatusCode, errorMessage(raw))
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("backend request rejected")
		return nil, fmt.Errorf("%s %s: %w", method, path, apiErr)
	}
	return resp, nil
}

// do sends the request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, cred domain.Credential, body, out any) error {
	resp, err := c.send(ctx, method, path, cred, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func statusError(status int, msg string) *APIError {
	var kind error
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		kind = domain.ErrValidation
	case status == http.StatusUnauthorized:
		kind = domain.ErrInvalidCredentials
	case status == http.StatusForbidden:
		kind = domain.ErrForbidden
	case status == http.StatusNotFound:
		kind = domain.ErrNotFound
	case status == http.StatusConflict:
		kind = domain.ErrConflict
	default:
		kind = domain.ErrBackendUnavailable
	}
	return &APIError{Status: status, Message: msg, kind: kind}
}

func errorMessage(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &env) != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
