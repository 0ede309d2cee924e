// Package remote talks to the file service HTTP API: per-path view
// preferences, user settings, and folder listings.
package remote

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

	"github.com/cristianoliveira/viewsync/internal/logging"
	"github.com/cristianoliveira/viewsync/internal/metrics"
	"github.com/cristianoliveira/viewsync/internal/version"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrRemoteStatus is returned when the service answers with a non-2xx
// status or a non-zero envelope code.
var ErrRemoteStatus = errors.New("remote: unexpected status")

// APIError describes a failed call.
type APIError struct {
	Status int
	Code   int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote: status %d code %d: %s", e.Status, e.Code, e.Msg)
}

func (e *APIError) Unwrap() error { return ErrRemoteStatus }

// response is the envelope every endpoint answers with.
type response[T any] struct {
	Code int    `json:"code"`
	Data T      `json:"data"`
	Msg  string `json:"msg"`
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Token   string
	// Timeout bounds every single attempt.
	Timeout time.Duration
	// RetryMax applies to reads only; writes are never retried.
	RetryMax int
	Logger   logging.Logger
	Metrics  *metrics.Metrics
}

// Client is the HTTP client for the file service.
type Client struct {
	baseURL string
	token   string
	reads   *http.Client
	writes  *http.Client
	log     logging.Logger
	metrics *metrics.Metrics
}

// New creates a Client.
func New(cfg Config) *Client {
	log := cfg.Logger
	if log == nil {
		log = logging.GetGlobal()
	}
	log = log.With("component", "remote")
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		reads:   newHTTPClient(cfg.Timeout, cfg.RetryMax, log),
		writes:  newHTTPClient(cfg.Timeout, 0, log),
		log:     log,
		metrics: cfg.Metrics,
	}
}

func newHTTPClient(timeout time.Duration, retryMax int, log logging.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = log
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if timeout > 0 {
		rc.HTTPClient.Timeout = timeout
	}
	return rc.StandardClient()
}

// do sends body as JSON (when non-nil) and decodes the envelope data into out.
func do[T any](ctx context.Context, c *Client, hc *http.Client, method, path string, body any) (T, error) {
	var zero T
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("remote: marshal %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return zero, fmt.Errorf("remote: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return zero, fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env response[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, fmt.Errorf("remote: %s %s: %w", method, path, &APIError{Status: resp.StatusCode, Code: env.Code, Msg: env.Msg})
	}
	if decodeErr != nil {
		return zero, fmt.Errorf("remote: decode %s %s: %w", method, path, decodeErr)
	}
	if env.Code != 0 {
		return zero, fmt.Errorf("remote: %s %s: %w", method, path, &APIError{Status: resp.StatusCode, Code: env.Code, Msg: env.Msg})
	}
	return env.Data, nil
}
