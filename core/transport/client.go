package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storelisting/core/jsonx"
	"storelisting/core/reconcile"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of an error response is kept in a RemoteAPIFailure.
const maxErrorBody = 2048

// ErrorCoder extracts a backend's structured error code from an error body.
type ErrorCoder func(body []byte) string

// Client performs authenticated JSON requests against one backend.
type Client struct {
	backend    string
	baseURL    string
	http       *http.Client
	auth       Authenticator
	logger     *zap.Logger
	errorCode  ErrorCoder
	newBackOff func() backoff.BackOff
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithErrorCoder sets the function that reads error codes from failure bodies.
func WithErrorCoder(fn ErrorCoder) Option {
	return func(c *Client) { c.errorCode = fn }
}

// WithBackOff sets the retry policy factory. It is called once per request.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = fn }
}

// WithConfig applies timeout and retry settings.
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		c.http = &http.Client{Timeout: cfg.Timeout()}
		initial := time.Duration(cfg.InitialBackoffMs) * time.Millisecond
		retries := uint64(0)
		if cfg.MaxRetries > 0 {
			retries = uint64(cfg.MaxRetries)
		}
		c.newBackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			if initial > 0 {
				b.InitialInterval = initial
			}
			b.MaxElapsedTime = 0
			return backoff.WithMaxRetries(b, retries)
		}
	}
}

// New creates a client for backend rooted at baseURL.
func New(backend, baseURL string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = NoAuth{}
	}
	c := &Client{
		backend: backend,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		auth:    auth,
		logger:  zap.NewNop(),
	}
	WithConfig(Config{})(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend returns the backend name used in errors.
func (c *Client) Backend() string {
	return c.backend
}

// Do sends method path?query with in encoded as the JSON body (when non-nil)
// and decodes a 2xx response into out (when non-nil). Transient failures are
// retried, so Do is only for idempotent calls.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	return c.do(ctx, method, path, query, in, out, c.newBackOff())
}

// DoOnce is Do without retries. Use it for calls that must not reach the
// backend twice, like a POST that creates or commits something: a lost
// response says nothing about whether the first attempt was applied.
func (c *Client) DoOnce(ctx context.Context, method, path string, query url.Values, in, out any) error {
	return c.do(ctx, method, path, query, in, out, &backoff.StopBackOff{})
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, policy backoff.BackOff) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if in != nil {
		var err error
		if payload, err = jsonx.Marshal(in); err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
	}

	var body []byte
	attempt := func() error {
		var err error
		body, err = c.roundTrip(ctx, method, target, payload)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("Retrying backend request",
			zap.String("backend", c.backend),
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(attempt, backoff.WithContext(policy, ctx), notify); err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := jsonx.Unmarshal(body, out); err != nil {
		return &reconcile.RemoteAPIFailure{
			Backend: c.backend,
			Method:  method,
			URL:     target,
			Status:  http.StatusOK,
			Body:    truncate(body),
			Err:     fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return nil
}

// roundTrip performs one attempt. Errors worth retrying are returned as-is;
// everything else is wrapped with backoff.Permanent.
func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.auth.Apply(req); err != nil {
		return nil, backoff.Permanent(&reconcile.RemoteAPIFailure{
			Backend: c.backend, Method: method, URL: target, Err: err,
		})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		failure := &reconcile.RemoteAPIFailure{Backend: c.backend, Method: method, URL: target, Err: err}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(failure)
		}
		return nil, failure
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &reconcile.RemoteAPIFailure{
			Backend: c.backend, Method: method, URL: target, Status: resp.StatusCode,
			Err: fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	failure := &reconcile.RemoteAPIFailure{
		Backend: c.backend,
		Method:  method,
		URL:     target,
		Status:  resp.StatusCode,
		Body:    truncate(body),
	}
	if c.errorCode != nil {
		failure.Code = c.errorCode(body)
	}
	if retryable(resp.StatusCode) {
		return nil, failure
	}
	return nil, backoff.Permanent(failure)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var failure *reconcile.RemoteAPIFailure
	if errors.As(err, &failure) {
		return failure.Status
	}
	return 0
}

// CodeOf returns the structured error code carried by err, or "".
func CodeOf(err error) string {
	var failure *reconcile.RemoteAPIFailure
	if errors.As(err, &failure) {
		return failure.Code
	}
	return ""
}
