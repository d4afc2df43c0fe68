// Package ordering wraps the legacy taco ordering backend. The backend has
// no API in the usual sense: it is a cookie-session web application that
// expects an anti-forgery token and URL-encoded form posts, one per cart
// line, followed by a single checkout post.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maxscharwath/tacocrew-sub004/pkg/config"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
	"github.com/maxscharwath/tacocrew-sub004/pkg/logger"
)

const (
	tokenPath        = "/api/token"
	stockPath        = "/api/stock"
	tacoPath         = "/api/cart/taco"
	extraPath        = "/api/cart/extra"
	drinkPath        = "/api/cart/drink"
	dessertPath      = "/api/cart/dessert"
	checkoutPath     = "/api/checkout"
	sessionClosePath = "/api/session/close"

	tokenHeader = "X-Csrf-Token"

	errorBodyReadLimit int64 = 1024
)

var errBaseURLRequired = errors.New("ordering base url is required")

// Client talks to the legacy ordering backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured backend base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the ordering backend client.
func NewClient(cfg config.OrderingConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logg,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.baseURL == "" {
		return nil, errBaseURLRequired
	}

	return client, nil
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}

// postForm submits a URL-encoded form through the session's cookie jar and
// anti-forgery token, treating every non-2xx response as an upstream failure.
func (c *Client) postForm(ctx context.Context, session *Session, path string, form url.Values, op string) (*http.Response, error) {
	if session == nil || session.client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "ordering session not open")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("build %s request", op))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(tokenHeader, session.token)

	resp, err := session.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("execute %s request", op))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, statusError(resp, op)
	}
	return resp, nil
}

func pkgerr(op string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, op)
}

func statusError(resp *http.Response, op string) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, cause, fmt.Sprintf("%s request failed", op))
}

func (c *Client) log(ctx context.Context, op, phase string) {
	if c == nil || c.logger == nil {
		return
	}
	ctx = c.logger.WithFields(ctx, map[string]any{
		"operation": op,
		"phase":     phase,
	})
	c.logger.Info(ctx, "ordering backend call")
}
