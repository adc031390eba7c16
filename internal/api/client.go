// Package api talks to the board service over HTTP. Every call that needs
// a session reads the token from a TokenStore; the client never refreshes
// or inspects credentials beyond passing them along.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/christophergyman/teamboard/internal/taskboard"
)

// TokenStore holds the session credential
type TokenStore interface {
	Token() (string, error)
	Save(token string) error
	Clear() error
}

// Client is a board service client
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenStore
	limiter *rate.Limiter
	timeout time.Duration
	log     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit paces outgoing requests to rps per second
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the request logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the service at baseURL
func New(baseURL string, tokens TokenStore, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Inf, 0),
		timeout: 10 * time.Second,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// errorBody is the service's error payload
type errorBody struct {
	Error string `json:"error"`
}

// request describes one call to the service
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	// anonymous requests (login, register) carry no token and treat 401
	// as a plain failure rather than a credential problem
	anonymous bool
}

// do performs req and decodes a successful response into out (if non-nil)
func (c *Client) do(ctx context.Context, req request, out any) error {
	var token string
	if !req.anonymous {
		t, err := c.tokens.Token()
		if err != nil {
			return err
		}
		token = t
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &taskboard.FetchError{Op: req.op, Err: err}
	}

	u := *c.baseURL
	u.Path = u.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return &taskboard.FetchError{Op: req.op, Err: fmt.Errorf("encode body: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return &taskboard.FetchError{Op: req.op, Err: err}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("op", req.op),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &taskboard.FetchError{Op: req.op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("op", req.op),
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(req, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &taskboard.FetchError{
			Op:     req.op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// statusError maps a non-2xx response to the error taxonomy
func (c *Client) statusError(req request, resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)
	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
		msg = eb.Error
	}

	if !req.anonymous && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return &taskboard.AuthError{Reason: taskboard.AuthRejected, Err: errors.New(msg)}
	}
	return &taskboard.FetchError{Op: req.op, Status: resp.StatusCode, Err: errors.New(msg)}
}

func idQuery(key string, id int64) url.Values {
	return url.Values{key: []string{fmt.Sprintf("%d", id)}}
}
