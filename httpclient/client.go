package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultTimeout is applied to every request unless overridden with WithTimeout.
const DefaultTimeout = 10 * time.Second

// TokenSource yields the current bearer token, or "" when nobody is signed in.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a plain function to the TokenSource interface.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// AuthFailureHandler is invoked once per 401 response on an authenticated
// request, letting the session layer react to a rejected token.
type AuthFailureHandler func()

// Client issues JSON requests against a single base URL. It attaches default
// headers and a bearer token, enforces a fixed timeout per request, and
// normalizes every failure into a *RequestError. It does not retry and does
// not cache.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	tokens     TokenSource
	onAuthFail AuthFailureHandler
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying transport (primarily for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets where the Authorization bearer token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAuthFailureHandler registers the callback for 401 responses on
// authenticated requests.
func WithAuthFailureHandler(fn AuthFailureHandler) Option {
	return func(c *Client) { c.onAuthFail = fn }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client bound to baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("[httpclient.New] base URL is required")
	}

	client := &Client{
		baseURL: baseURL,
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}

	return client, nil
}

// RequestOptions modify a single request.
type RequestOptions struct {
	// Headers are merged over the default JSON headers.
	Headers map[string]string

	// AllowErrorStatus returns the decoded envelope for non-2xx responses
	// instead of failing. Needed for endpoints, like login, whose 4xx
	// bodies carry structured errors the caller must display.
	AllowErrorStatus bool

	// SkipAuth leaves the Authorization header off even when a token is
	// available.
	SkipAuth bool
}

// Response is the normalized result of a request.
type Response struct {
	StatusCode int
	Envelope   Envelope
	Body       []byte
}

// Get issues a GET request to path.
func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts)
}

// Post issues a POST request to path with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, opts)
}

// Put issues a PUT request to path with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, opts)
}

// Delete issues a DELETE request to path.
func (c *Client) Delete(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, opts)
}

// Do issues one request and returns a normalized result. Failures are always
// a *RequestError carrying the kind, status code and raw body where available.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.Do] json.Marshal request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Do] http.NewRequestWithContext")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	authenticated := false
	if !opts.SkipAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			authenticated = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(ctx, method, path, err)
	}

	var envelope Envelope
	decodeErr := json.Unmarshal(raw, &envelope)
	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	if authenticated && resp.StatusCode == http.StatusUnauthorized && c.onAuthFail != nil {
		c.onAuthFail()
	}

	if success {
		if decodeErr != nil {
			return nil, &RequestError{
				Kind:       KindUnexpectedResponse,
				StatusCode: resp.StatusCode,
				Body:       raw,
				Err:        decodeErr,
			}
		}
		return &Response{StatusCode: resp.StatusCode, Envelope: envelope, Body: raw}, nil
	}

	if opts.AllowErrorStatus && decodeErr == nil {
		return &Response{StatusCode: resp.StatusCode, Envelope: envelope, Body: raw}, nil
	}

	reqErr := &RequestError{
		Kind:       HTTPKind(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Body:       raw,
	}
	if decodeErr == nil {
		reqErr.Code = envelope.Code
		reqErr.Message = envelope.ErrorMessage()
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("request failed")
	return nil, reqErr
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) transportError(ctx context.Context, method, path string, err error) *RequestError {
	kind := KindNetwork
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		kind = KindTimeout
	}
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("kind", string(kind)).
		Msg("transport error")
	return &RequestError{Kind: kind, Err: err}
}
