// Package collection is the HTTP client for paginated collection endpoints
// that answer GET <path>?page=..&page_size=..&order_by=.. with
// {"count": N, "results": [...]}.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/orglist/internal/listview"
	"github.com/rshade/orglist/internal/logging"
	"github.com/rshade/orglist/internal/querycodec"
)

// OrganizationsPath is the organizations collection on the API server.
const OrganizationsPath = "/api/v2/organizations/"

// RequestIDHeader carries the per-fetch request id.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept for the message.
const maxErrorBody = 512

// ErrMalformedResponse is returned when a 2xx body is not a collection page.
var ErrMalformedResponse = errors.New("malformed collection response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("collection endpoint returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("collection endpoint returned %d %s: %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
}

// Client fetches pages of T from one collection path.
type Client[T any] struct {
	// HTTPClient performs the requests. Tests swap it for httptest clients.
	HTTPClient *http.Client

	baseURL string
	path    string
	token   string
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	token   string
	timeout time.Duration
	logger  zerolog.Logger
}

// WithToken sends token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a client for baseURL + path.
func New[T any](baseURL, path string, opts ...Option) *Client[T] {
	o := options{timeout: DefaultTimeout, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client[T]{
		HTTPClient: &http.Client{Timeout: o.timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       path,
		token:      o.token,
		logger:     logging.ComponentLogger(o.logger, "collection"),
	}
}

// NewOrganizations creates a client for the organizations collection.
func NewOrganizations(baseURL string, opts ...Option) *Client[Organization] {
	return New[Organization](baseURL, OrganizationsPath, opts...)
}

// URL returns the request URL for params.
func (c *Client[T]) URL(params listview.QueryParams) string {
	return c.baseURL + c.path + "?" + querycodec.Encode(params.Values())
}

// Fetch reads one page. Any non-2xx status, undecodable body or negative
// count is an error.
func (c *Client[T]) Fetch(ctx context.Context, params listview.QueryParams) (listview.Page[T], error) {
	var page listview.Page[T]

	target := c.URL(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return page, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return page, fmt.Errorf("requesting %s: %w", c.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("collection response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return page, &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}

	var body struct {
		Count   *int `json:"count"`
		Results []T  `json:"results"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return page, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if body.Count == nil || *body.Count < 0 {
		return page, fmt.Errorf("%w: missing or negative count", ErrMalformedResponse)
	}

	page.Count = *body.Count
	page.Results = body.Results
	if page.Results == nil {
		page.Results = []T{}
	}
	return page, nil
}

// errorDetail extracts {"detail": "..."} from an error body, falling back to
// the trimmed raw text.
func errorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
		return body.Detail
	}
	return strings.TrimSpace(string(raw))
}
