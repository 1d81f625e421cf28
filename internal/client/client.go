// Package client fetches record pages from the data API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/pagetable/internal/config"
	"github.com/rshade/pagetable/internal/logging"
	"github.com/rshade/pagetable/internal/records"
	"github.com/rshade/pagetable/pkg/version"
)

// PagePath is the endpoint template; %d is the 1-based page number.
const PagePath = "/api/data/page/%d"

// RequestIDHeader carries a per-request ULID.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 10 << 20

// Client talks to the data API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	pageSizeParam string
	userAgent     string
	logger        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithPageSizeParam sends rows as the named query parameter.
func WithPageSizeParam(name string) Option {
	return func(c *Client) {
		c.pageSizeParam = name
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.ComponentLogger(l, "client")
	}
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  version.UserAgent(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a Client from the api config section.
func NewFromConfig(cfg config.APIConfig, logger zerolog.Logger) *Client {
	return New(cfg.BaseURL,
		WithTimeout(cfg.Timeout),
		WithPageSizeParam(cfg.PageSizeParam),
		WithUserAgent(cfg.UserAgent),
		WithLogger(logger),
	)
}

// SendsRows reports whether rows is part of the request.
func (c *Client) SendsRows() bool {
	return c.pageSizeParam != ""
}

// PageURL returns the URL requested for page.
func (c *Client) PageURL(page, rows int) string {
	u := c.baseURL + fmt.Sprintf(PagePath, page)
	if c.pageSizeParam != "" && rows > 0 {
		u += "?" + url.Values{c.pageSizeParam: []string{strconv.Itoa(rows)}}.Encode()
	}
	return u
}

// FetchPage loads one page. Every failure is returned as a *FetchError.
func (c *Client) FetchPage(ctx context.Context, page, rows int) (records.Page, error) {
	requestID := logging.NewID()
	fail := func(kind FailureKind, status int, err error) (records.Page, error) {
		return records.Page{}, &FetchError{
			Page:       page,
			Kind:       kind,
			StatusCode: status,
			RequestID:  requestID,
			Err:        err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PageURL(page, rows), nil)
	if err != nil {
		return fail(KindTransport, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	c.logger.Debug().Ctx(ctx).
		Str("operation", "fetch_page").
		Int("page", page).
		Str("request_id", requestID).
		Str("url", req.URL.String()).
		Msg("requesting page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(KindTransport, 0, fmt.Errorf("send request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().Ctx(ctx).
		Int("page", page).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("page response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fail(KindStatus, resp.StatusCode, nil)
	}

	var out records.Page
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fail(KindTransport, resp.StatusCode, fmt.Errorf("read response: %w", ctxErr))
		}
		return fail(KindDecode, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}

	return out, nil
}
