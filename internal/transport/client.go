package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/assetboard/internal/domain/collect"
)

// maxPageBytes caps a single page body.
const maxPageBytes = 64 << 20

// Client fetches asset pages from the review API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ collect.PageFetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PageURL returns the URL of one page of a project's assets.
func (c *Client) PageURL(projectKey string, page, pageSize int) string {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	return c.baseURL + "/api/projects/" + url.PathEscape(projectKey) + "/reviews/assets?" + q.Encode()
}

// FetchPage issues one GET. Any HTTP status is returned as a Page; only
// failures to get a response are errors.
func (c *Client) FetchPage(ctx context.Context, projectKey string, page, pageSize int) (*collect.Page, error) {
	target := c.PageURL(projectKey, page, pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", page, err)
	}

	c.logger.Debug("review api response",
		"project", projectKey,
		"page", page,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)
	return &collect.Page{Status: resp.StatusCode, Body: body}, nil
}
