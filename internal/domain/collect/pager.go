package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rpggio/assetboard/internal/domain/asset"
)

// DefaultPageSize matches the page size the review API is tuned for.
const DefaultPageSize = 200

// Stats summarises one retrieval.
type Stats struct {
	Pages  int `json:"pages"`
	Assets int `json:"assets"`
}

// Pager walks every page of a project's assets.
type Pager struct {
	fetcher  PageFetcher
	pageSize int
	logger   *slog.Logger
}

// NewPager creates a pager. A non-positive pageSize selects DefaultPageSize.
func NewPager(fetcher PageFetcher, pageSize int, logger *slog.Logger) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pager{fetcher: fetcher, pageSize: pageSize, logger: logger}
}

// PageSize returns the fixed page size used for every request.
func (p *Pager) PageSize() int {
	return p.pageSize
}

// Collect requests pages 1, 2, ... until a page holds fewer than PageSize assets.
// A total that is an exact multiple of the page size costs one extra, empty request.
// Cancellation of ctx yields ErrSuperseded and no assets.
func (p *Pager) Collect(ctx context.Context, projectKey string) ([]asset.Asset, Stats, error) {
	if projectKey == "" {
		return nil, Stats{}, ErrInvalidInput
	}

	all := make([]asset.Asset, 0, p.pageSize)
	var stats Stats
	for page := 1; ; page++ {
		if ctx.Err() != nil {
			return nil, stats, ErrSuperseded
		}

		resp, err := p.fetcher.FetchPage(ctx, projectKey, page, p.pageSize)
		stats.Pages++
		if err != nil {
			if ctx.Err() != nil {
				return nil, stats, ErrSuperseded
			}
			return nil, stats, &TransportError{Err: err}
		}
		if ctx.Err() != nil {
			return nil, stats, ErrSuperseded
		}

		items, err := decodePage(resp)
		if err != nil {
			p.logger.Debug("page failed", "project", projectKey, "page", page, "error", err)
			return nil, stats, err
		}
		all = append(all, items...)
		p.logger.Debug("page received", "project", projectKey, "page", page, "count", len(items))

		if len(items) < p.pageSize {
			break
		}
	}

	stats.Assets = len(all)
	return all, stats, nil
}

func decodePage(resp *Page) ([]asset.Asset, error) {
	if resp == nil {
		return nil, &TransportError{Err: errors.New("empty response")}
	}
	if resp.Status == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, &TransportError{Status: resp.Status}
	}

	var doc json.RawMessage
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, &TransportError{Status: resp.Status, Err: fmt.Errorf("decode page: %w", err)}
	}
	// Any valid document other than an object carries no assets field.
	if doc = bytes.TrimSpace(doc); len(doc) == 0 || doc[0] != '{' {
		return nil, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(doc, &envelope); err != nil {
		return nil, &TransportError{Status: resp.Status, Err: fmt.Errorf("decode page: %w", err)}
	}

	raw := bytes.TrimSpace(envelope[AssetsField])
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil
	}

	var items []asset.Asset
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &TransportError{Status: resp.Status, Err: fmt.Errorf("decode assets: %w", err)}
	}
	return items, nil
}
