package collect

import "context"

// AssetsField is the body field holding a page's asset array.
const AssetsField = "assets"

// Page is one raw response from the review API.
type Page struct {
	Status int
	Body   []byte
}

// PageFetcher requests a single page of assets for a project.
// Implementations should honour ctx cancellation where the transport allows it.
type PageFetcher interface {
	FetchPage(ctx context.Context, projectKey string, page, pageSize int) (*Page, error)
}
