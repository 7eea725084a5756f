package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request records one call to the fake review API.
type Request struct {
	Project string
	Page    int
	PerPage int
	Accept  string
}

// ReviewAPI is an in-process stand-in for the paginated review API.
type ReviewAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	assets   map[string][]map[string]any
	statuses map[string]map[int]int
	holds    map[string]chan struct{}
	requests []Request
}

// NewReviewAPI starts the fake API and closes it when the test ends.
func NewReviewAPI(t *testing.T) *ReviewAPI {
	t.Helper()

	api := &ReviewAPI{
		assets:   make(map[string][]map[string]any),
		statuses: make(map[string]map[int]int),
		holds:    make(map[string]chan struct{}),
	}

	r := chi.NewRouter()
	r.Get("/api/projects/{projectKey}/reviews/assets", api.handleAssets)
	api.Server = httptest.NewServer(r)

	t.Cleanup(func() {
		api.releaseAll()
		api.Server.Close()
	})
	return api
}

// URL returns the API base URL.
func (a *ReviewAPI) URL() string {
	return a.Server.URL
}

// SetAssets replaces the records served for a project.
func (a *ReviewAPI) SetAssets(project string, assets []map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.assets[project] = assets
}

// Generate serves n records named AssetName(project, i) with relation "master".
func (a *ReviewAPI) Generate(project string, n int) {
	assets := make([]map[string]any, 0, n)
	for i := range n {
		assets = append(assets, map[string]any{
			"name":     AssetName(project, i),
			"relation": "master",
			"group":    "chr",
		})
	}
	a.SetAssets(project, assets)
}

// AssetName is the name Generate gives the i-th record of a project.
func AssetName(project string, i int) string {
	return fmt.Sprintf("%s_%04d", project, i)
}

// FailPage makes one page of a project answer with status.
func (a *ReviewAPI) FailPage(project string, page, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.statuses[project] == nil {
		a.statuses[project] = make(map[int]int)
	}
	a.statuses[project][page] = status
}

// Hold blocks every request for project until the returned func is called
// or the client goes away. Holding a project again releases the previous hold.
func (a *ReviewAPI) Hold(project string) func() {
	ch := make(chan struct{})
	a.mu.Lock()
	if prev, ok := a.holds[project]; ok {
		close(prev)
	}
	a.holds[project] = ch
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		owned := a.holds[project] == ch
		if owned {
			delete(a.holds, project)
		}
		a.mu.Unlock()
		if owned {
			close(ch)
		}
	}
}

// Requests returns every request received so far.
func (a *ReviewAPI) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.requests...)
}

// RequestsFor returns the requests received for one project.
func (a *ReviewAPI) RequestsFor(project string) []Request {
	var out []Request
	for _, req := range a.Requests() {
		if req.Project == project {
			out = append(out, req)
		}
	}
	return out
}

func (a *ReviewAPI) releaseAll() {
	a.mu.Lock()
	holds := a.holds
	a.holds = make(map[string]chan struct{})
	a.mu.Unlock()
	for _, ch := range holds {
		close(ch)
	}
}

func (a *ReviewAPI) handleAssets(w http.ResponseWriter, r *http.Request) {
	project, err := url.PathUnescape(chi.URLParam(r, "projectKey"))
	if err != nil {
		http.Error(w, "bad project key", http.StatusBadRequest)
		return
	}
	page := intParam(r, "page", 1)
	perPage := intParam(r, "per_page", 200)

	a.mu.Lock()
	a.requests = append(a.requests, Request{Project: project, Page: page, PerPage: perPage, Accept: r.Header.Get("Accept")})
	hold := a.holds[project]
	status := a.statuses[project][page]
	assets, known := a.assets[project]
	a.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if !known {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(assets) || page < 1 || perPage < 1 {
		start, end = 0, 0
	}
	if end > len(assets) {
		end = len(assets)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"assets": assets[start:end],
		"page":   page,
	})
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
