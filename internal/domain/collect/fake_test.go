package collect_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rpggio/assetboard/internal/domain/collect"
)

type fetchCall struct {
	project  string
	page     int
	pageSize int
}

// fakeSource serves a deterministic asset list per project. A gated project
// blocks every request until the gate is closed and ignores ctx, like a
// request that cannot be aborted mid-flight.
type fakeSource struct {
	mu     sync.Mutex
	totals map[string]int
	status map[string]map[int]int
	gates  map[string]chan struct{}
	calls  []fetchCall
}

func newFakeSource(totals map[string]int) *fakeSource {
	return &fakeSource{
		totals: totals,
		status: make(map[string]map[int]int),
		gates:  make(map[string]chan struct{}),
	}
}

func (f *fakeSource) failPage(project string, page, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status[project] == nil {
		f.status[project] = make(map[int]int)
	}
	f.status[project][page] = status
}

func (f *fakeSource) gate(project string) func() {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[project] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSource) callsFor(project string) []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fetchCall
	for _, c := range f.calls {
		if c.project == project {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeSource) FetchPage(_ context.Context, projectKey string, page, pageSize int) (*collect.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{project: projectKey, page: page, pageSize: pageSize})
	gate := f.gates[projectKey]
	status := f.status[projectKey][page]
	total := f.totals[projectKey]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if status != 0 {
		return &collect.Page{Status: status, Body: []byte(`{}`)}, nil
	}

	start := (page - 1) * pageSize
	n := total - start
	if n < 0 {
		n = 0
	}
	if n > pageSize {
		n = pageSize
	}
	items := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]any{
			"name":     assetName(projectKey, start+i),
			"relation": "master",
		})
	}
	body, err := json.Marshal(map[string]any{"assets": items})
	if err != nil {
		return nil, err
	}
	return &collect.Page{Status: 200, Body: body}, nil
}

func assetName(project string, idx int) string {
	return fmt.Sprintf("%s_%04d", project, idx)
}
