package collect

import (
	"context"
	"time"
)

// EventType names a retrieval lifecycle transition.
type EventType string

const (
	EventStarted    EventType = "session_started"
	EventCompleted  EventType = "session_completed"
	EventFailed     EventType = "session_failed"
	EventSuperseded EventType = "session_superseded"
)

// Event describes a retrieval lifecycle transition.
type Event struct {
	Type       EventType
	SessionID  string
	ProjectKey string
	Stats      Stats
	Err        error
	At         time.Time
}

// session is one attempt to retrieve every page for a project.
// It is replaced on retarget, never reused. The accumulator and page cursor
// live in the goroutine running Pager.Collect for this session.
type session struct {
	id         string
	generation uint64
	projectKey string
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}

	// guarded by Collector.mu
	superseded bool
}

// Handle lets a caller wait for one session to finish.
type Handle struct {
	id   string
	done <-chan struct{}
}

// ID returns the session id, empty for an idle start.
func (h *Handle) ID() string {
	return h.id
}

// Done is closed once the session completed, failed or was superseded.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the session finishes or ctx ends.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func closedHandle() *Handle {
	done := make(chan struct{})
	close(done)
	return &Handle{done: done}
}
