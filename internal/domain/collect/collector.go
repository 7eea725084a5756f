package collect

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/assetboard/internal/domain/asset"
)

// State is what a consumer observes. Loading, a non-nil Err and the
// records-or-empty outcome are mutually exclusive.
type State struct {
	ProjectKey string        `json:"project_key,omitempty"`
	Assets     []asset.Asset `json:"assets"`
	Loading    bool          `json:"loading"`
	Err        error         `json:"-"`
}

// Idle reports whether no project is selected.
func (s State) Idle() bool {
	return s.ProjectKey == ""
}

// Config configures a Collector.
type Config struct {
	Fetcher  PageFetcher
	PageSize int
	Logger   *slog.Logger
	// OnEvent receives lifecycle events outside the collector lock.
	OnEvent func(Event)
}

// Collector keeps at most one retrieval in flight and publishes only complete results.
type Collector struct {
	pager   *Pager
	logger  *slog.Logger
	onEvent func(Event)
	now     func() time.Time

	mu          sync.Mutex
	current     *session
	generation  uint64
	state       State
	subscribers map[int]chan State
	nextSub     int
}

// New creates a collector.
func New(cfg Config) (*Collector, error) {
	if cfg.Fetcher == nil {
		return nil, ErrInvalidInput
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{
		pager:       NewPager(cfg.Fetcher, cfg.PageSize, logger),
		logger:      logger,
		onEvent:     cfg.OnEvent,
		now:         time.Now,
		subscribers: make(map[int]chan State),
	}, nil
}

// Start retargets the collector. The current session, if any, is superseded
// before anything else happens. An empty key settles into the idle state
// without issuing a request. Starting the key that is already loading keeps
// the in-flight session.
func (c *Collector) Start(projectKey string) *Handle {
	c.mu.Lock()

	if c.current != nil && c.current.projectKey == projectKey {
		h := &Handle{id: c.current.id, done: c.current.done}
		c.mu.Unlock()
		return h
	}

	c.supersedeLocked()

	if projectKey == "" {
		c.publishLocked(State{})
		c.mu.Unlock()
		c.logger.Debug("collector idle")
		return closedHandle()
	}

	c.generation++
	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		id:         uuid.NewString(),
		generation: c.generation,
		projectKey: projectKey,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	c.current = sess
	c.publishLocked(State{ProjectKey: projectKey, Loading: true})
	c.mu.Unlock()

	c.logger.Info("retrieval started", "project", projectKey, "session", sess.id, "page_size", c.pager.PageSize())
	c.emit(Event{Type: EventStarted, SessionID: sess.id, ProjectKey: projectKey})

	go c.run(sess)
	return &Handle{id: sess.id, done: sess.done}
}

// Stop supersedes the in-flight session because the consumer stopped observing.
// A completed result or error stays visible; an interrupted load leaves the
// idle state behind.
func (c *Collector) Stop() {
	c.stop()
}

// Shutdown stops like Stop, then waits until the superseded session, if any,
// has returned and emitted its last event, or ctx ends.
func (c *Collector) Shutdown(ctx context.Context) error {
	done := c.stop()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stop returns the done channel of the superseded session, nil if none was in flight.
func (c *Collector) stop() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.current
	if !c.supersedeLocked() {
		return nil
	}
	c.publishLocked(State{})
	return sess.done
}

// State returns the latest published state.
func (c *Collector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel carrying the latest state after every change.
// Slow readers only see the most recent state. Call the returned func to unsubscribe.
func (c *Collector) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan State, 1)
	ch <- c.state
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subscribers, id)
			close(ch)
		})
	}
}

func (c *Collector) run(sess *session) {
	defer close(sess.done)

	assets, stats, err := c.pager.Collect(sess.ctx, sess.projectKey)

	c.mu.Lock()
	if c.current != sess || sess.superseded {
		c.mu.Unlock()
		c.logger.Debug("retrieval discarded", "project", sess.projectKey, "session", sess.id, "pages", stats.Pages)
		c.emit(Event{Type: EventSuperseded, SessionID: sess.id, ProjectKey: sess.projectKey, Stats: stats})
		return
	}
	c.current = nil
	sess.cancel()

	ev := Event{SessionID: sess.id, ProjectKey: sess.projectKey, Stats: stats}
	if err != nil {
		c.publishLocked(State{ProjectKey: sess.projectKey, Err: err})
		ev.Type = EventFailed
		ev.Err = err
	} else {
		c.publishLocked(State{ProjectKey: sess.projectKey, Assets: assets})
		ev.Type = EventCompleted
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("retrieval failed", "project", sess.projectKey, "session", sess.id, "pages", stats.Pages, "error", err)
	} else {
		c.logger.Info("retrieval completed", "project", sess.projectKey, "session", sess.id, "pages", stats.Pages, "assets", stats.Assets)
	}
	c.emit(ev)
}

// supersedeLocked cancels the current session. Must be called with c.mu held.
func (c *Collector) supersedeLocked() bool {
	sess := c.current
	if sess == nil {
		return false
	}
	sess.superseded = true
	sess.cancel()
	c.current = nil
	return true
}

// publishLocked replaces the state and notifies subscribers. Must be called with c.mu held.
func (c *Collector) publishLocked(st State) {
	c.state = st
	for _, ch := range c.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

func (c *Collector) emit(ev Event) {
	if c.onEvent == nil {
		return
	}
	ev.At = c.now()
	c.onEvent(ev)
}
