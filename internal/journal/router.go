package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/wardenbot/warden/internal/platform"
)

// Router holds every active listener and fans published events out to the
// ones whose paths match. Registration and dispatch may run concurrently;
// the listener list is guarded by a reader-writer lock (dispatch scans are
// readers, register is the writer).
type Router struct {
	logger *slog.Logger

	mu        sync.RWMutex
	listeners []Listener
}

// NewRouter creates an empty router. A nil logger falls back to the default.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{logger: logger}
}

// Register adds a listener. A nil listener, a malformed path, or a failing
// Validate is fatal to whatever is wiring the sink, not something dispatch
// recovers from later.
func (r *Router) Register(l Listener) error {
	if l == nil {
		return fmt.Errorf("%w: nil listener", ErrMisconfiguredListener)
	}
	if !validPath(l.Path()) {
		return fmt.Errorf("%w: invalid path %q", ErrMisconfiguredListener, l.Path())
	}
	if v, ok := l.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrMisconfiguredListener, err)
		}
	}

	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()

	r.logger.Info("journal listener registered",
		"path", l.Path(), "recursive", l.Recursive(), "listener", fmt.Sprintf("%T", l))
	return nil
}

// Broadcaster returns a producer facade bound to the given prefix path. The
// prefix is held to the same shape Register demands of listener paths; a
// malformed one would only ever produce events no listener can match, so it
// panics at the binding site like a registration-time configuration error.
func (r *Router) Broadcaster(prefix string) *Broadcaster {
	if !validPath(prefix) {
		panic(fmt.Sprintf("journal: invalid broadcaster prefix %q", prefix))
	}
	return &Broadcaster{router: r, prefix: prefix}
}

// Listeners returns a snapshot of the current registrations.
func (r *Router) Listeners() []ListenerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ListenerInfo, 0, len(r.listeners))
	for _, l := range r.listeners {
		infos = append(infos, describe(l))
	}
	return infos
}

// Publish delivers an event to every matching listener and returns once all
// scheduled handlers have finished. It never fails: filter errors reject the
// one listener, handler errors and panics are logged at the per-listener
// boundary, and an event with zero matching listeners is dropped silently.
func (r *Router) Publish(ctx context.Context, path string, scope platform.Guild, content string, attrs Attributes) {
	ev := Event{
		ID:      uuid.NewString(),
		Path:    path,
		Scope:   scope,
		Content: content,
		Attrs:   attrs,
	}

	r.mu.RLock()
	matched := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		if Match(l.Path(), l.Recursive(), path) {
			matched = append(matched, l)
		}
	}
	r.mu.RUnlock()

	if len(matched) == 0 {
		r.logger.Debug("journal event matched no listeners", "path", path, "event_id", ev.ID)
		return
	}

	var wg sync.WaitGroup
	for _, l := range matched {
		if !r.runFilter(l, ev) {
			continue
		}
		wg.Add(1)
		go func(l Listener) {
			defer wg.Done()
			r.deliver(ctx, l, ev)
		}(l)
	}
	wg.Wait()
}

// runFilter evaluates a listener's filter synchronously. Errors and panics
// count as rejections and never abort the publish.
func (r *Router) runFilter(l Listener, ev Event) (accepted bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("journal filter panicked",
				"path", ev.Path, "event_id", ev.ID, "listener", fmt.Sprintf("%T", l), "panic", rec)
			accepted = false
		}
	}()

	ok, err := l.Filter(ev)
	if err != nil {
		r.logger.Warn("journal filter rejected with error",
			"path", ev.Path, "event_id", ev.ID, "listener", fmt.Sprintf("%T", l), "error", err)
		return false
	}
	return ok
}

// deliver runs one listener's handler, containing any failure.
func (r *Router) deliver(ctx context.Context, l Listener, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("journal handler panicked",
				"path", ev.Path, "event_id", ev.ID, "listener", fmt.Sprintf("%T", l), "panic", rec)
		}
	}()

	if err := l.Handle(ctx, ev); err != nil {
		r.logger.Error("journal delivery failed",
			"path", ev.Path, "event_id", ev.ID, "listener", fmt.Sprintf("%T", l), "error", err)
	}
}
