package journal

import (
	"context"
	"fmt"
)

// Listener is a registered interest in a topic subtree paired with delivery
// logic. New sink kinds implement this interface; the router never branches
// on concrete types.
type Listener interface {
	// Path is the topic path this listener is registered at.
	Path() string

	// Recursive reports whether descendants of Path also match.
	Recursive() bool

	// Filter decides synchronously whether Handle should run for the event.
	// It must not perform blocking I/O. An error counts as a rejection.
	Filter(ev Event) (bool, error)

	// Handle performs the delivery. It runs concurrently with the handlers
	// of other matching listeners for the same event.
	Handle(ctx context.Context, ev Event) error
}

// Validator is implemented by listeners that can check their bound state.
// Register surfaces a validation failure immediately rather than letting a
// misconfigured sink fail on every dispatch.
type Validator interface {
	Validate() error
}

// ListenerInfo is a read-only snapshot of one registration, for diagnostics.
type ListenerInfo struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
	Kind      string `json:"kind"`
}

func describe(l Listener) ListenerInfo {
	return ListenerInfo{
		Path:      l.Path(),
		Recursive: l.Recursive(),
		Kind:      fmt.Sprintf("%T", l),
	}
}
