package journal

import (
	"context"

	"github.com/wardenbot/warden/internal/platform"
)

// Broadcaster is a stateless view of a Router bound to one prefix path, so a
// producer subsystem supplies only the suffix at each call site.
type Broadcaster struct {
	router *Router
	prefix string
}

// Prefix returns the bound prefix path.
func (b *Broadcaster) Prefix() string {
	return b.prefix
}

// Send publishes an event at prefix+suffix. An empty suffix publishes at
// exactly the prefix. Like Publish, Send is fire-and-forget: it returns once
// every matching listener has been handled, and never fails.
func (b *Broadcaster) Send(ctx context.Context, suffix string, scope platform.Guild, content string, attrs Attributes) {
	b.router.Publish(ctx, Join(b.prefix, suffix), scope, content, attrs)
}
