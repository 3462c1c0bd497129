// Package journal is the moderation event journal: producers publish
// structured events at hierarchical topic paths and a router fans each event
// out to every registered listener whose path matches. Delivery is
// fire-and-forget from the producer's perspective; per-listener failures are
// logged and contained.
package journal

import (
	"github.com/wardenbot/warden/internal/attachment"
	"github.com/wardenbot/warden/internal/platform"
)

// Attribute keys recognized by the reference sinks. Producers are free to
// add their own keys; sinks ignore what they don't understand.
const (
	AttrIcon  = "icon"
	AttrEmbed = "embed"
	AttrFile  = "file"
	AttrFiles = "files"
)

// Attributes is the open side channel attached to an event. Recognized keys
// have typed accessors; everything else passes through untouched.
type Attributes map[string]any

// Icon returns the symbolic icon name, if one was attached.
func (a Attributes) Icon() (string, bool) {
	name, ok := a[AttrIcon].(string)
	return name, ok
}

// Embed returns the rich-content block, if one was attached.
func (a Attributes) Embed() (*platform.Embed, bool) {
	embed, ok := a[AttrEmbed].(*platform.Embed)
	return embed, ok
}

// File returns the single attachment, if one was attached.
func (a Attributes) File() (*attachment.File, bool) {
	f, ok := a[AttrFile].(*attachment.File)
	return f, ok
}

// Files returns the attachment sequence, if one was attached.
func (a Attributes) Files() ([]*attachment.File, bool) {
	fs, ok := a[AttrFiles].([]*attachment.File)
	return fs, ok
}

// Event is one journal occurrence. Events are values; listeners must treat
// them as read-only.
type Event struct {
	// ID correlates one publish across the log lines of every sink that
	// handled it.
	ID string

	// Path is the topic path the event was published at.
	Path string

	// Scope is the guild the event pertains to. Nil for scope-less events.
	Scope platform.Guild

	// Content is the human-rendered text body.
	Content string

	// Attrs carries icon, embed, attachments and producer-defined extras.
	Attrs Attributes
}
