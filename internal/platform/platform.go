// Package platform defines the opaque chat-platform handles the journal
// routes events through. The journal never talks to the network itself; a
// Guild, Channel or User is an identity plus a send capability supplied by
// the platform client at wiring time.
package platform

import (
	"context"

	"github.com/wardenbot/warden/internal/attachment"
)

// Guild is the community context an event pertains to. The journal only
// needs identity, a display name for DM labels, and channel membership for
// sink-side filtering.
type Guild interface {
	ID() string
	Name() string
	HasChannel(channelID string) bool
}

// Channel is a text destination inside a guild.
type Channel interface {
	ID() string
	Send(ctx context.Context, msg Message) error
}

// User is a private-message-capable identity.
type User interface {
	ID() string
	Send(ctx context.Context, msg Message) error
}

// Message is an outgoing payload. Content is always set; Embed and Files are
// optional rich additions.
type Message struct {
	Content string
	Embed   *Embed
	Files   []*attachment.File
}

// Embed is an opaque rich-content block, forwarded verbatim by sinks that
// support it.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// EmbedField is a single name/value pair inside an Embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Member is a point-in-time snapshot of a guild member's identity, used by
// producers that track changes between snapshots.
type Member struct {
	UserID    string
	Username  string
	Nickname  string
	AvatarURL string
	Guild     Guild
}

// DisplayName returns the nickname if one is set, otherwise the username.
func (m Member) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}
	return m.Username
}

// StaticGuild is a Guild backed by a fixed channel set. Platform clients
// that track membership dynamically provide their own implementation; this
// one covers configuration-driven wiring.
type StaticGuild struct {
	id       string
	name     string
	channels map[string]struct{}
}

// NewStaticGuild builds a guild handle with the given channel IDs.
func NewStaticGuild(id, name string, channelIDs ...string) *StaticGuild {
	channels := make(map[string]struct{}, len(channelIDs))
	for _, cid := range channelIDs {
		channels[cid] = struct{}{}
	}
	return &StaticGuild{id: id, name: name, channels: channels}
}

func (g *StaticGuild) ID() string   { return g.id }
func (g *StaticGuild) Name() string { return g.name }

func (g *StaticGuild) HasChannel(channelID string) bool {
	_, ok := g.channels[channelID]
	return ok
}
