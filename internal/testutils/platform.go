// Package testutils provides in-memory platform fakes for tests: guilds
// with fixed channel sets and recording channel/user destinations.
package testutils

import (
	"context"
	"sync"

	"github.com/wardenbot/warden/internal/platform"
)

// Guild is a fake guild with a fixed channel membership set.
type Guild struct {
	GuildID   string
	GuildName string
	Channels  map[string]bool
}

// NewGuild builds a fake guild containing the given channel IDs.
func NewGuild(id, name string, channelIDs ...string) *Guild {
	channels := make(map[string]bool, len(channelIDs))
	for _, cid := range channelIDs {
		channels[cid] = true
	}
	return &Guild{GuildID: id, GuildName: name, Channels: channels}
}

func (g *Guild) ID() string                       { return g.GuildID }
func (g *Guild) Name() string                     { return g.GuildName }
func (g *Guild) HasChannel(channelID string) bool { return g.Channels[channelID] }

// Channel records every message sent to it. Set Err to simulate a delivery
// failure.
type Channel struct {
	ChannelID string
	Err       error

	mu   sync.Mutex
	sent []platform.Message
}

// NewChannel builds a recording channel.
func NewChannel(id string) *Channel {
	return &Channel{ChannelID: id}
}

func (c *Channel) ID() string { return c.ChannelID }

func (c *Channel) Send(ctx context.Context, msg platform.Message) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

// Sent returns a snapshot of the recorded messages.
func (c *Channel) Sent() []platform.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]platform.Message(nil), c.sent...)
}

// User records every direct message sent to it. Set Err to simulate a
// delivery failure.
type User struct {
	UserID string
	Err    error

	mu   sync.Mutex
	sent []platform.Message
}

// NewUser builds a recording user.
func NewUser(id string) *User {
	return &User{UserID: id}
}

func (u *User) ID() string { return u.UserID }

func (u *User) Send(ctx context.Context, msg platform.Message) error {
	if u.Err != nil {
		return u.Err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sent = append(u.sent, msg)
	return nil
}

// Sent returns a snapshot of the recorded messages.
func (u *User) Sent() []platform.Message {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]platform.Message(nil), u.sent...)
}
