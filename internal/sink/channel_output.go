// Package sink provides the reference journal listeners: guild channel
// output, operator direct messages, and the bus relay.
package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wardenbot/warden/internal/icons"
	"github.com/wardenbot/warden/internal/journal"
	"github.com/wardenbot/warden/internal/platform"
)

// FilterFunc is an optional user-supplied predicate composed after a sink's
// own mandatory filtering.
type FilterFunc func(ev journal.Event) bool

// ChannelOutput delivers matching events as text to a configured guild
// channel, with the event's icon rendered as a glyph prefix.
type ChannelOutput struct {
	path      string
	recursive bool
	channel   platform.Channel
	filter    FilterFunc
	logger    *slog.Logger
}

// NewChannelOutput creates a channel sink. filter may be nil to accept every
// event that passes the scope check.
func NewChannelOutput(path string, recursive bool, channel platform.Channel, filter FilterFunc) *ChannelOutput {
	return &ChannelOutput{
		path:      path,
		recursive: recursive,
		channel:   channel,
		filter:    filter,
		logger:    slog.Default(),
	}
}

func (s *ChannelOutput) Path() string    { return s.path }
func (s *ChannelOutput) Recursive() bool { return s.recursive }

// Validate implements journal.Validator.
func (s *ChannelOutput) Validate() error {
	if s.channel == nil {
		return errors.New("channel output has nil channel")
	}
	return nil
}

// Filter rejects events whose guild does not contain the bound channel.
// Two guilds can register listeners at the same path; without this check a
// sink configured for one guild would emit the other's chatter.
func (s *ChannelOutput) Filter(ev journal.Event) (bool, error) {
	if ev.Scope == nil || !ev.Scope.HasChannel(s.channel.ID()) {
		s.logger.Debug("skipping journal event, wrong guild",
			"path", ev.Path, "channel", s.channel.ID())
		return false, nil
	}
	if s.filter != nil && !s.filter(ev) {
		return false, nil
	}
	return true, nil
}

// Handle sends the event text to the channel, applying the icon if present.
// An unknown icon name fails the delivery so the producer's typo shows up in
// the diagnostic log instead of vanishing.
func (s *ChannelOutput) Handle(ctx context.Context, ev journal.Event) error {
	content := ev.Content
	if name, ok := ev.Attrs.Icon(); ok {
		glyph, err := icons.Resolve(name)
		if err != nil {
			return fmt.Errorf("rendering event %s: %w", ev.ID, err)
		}
		content = glyph + " " + content
	}

	s.logger.Info("journal event delivered to channel",
		"path", ev.Path, "event_id", ev.ID, "channel", s.channel.ID())
	return s.channel.Send(ctx, platform.Message{Content: content})
}
