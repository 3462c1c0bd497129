package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/wardenbot/warden/internal/attachment"
	"github.com/wardenbot/warden/internal/journal"
	"github.com/wardenbot/warden/internal/platform"
)

// DirectMessage delivers matching events as a private message to a
// configured recipient, forwarding embeds and attachments. DMs are not
// scope-bound, so there is no filtering beyond the path match.
type DirectMessage struct {
	path      string
	recursive bool
	user      platform.User
}

// NewDirectMessage creates a direct-message sink for the given recipient.
func NewDirectMessage(path string, recursive bool, user platform.User) *DirectMessage {
	return &DirectMessage{path: path, recursive: recursive, user: user}
}

func (s *DirectMessage) Path() string    { return s.path }
func (s *DirectMessage) Recursive() bool { return s.recursive }

// Validate implements journal.Validator.
func (s *DirectMessage) Validate() error {
	if s.user == nil {
		return errors.New("direct message sink has nil recipient")
	}
	return nil
}

// Filter accepts everything; DM recipients asked for the whole subtree.
func (s *DirectMessage) Filter(ev journal.Event) (bool, error) {
	return true, nil
}

// Handle sends the event to the recipient, labeling it with the guild name
// when the event carries a scope. Attachments are duplicated so this sink's
// copy stays fully readable no matter which other sink consumes the same
// event's files first.
func (s *DirectMessage) Handle(ctx context.Context, ev journal.Event) error {
	content := ev.Content
	if ev.Scope != nil {
		content = fmt.Sprintf("[%s] %s", ev.Scope.Name(), content)
	}

	msg := platform.Message{Content: content}

	if embed, ok := ev.Attrs.Embed(); ok {
		msg.Embed = embed
	}
	if f, ok := ev.Attrs.File(); ok {
		dup, err := f.Duplicate()
		if err != nil {
			return fmt.Errorf("duplicating attachment %q: %w", f.Name(), err)
		}
		msg.Files = append(msg.Files, dup)
	}
	if fs, ok := ev.Attrs.Files(); ok {
		dups := make([]*attachment.File, 0, len(fs))
		for _, f := range fs {
			dup, err := f.Duplicate()
			if err != nil {
				return fmt.Errorf("duplicating attachment %q: %w", f.Name(), err)
			}
			dups = append(dups, dup)
		}
		msg.Files = append(msg.Files, dups...)
	}

	return s.user.Send(ctx, msg)
}
