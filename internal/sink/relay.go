package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wardenbot/warden/internal/journal"
	"github.com/wardenbot/warden/internal/pubsub"
)

// relayTopicPrefix is where journal events land on the bus. The slash path
// becomes a dotted topic: /alias/member/update -> journal.alias.member.update.
const relayTopicPrefix = "journal"

// RelayPayload is the JSON body a relayed journal event carries on the bus.
// Attachments are not relayed; bus consumers that need binaries register a
// journal listener instead.
type RelayPayload struct {
	EventID   string `json:"event_id"`
	Path      string `json:"path"`
	GuildID   string `json:"guild_id,omitempty"`
	GuildName string `json:"guild_name,omitempty"`
	Content   string `json:"content"`
	Icon      string `json:"icon,omitempty"`
}

// Relay re-publishes matching journal events onto the in-process message
// bus, so modules outside the journal can consume them with topic
// subscriptions.
type Relay struct {
	path      string
	recursive bool
	publisher pubsub.Publisher
}

// NewRelay creates a bus relay for the given subtree.
func NewRelay(path string, recursive bool, publisher pubsub.Publisher) *Relay {
	return &Relay{path: path, recursive: recursive, publisher: publisher}
}

func (s *Relay) Path() string    { return s.path }
func (s *Relay) Recursive() bool { return s.recursive }

// Validate implements journal.Validator.
func (s *Relay) Validate() error {
	if s.publisher == nil {
		return errors.New("relay has nil publisher")
	}
	return nil
}

// Filter accepts everything under the registered subtree.
func (s *Relay) Filter(ev journal.Event) (bool, error) {
	return true, nil
}

// Handle serializes the event and publishes it at the dotted bus topic.
func (s *Relay) Handle(ctx context.Context, ev journal.Event) error {
	payload := RelayPayload{
		EventID: ev.ID,
		Path:    ev.Path,
		Content: ev.Content,
	}
	if ev.Scope != nil {
		payload.GuildID = ev.Scope.ID()
		payload.GuildName = ev.Scope.Name()
	}
	if icon, ok := ev.Attrs.Icon(); ok {
		payload.Icon = icon
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding relay payload for %s: %w", ev.ID, err)
	}

	return s.publisher.Publish(ctx, pubsub.Message{
		Topic:   BusTopic(ev.Path),
		EventID: ev.ID,
		Payload: body,
		Metadata: map[string]string{
			"path": ev.Path,
		},
	})
}

// BusTopic maps a journal path to its bus topic name.
func BusTopic(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return relayTopicPrefix
	}
	return relayTopicPrefix + "." + strings.ReplaceAll(trimmed, "/", ".")
}
