// Package pubsub is the in-process message bus journal events are relayed
// onto, so other modules can consume them with ordinary topic subscriptions
// instead of registering journal listeners.
package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the bus channel (e.g. "journal.alias.member.update").
	Topic string
	// EventID is the journal event ID the message originated from, if any.
	EventID string
	// Payload contains the serialized message body.
	Payload []byte
	// Metadata can contain arbitrary key-value pairs for context.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the bus.
type Subscriber interface {
	// Subscribe starts listening to the given topic, processing messages
	// with the handler. The subscription runs until the bus is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
