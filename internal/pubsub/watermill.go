package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel/trace"
)

// WatermillBridge implements Publisher and Subscriber over watermill's
// in-memory GoChannel transport.
type WatermillBridge struct {
	pub    message.Publisher
	sub    message.Subscriber
	tracer trace.Tracer
	logger watermill.LoggerAdapter
}

const (
	// Metadata keys used to carry Message fields through watermill.
	metaKeyEventID = "event_id"
	metaKeyTopic   = "topic"
)

// NewWatermillBridge initializes the in-memory bus without tracing.
func NewWatermillBridge() *WatermillBridge {
	return NewTracedWatermillBridge(nil)
}

// NewTracedWatermillBridge initializes the in-memory bus with every publish
// and every handled message recorded as spans on the given tracer. A nil
// tracer leaves the transport unwrapped.
func NewTracedWatermillBridge(tracer trace.Tracer) *WatermillBridge {
	logger := watermill.NewStdLogger(false, false)
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{},
		logger,
	)

	var pub message.Publisher = goChannel
	if tracer != nil {
		pub = NewTracingPublisher(goChannel, tracer)
	}

	return &WatermillBridge{
		pub:    pub,
		sub:    goChannel,
		tracer: tracer,
		logger: logger,
	}
}

// mapToWatermillMessage converts a bus Message to a watermill message.
func mapToWatermillMessage(msg Message) *message.Message {
	wmMsg := message.NewMessage(watermill.NewUUID(), msg.Payload)

	wmMsg.Metadata.Set(metaKeyEventID, msg.EventID)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)

	for k, v := range msg.Metadata {
		wmMsg.Metadata.Set(k, v)
	}

	return wmMsg
}

// mapToPubSubMessage converts a watermill message back to a bus Message.
func mapToPubSubMessage(wmMsg *message.Message) Message {
	eventID := wmMsg.Metadata.Get(metaKeyEventID)
	topic := wmMsg.Metadata.Get(metaKeyTopic)

	metadata := make(map[string]string)
	for k, v := range wmMsg.Metadata {
		if k != metaKeyEventID && k != metaKeyTopic {
			metadata[k] = v
		}
	}

	return Message{
		Topic:    topic,
		EventID:  eventID,
		Payload:  wmMsg.Payload,
		Metadata: metadata,
	}
}

// Publish implements the Publisher interface.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wmMsg := mapToWatermillMessage(msg)
	return wb.pub.Publish(msg.Topic, wmMsg)
}

// Subscribe implements the Subscriber interface. The handler runs on a
// background goroutine; Subscribe itself returns once the subscription is
// active.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	process := func(wmMsg *message.Message) ([]*message.Message, error) {
		return nil, handler(ctx, mapToPubSubMessage(wmMsg))
	}
	if wb.tracer != nil {
		process = TracingMiddleware(wb.tracer)(process)
	}

	go func() {
		for wmMsg := range messages {
			if _, err := process(wmMsg); err != nil {
				slog.Error("Failed to handle bus message", "topic", topic, "msg_id", wmMsg.UUID, "error", err)
				wmMsg.Nack()
			} else {
				wmMsg.Ack()
			}
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()

	return nil
}

// Close shuts down the bridge and stops message consumption.
func (wb *WatermillBridge) Close() error {
	return wb.sub.Close()
}
