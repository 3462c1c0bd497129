package pubsub

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware creates a watermill middleware that adds OpenTelemetry
// tracing to message processing, for visibility into relayed journal events.
func TracingMiddleware(tracer trace.Tracer) func(message.HandlerFunc) message.HandlerFunc {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			ctx := msg.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			topic := msg.Metadata.Get(metaKeyTopic)
			eventID := msg.Metadata.Get(metaKeyEventID)

			spanCtx, span := tracer.Start(ctx, fmt.Sprintf("bus.process.%s", topic),
				trace.WithAttributes(
					attribute.String("messaging.system", "watermill"),
					attribute.String("messaging.operation", "process"),
					attribute.String("messaging.destination", topic),
					attribute.String("messaging.message_id", msg.UUID),
					attribute.String("journal.event_id", eventID),
					attribute.Int("messaging.message_payload_size_bytes", len(msg.Payload)),
				),
			)
			defer span.End()

			msg.SetContext(spanCtx)

			producedMessages, err := h(msg)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}

			span.SetAttributes(attribute.Int("messaging.messages_produced", len(producedMessages)))
			return producedMessages, nil
		}
	}
}

// TracingPublisher wraps a watermill publisher so every publish is recorded
// as a span.
type TracingPublisher struct {
	publisher message.Publisher
	tracer    trace.Tracer
}

// NewTracingPublisher creates a publisher wrapper with tracing.
func NewTracingPublisher(publisher message.Publisher, tracer trace.Tracer) *TracingPublisher {
	return &TracingPublisher{
		publisher: publisher,
		tracer:    tracer,
	}
}

// Publish wraps the publish operation with tracing.
func (p *TracingPublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		ctx := msg.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		eventID := msg.Metadata.Get(metaKeyEventID)

		spanCtx, span := p.tracer.Start(ctx, fmt.Sprintf("bus.publish.%s", topic),
			trace.WithAttributes(
				attribute.String("messaging.system", "watermill"),
				attribute.String("messaging.operation", "publish"),
				attribute.String("messaging.destination", topic),
				attribute.String("messaging.message_id", msg.UUID),
				attribute.String("journal.event_id", eventID),
				attribute.Int("messaging.message_payload_size_bytes", len(msg.Payload)),
			),
		)
		defer span.End()

		msg.SetContext(spanCtx)
	}

	err := p.publisher.Publish(topic, messages...)
	if err != nil {
		for _, msg := range messages {
			if span := trace.SpanFromContext(msg.Context()); span != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
		}
	}

	return err
}

// Close closes the underlying publisher.
func (p *TracingPublisher) Close() error {
	return p.publisher.Close()
}
