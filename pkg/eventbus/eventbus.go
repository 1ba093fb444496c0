// Package eventbus wraps watermill publishing with JSON payloads and
// correlation metadata.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// CorrelationIDKey is the metadata key carrying the request correlation id.
const CorrelationIDKey = "correlation_id"

// EventBus publishes and subscribes to topics.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// NewInMemory returns an in-process bus.
func NewInMemory(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
}

// NewJSONMessage marshals payload into a message carrying the context's
// correlation id.
func NewJSONMessage(ctx context.Context, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if id := attr.ExtractCorrelationID(ctx).Value.String(); id != "" {
		msg.Metadata.Set(CorrelationIDKey, id)
	}
	msg.SetContext(ctx)
	return msg, nil
}

// PublishJSON marshals payload and publishes it to topic.
func PublishJSON(ctx context.Context, pub message.Publisher, topic string, payload any) error {
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	msg, err := NewJSONMessage(ctx, payload)
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}
