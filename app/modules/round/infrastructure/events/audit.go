package roundevents

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/golfcard/pkg/eventbus"
	"github.com/Black-And-White-Club/golfcard/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
)

// RegisterAuditHandlers logs every lifecycle event received on sub.
func RegisterAuditHandlers(router *message.Router, sub message.Subscriber, logger *slog.Logger) {
	for _, topic := range Topics {
		router.AddNoPublisherHandler(
			"round_audit_"+topic,
			topic,
			sub,
			auditHandler(topic, logger),
		)
	}
}

func auditHandler(topic string, logger *slog.Logger) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		var payload RoundLifecyclePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			logger.Error("Failed to decode round event",
				attr.String("topic", topic),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			return fmt.Errorf("failed to decode %s: %w", topic, err)
		}

		logger.Info("Round lifecycle event",
			attr.String("topic", topic),
			attr.String(attr.CorrelationIDKey, msg.Metadata.Get(eventbus.CorrelationIDKey)),
			attr.RoundID("round_id", payload.RoundID),
			attr.String("external_id", payload.ExternalID),
			attr.Bool("remote", payload.Remote),
			attr.Bool("is_finished", payload.IsFinished),
		)
		return nil
	}
}
