package roundevents

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/Black-And-White-Club/golfcard/pkg/eventbus"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRound() *rounddomain.Round {
	return &rounddomain.Round{
		ID:         "r1",
		ExternalID: "ext-1",
		Course:     rounddomain.CourseRef{ID: "c1", Name: "Valderrama", Par: 71},
		Settings:   rounddomain.Settings{Game: rounddomain.StrokePlayGame{}},
		IsFinished: true,
	}
}

func TestWatermillPublisher(t *testing.T) {
	bus := eventbus.NewInMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	messages, err := bus.Subscribe(ctx, RoundFinishedTopic)
	require.NoError(t, err)

	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewWatermillPublisher(bus)
	p.now = func() time.Time { return at }
	require.NoError(t, p.Publish(ctx, RoundFinishedTopic, testRound(), true))

	select {
	case msg := <-messages:
		var payload RoundLifecyclePayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, RoundLifecyclePayload{
			RoundID:    "r1",
			ExternalID: "ext-1",
			CourseID:   "c1",
			CourseName: "Valderrama",
			Mode:       "stroke",
			IsFinished: true,
			Remote:     true,
			OccurredAt: at,
		}, payload)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("event not delivered")
	}
}

func TestAuditHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := auditHandler(RoundSavedTopic, logger)

	data, err := json.Marshal(NewPayload(testRound(), false, time.Now()))
	require.NoError(t, err)
	msg := message.NewMessage("m1", data)
	msg.Metadata.Set(eventbus.CorrelationIDKey, "corr-9")

	require.NoError(t, handler(msg))
	assert.Contains(t, buf.String(), "Round lifecycle event")
	assert.Contains(t, buf.String(), "correlation_id=corr-9")
	assert.Contains(t, buf.String(), "round_id=r1")

	assert.Error(t, handler(message.NewMessage("m2", []byte("{"))))
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), RoundSavedTopic, testRound(), false))
}
