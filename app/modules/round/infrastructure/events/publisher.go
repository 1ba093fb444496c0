package roundevents

import (
	"context"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/Black-And-White-Club/golfcard/pkg/eventbus"
	"github.com/ThreeDotsLabs/watermill/message"
)

// RoundLifecyclePayload describes a round at the moment of a transition.
type RoundLifecyclePayload struct {
	RoundID    string    `json:"round_id"`
	ExternalID string    `json:"external_id,omitempty"`
	CourseID   string    `json:"course_id,omitempty"`
	CourseName string    `json:"course_name,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	IsFinished bool      `json:"is_finished"`
	Remote     bool      `json:"remote"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits round lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, topic string, round *rounddomain.Round, remote bool) error
}

// WatermillPublisher publishes lifecycle events through a watermill publisher.
type WatermillPublisher struct {
	pub message.Publisher
	now func() time.Time
}

func NewWatermillPublisher(pub message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{pub: pub, now: time.Now}
}

func (p *WatermillPublisher) Publish(ctx context.Context, topic string, round *rounddomain.Round, remote bool) error {
	return eventbus.PublishJSON(ctx, p.pub, topic, NewPayload(round, remote, p.now().UTC()))
}

// NewPayload summarises round for an event.
func NewPayload(round *rounddomain.Round, remote bool, at time.Time) RoundLifecyclePayload {
	return RoundLifecyclePayload{
		RoundID:    round.ID,
		ExternalID: round.ExternalID,
		CourseID:   round.Course.ID,
		CourseName: round.Course.Name,
		Mode:       string(round.Settings.Mode()),
		IsFinished: round.IsFinished,
		Remote:     remote,
		OccurredAt: at,
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *rounddomain.Round, bool) error { return nil }
