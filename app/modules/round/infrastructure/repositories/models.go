package rounddb

import (
	"fmt"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RoundDocument stores a whole round as one jsonb document. The indexed
// columns are copies of document fields used for listing.
type RoundDocument struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`
	ID            uuid.UUID          `bun:"id,pk,type:uuid"`
	LocalID       string             `bun:"local_id,notnull"`
	CourseID      string             `bun:"course_id,nullzero"`
	CourseName    string             `bun:"course_name,nullzero"`
	PlayedAt      time.Time          `bun:"played_at,notnull"`
	IsFinished    bool               `bun:"is_finished,notnull,default:false"`
	Document      *rounddomain.Round `bun:"document,type:jsonb,notnull"`
	CreatedAt     time.Time          `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time          `bun:",nullzero,notnull,default:current_timestamp"`
}

// NewRoundDocument builds the row for round stored under id.
func NewRoundDocument(id uuid.UUID, round *rounddomain.Round) *RoundDocument {
	doc := round.Clone()
	doc.ExternalID = id.String()
	return &RoundDocument{
		ID:         id,
		LocalID:    round.ID,
		CourseID:   round.Course.ID,
		CourseName: round.Course.Name,
		PlayedAt:   round.Date,
		IsFinished: round.IsFinished,
		Document:   doc,
	}
}

// ToRound returns the stored round with its external id set from the row.
func (d *RoundDocument) ToRound() (*rounddomain.Round, error) {
	if d.Document == nil {
		return nil, fmt.Errorf("round %s has an empty document", d.ID)
	}
	r := d.Document.Clone()
	r.ExternalID = d.ID.String()
	return r, nil
}

// ListOptions narrows ListRounds.
type ListOptions struct {
	Since time.Time
	Limit int
}
