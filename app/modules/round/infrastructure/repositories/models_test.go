package rounddb

import (
	"testing"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundDocumentCarriesExternalID(t *testing.T) {
	id := uuid.New()
	played := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	round := &rounddomain.Round{
		ID:             "local-1",
		Date:           played,
		Course:         rounddomain.CourseRef{ID: "c1", Name: "El Saler", Par: 72},
		CompletedHoles: []int{1},
		IsFinished:     true,
	}

	doc := NewRoundDocument(id, round)
	assert.Equal(t, "local-1", doc.LocalID)
	assert.Equal(t, "c1", doc.CourseID)
	assert.Equal(t, played, doc.PlayedAt)
	assert.True(t, doc.IsFinished)
	assert.Empty(t, round.ExternalID, "building a document must not mutate the round")

	got, err := doc.ToRound()
	require.NoError(t, err)
	assert.Equal(t, id.String(), got.ExternalID)
	assert.Equal(t, []int{1}, got.CompletedHoles)

	_, err = (&RoundDocument{ID: id}).ToRound()
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	_, err := parseID("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)

	id := uuid.New()
	got, err := parseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
