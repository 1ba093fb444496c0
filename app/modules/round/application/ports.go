package roundservice

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Option customises a RoundService.
type Option func(*RoundService)

// WithClock replaces the service clock.
func WithClock(c Clock) Option {
	return func(s *RoundService) { s.clock = c }
}

// WithIDGenerator replaces the local round id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *RoundService) { s.newID = gen }
}

func defaultID() string { return uuid.NewString() }
