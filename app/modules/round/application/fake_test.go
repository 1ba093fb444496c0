package roundservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	roundcache "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/cache"
	roundevents "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/events"
	rounddb "github.com/Black-And-White-Club/golfcard/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Repo
// ------------------------

// FakeRoundRepo stores documents in memory and records every call.
type FakeRoundRepo struct {
	trace  []string
	nextID int
	docs   map[string]*rounddomain.Round

	CreateRoundFunc func(ctx context.Context, round *rounddomain.Round) (string, error)
	UpsertRoundFunc func(ctx context.Context, externalID string, round *rounddomain.Round) error
	ListRoundsFunc  func(ctx context.Context, opts rounddb.ListOptions) ([]*rounddomain.Round, error)
	DeleteRoundFunc func(ctx context.Context, externalID string) error
}

func NewFakeRoundRepo() *FakeRoundRepo {
	return &FakeRoundRepo{
		trace: []string{},
		docs:  map[string]*rounddomain.Round{},
	}
}

func (f *FakeRoundRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoundRepo) CreateRound(ctx context.Context, db bun.IDB, round *rounddomain.Round) (string, error) {
	f.record("CreateRound")
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, round)
	}
	f.nextID++
	id := fmt.Sprintf("ext-%d", f.nextID)
	stored := round.Clone()
	stored.ExternalID = id
	f.docs[id] = stored
	return id, nil
}

func (f *FakeRoundRepo) UpsertRound(ctx context.Context, db bun.IDB, externalID string, round *rounddomain.Round) error {
	f.record("UpsertRound")
	if f.UpsertRoundFunc != nil {
		return f.UpsertRoundFunc(ctx, externalID, round)
	}
	f.docs[externalID] = round.Clone()
	return nil
}

func (f *FakeRoundRepo) GetRound(ctx context.Context, db bun.IDB, externalID string) (*rounddomain.Round, error) {
	f.record("GetRound")
	doc, ok := f.docs[externalID]
	if !ok {
		return nil, rounddb.ErrNotFound
	}
	return doc.Clone(), nil
}

func (f *FakeRoundRepo) ListRounds(ctx context.Context, db bun.IDB, opts rounddb.ListOptions) ([]*rounddomain.Round, error) {
	f.record("ListRounds")
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx, opts)
	}
	out := make([]*rounddomain.Round, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, doc.Clone())
	}
	return out, nil
}

func (f *FakeRoundRepo) DeleteRound(ctx context.Context, db bun.IDB, externalID string) error {
	f.record("DeleteRound")
	if f.DeleteRoundFunc != nil {
		return f.DeleteRoundFunc(ctx, externalID)
	}
	if _, ok := f.docs[externalID]; !ok {
		return rounddb.ErrNoRowsAffected
	}
	delete(f.docs, externalID)
	return nil
}

var _ rounddb.Repository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake Cache
// ------------------------

// FakeCache wraps the in-memory cache and can inject failures.
type FakeCache struct {
	*roundcache.MemoryCache
	trace []string

	SaveActiveErr  error
	SaveHistoryErr error
	LoadHistoryErr error
}

func NewFakeCache() *FakeCache {
	return &FakeCache{MemoryCache: roundcache.NewMemoryCache(), trace: []string{}}
}

func (f *FakeCache) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCache) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeCache) SaveActive(ctx context.Context, round *rounddomain.Round) error {
	f.record("SaveActive")
	if f.SaveActiveErr != nil {
		return f.SaveActiveErr
	}
	return f.MemoryCache.SaveActive(ctx, round)
}

func (f *FakeCache) ClearActive(ctx context.Context) error {
	f.record("ClearActive")
	return f.MemoryCache.ClearActive(ctx)
}

func (f *FakeCache) SaveHistory(ctx context.Context, rounds []*rounddomain.Round) error {
	f.record("SaveHistory")
	if f.SaveHistoryErr != nil {
		return f.SaveHistoryErr
	}
	return f.MemoryCache.SaveHistory(ctx, rounds)
}

func (f *FakeCache) LoadHistory(ctx context.Context) ([]*rounddomain.Round, error) {
	f.record("LoadHistory")
	if f.LoadHistoryErr != nil {
		return nil, f.LoadHistoryErr
	}
	return f.MemoryCache.LoadHistory(ctx)
}

var _ roundcache.Cache = (*FakeCache)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	RoundID string
	Remote  bool
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent

	PublishErr error
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, round *rounddomain.Round, remote bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Topic: topic, RoundID: round.ID, Remote: remote})
	return f.PublishErr
}

func (f *FakePublisher) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Topic)
	}
	return out
}

var _ roundevents.Publisher = (*FakePublisher)(nil)

// ------------------------
// Fixtures
// ------------------------

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

var coursePars = []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 5, 4}

func testCourse() rounddomain.Course {
	c := rounddomain.Course{
		ID:       "course-1",
		Name:     "Las Colinas",
		NumHoles: len(coursePars),
		Tees:     []rounddomain.Tee{{Name: "Amarillas", Slope: 125, Rating: 71.2}},
	}
	for i, par := range coursePars {
		c.Holes = append(c.Holes, rounddomain.Hole{Number: i + 1, Par: par, HandicapRank: i + 1})
		c.Par += par
	}
	return c
}

func testPlayers() []rounddomain.PlayerSetup {
	tee := rounddomain.Tee{Name: "Amarillas", Slope: 125, Rating: 71.2}
	return []rounddomain.PlayerSetup{
		{ID: "p1", Name: "Ana", HandicapIndex: 10, Tee: tee, Team: "A"},
		{ID: "p2", Name: "Luis", HandicapIndex: 20, Tee: tee, Team: "B"},
	}
}

// idSequence returns local ids round-1, round-2, ...
func idSequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("round-%d", n)
	}
}

func historyRound(id, externalID string, date time.Time, finished bool) *rounddomain.Round {
	return &rounddomain.Round{
		ID:             id,
		ExternalID:     externalID,
		Date:           date,
		Course:         rounddomain.CourseRef{ID: "course-1", Name: "Las Colinas", Par: 72},
		Settings:       rounddomain.Settings{}.WithDefaults(rounddomain.Defaults{}),
		CompletedHoles: []int{},
		IsFinished:     finished,
	}
}
