package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when no document exists for an external id.
	ErrNotFound = errors.New("round not found")
	// ErrNoRowsAffected is returned when a delete matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrInvalidID is returned for external ids that are not uuids.
	ErrInvalidID = errors.New("invalid round id")
)

// Impl implements Repository with bun over Postgres.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new round repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func parseID(externalID string) (uuid.UUID, error) {
	id, err := uuid.Parse(externalID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, externalID)
	}
	return id, nil
}

// CreateRound stores a new document under a fresh uuid.
func (r *Impl) CreateRound(ctx context.Context, db bun.IDB, round *rounddomain.Round) (string, error) {
	db = r.resolveDB(db)
	doc := NewRoundDocument(uuid.New(), round)
	if _, err := db.NewInsert().Model(doc).Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to create round: %w", err)
	}
	return doc.ID.String(), nil
}

// UpsertRound writes the whole document under externalID.
func (r *Impl) UpsertRound(ctx context.Context, db bun.IDB, externalID string, round *rounddomain.Round) error {
	db = r.resolveDB(db)
	id, err := parseID(externalID)
	if err != nil {
		return err
	}

	doc := NewRoundDocument(id, round)
	doc.UpdatedAt = time.Now().UTC()
	_, err = db.NewInsert().
		Model(doc).
		On("CONFLICT (id) DO UPDATE").
		Set("local_id = EXCLUDED.local_id").
		Set("course_id = EXCLUDED.course_id").
		Set("course_name = EXCLUDED.course_name").
		Set("played_at = EXCLUDED.played_at").
		Set("is_finished = EXCLUDED.is_finished").
		Set("document = EXCLUDED.document").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert round: %w", err)
	}
	return nil
}

// GetRound loads one document.
func (r *Impl) GetRound(ctx context.Context, db bun.IDB, externalID string) (*rounddomain.Round, error) {
	db = r.resolveDB(db)
	id, err := parseID(externalID)
	if err != nil {
		return nil, err
	}

	doc := new(RoundDocument)
	err = db.NewSelect().
		Model(doc).
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return doc.ToRound()
}

// ListRounds returns stored rounds newest first.
func (r *Impl) ListRounds(ctx context.Context, db bun.IDB, opts ListOptions) ([]*rounddomain.Round, error) {
	db = r.resolveDB(db)

	var docs []RoundDocument
	q := db.NewSelect().
		Model(&docs).
		Order("r.played_at DESC", "r.created_at DESC")
	if !opts.Since.IsZero() {
		q = q.Where("r.played_at >= ?", opts.Since)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds := make([]*rounddomain.Round, 0, len(docs))
	for i := range docs {
		round, err := docs[i].ToRound()
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}

// DeleteRound removes one document.
func (r *Impl) DeleteRound(ctx context.Context, db bun.IDB, externalID string) error {
	db = r.resolveDB(db)
	id, err := parseID(externalID)
	if err != nil {
		return err
	}

	result, err := db.NewDelete().
		Model((*RoundDocument)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
