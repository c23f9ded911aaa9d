package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MatchRow is one recorded match. WinnerSlot is nil when the match was
// abandoned before anyone ran out of lives.
type MatchRow struct {
	ID         uuid.UUID
	Seed       int64
	Frames     int64
	Duration   time.Duration
	Finished   bool
	WinnerSlot *int16
	Lives      [2]int16
	CreatedAt  time.Time
}

// LifeLossRow records one fall past the kill line.
type LifeLossRow struct {
	Slot      int16
	Elapsed   time.Duration
	Remaining int16
}

// Winner returns the winning slot, or -1.
func (r *MatchRow) Winner() int {
	if r.WinnerSlot == nil {
		return -1
	}
	return int(*r.WinnerSlot)
}

// WinnerSlot converts a slot (-1 for none) into the nullable column value.
func WinnerSlot(slot int) *int16 {
	if slot < 0 {
		return nil
	}
	s := int16(slot)
	return &s
}

type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Record writes the match and its life losses in one transaction.
func (r *MatchRepo) Record(ctx context.Context, m MatchRow, losses []LifeLossRow) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("record match begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO matches (id, seed, frames, duration_ms, finished, winner_slot, lives_p1, lives_p2)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID.String(), m.Seed, m.Frames, m.Duration.Milliseconds(), m.Finished, m.WinnerSlot,
		m.Lives[0], m.Lives[1],
	); err != nil {
		return fmt.Errorf("insert match %s: %w", m.ID, err)
	}

	for _, l := range losses {
		if _, err := tx.Exec(ctx,
			`INSERT INTO life_losses (match_id, slot, elapsed_ms, remaining)
			 VALUES ($1::uuid, $2, $3, $4)`,
			m.ID.String(), l.Slot, l.Elapsed.Milliseconds(), l.Remaining,
		); err != nil {
			return fmt.Errorf("insert life loss: %w", err)
		}
	}

	return tx.Commit(ctx)
}

const matchColumns = `id::text, seed, frames, duration_ms, finished, winner_slot, lives_p1, lives_p2, created_at`

func scanMatch(row pgx.Row) (*MatchRow, error) {
	var (
		m          MatchRow
		id         string
		durationMs int64
	)
	if err := row.Scan(&id, &m.Seed, &m.Frames, &durationMs, &m.Finished, &m.WinnerSlot,
		&m.Lives[0], &m.Lives[1], &m.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse match id %q: %w", id, err)
	}
	m.ID = parsed
	m.Duration = time.Duration(durationMs) * time.Millisecond
	return &m, nil
}

// Load returns the match, or nil when no such match was recorded.
func (r *MatchRepo) Load(ctx context.Context, id uuid.UUID) (*MatchRow, error) {
	m, err := scanMatch(r.db.Pool.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = $1::uuid`, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	return m, nil
}

// Recent returns up to limit matches, newest first.
func (r *MatchRepo) Recent(ctx context.Context, limit int) ([]MatchRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+matchColumns+` FROM matches ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRow
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// LifeLosses returns a match's falls in the order they happened.
func (r *MatchRepo) LifeLosses(ctx context.Context, id uuid.UUID) ([]LifeLossRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT slot, elapsed_ms, remaining FROM life_losses
		 WHERE match_id = $1::uuid ORDER BY elapsed_ms`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query life losses: %w", err)
	}
	defer rows.Close()

	var out []LifeLossRow
	for rows.Next() {
		var (
			l  LifeLossRow
			ms int64
		)
		if err := rows.Scan(&l.Slot, &ms, &l.Remaining); err != nil {
			return nil, err
		}
		l.Elapsed = time.Duration(ms) * time.Millisecond
		out = append(out, l)
	}
	return out, rows.Err()
}
