package sink

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

// Table names used by Postgres.
const (
	RankingsTable = "fightmatrix_rankings"
	FightersTable = "fightmatrix_fighters"
)

const createRankingsTable = `
CREATE TABLE IF NOT EXISTS fightmatrix_rankings (
	fighter_id   TEXT    NOT NULL,
	date         DATE    NOT NULL,
	weight_class TEXT    NOT NULL,
	rank         INTEGER NOT NULL,
	rank_change  INTEGER,
	points       INTEGER NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (fighter_id, date, weight_class)
)`

const createFightersTable = `
CREATE TABLE IF NOT EXISTS fightmatrix_fighters (
	fighter_id          TEXT PRIMARY KEY,
	fighter_name        TEXT NOT NULL,
	tapology_fighter_id TEXT,
	sherdog_fighter_id  TEXT,
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const upsertRanking = `
INSERT INTO fightmatrix_rankings (fighter_id, date, weight_class, rank, rank_change, points)
VALUES (:fighter_id, :date, :weight_class, :rank, :rank_change, :points)
ON CONFLICT (fighter_id, date, weight_class) DO UPDATE
SET rank = EXCLUDED.rank, rank_change = EXCLUDED.rank_change, points = EXCLUDED.points, updated_at = NOW()`

const upsertFighter = `
INSERT INTO fightmatrix_fighters (fighter_id, fighter_name, tapology_fighter_id, sherdog_fighter_id)
VALUES (:fighter_id, :fighter_name, :tapology_fighter_id, :sherdog_fighter_id)
ON CONFLICT (fighter_id) DO UPDATE
SET fighter_name = EXCLUDED.fighter_name,
	tapology_fighter_id = EXCLUDED.tapology_fighter_id,
	sherdog_fighter_id = EXCLUDED.sherdog_fighter_id,
	updated_at = NOW()`

// Postgres upserts records keyed on their natural identity, so re-crawling a
// snapshot overwrites rather than duplicates.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an open connection. The caller owns db unless Close is called.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the record tables if they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createRankingsTable, createFightersTable} {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// WriteRanking upserts r.
func (p *Postgres) WriteRanking(ctx context.Context, r domain.Ranking) error {
	_, err := p.db.NamedExecContext(ctx, upsertRanking, r)
	if err != nil {
		return fmt.Errorf("upsert ranking %s: %w", r.Key(), err)
	}
	return nil
}

// WriteFighter upserts f.
func (p *Postgres) WriteFighter(ctx context.Context, f domain.Fighter) error {
	_, err := p.db.NamedExecContext(ctx, upsertFighter, f)
	if err != nil {
		return fmt.Errorf("upsert fighter %s: %w", f.FighterID, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
