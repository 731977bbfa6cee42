package cloudsync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/hfletcher/gutlog/internal/models"
)

var (
	// ErrNoRemote is returned when no remote DSN is configured.
	ErrNoRemote = errors.New("no remote store configured")
)

// Client talks to the hosted backend's Postgres tables. It is safe to
// share across goroutines; the connection pool is opened on first use
// and database/sql handles pooling underneath.
type Client struct {
	connStr string

	mu sync.Mutex
	db *sql.DB
}

func New(connStr string) *Client {
	return &Client{
		connStr: connStr,
	}
}

// Open establishes the connection pool and verifies reachability. It is
// a no-op when the pool is already open.
func (c *Client) Open(ctx context.Context) error {
	if c.connStr == "" {
		return ErrNoRemote
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", c.connStr)
	if err != nil {
		return fmt.Errorf("failed to open remote store: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("remote store unreachable: %w", err)
	}

	c.db = db
	return nil
}

// conn returns the open pool, opening it on first use.
func (c *Client) conn(ctx context.Context) (*sql.DB, error) {
	c.mu.Lock()
	db := c.db
	c.mu.Unlock()
	if db != nil {
		return db, nil
	}
	if err := c.Open(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Ping verifies the remote store responds.
func (c *Client) Ping(ctx context.Context) error {
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// UpsertEntry writes one entry row, keyed by id. Replaying the same
// upsert converges to the same remote state.
func (c *Client) UpsertEntry(ctx context.Context, e models.Entry) error {
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}
	r := entryToRow(e)
	_, err = db.ExecContext(ctx, `
INSERT INTO gut_entries (id, user_id, entry_date, pooped, duration_seconds, fiber_grams, mood, notes, score, inserted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
    entry_date = EXCLUDED.entry_date,
    pooped = EXCLUDED.pooped,
    duration_seconds = EXCLUDED.duration_seconds,
    fiber_grams = EXCLUDED.fiber_grams,
    mood = EXCLUDED.mood,
    notes = EXCLUDED.notes,
    score = EXCLUDED.score,
    inserted_at = EXCLUDED.inserted_at`,
		r.ID, r.UserID, r.EntryDate, r.Pooped, r.DurationSeconds, r.FiberGrams, r.Mood, r.Notes, r.Score, r.InsertedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert entry %s: %w", e.ID, err)
	}
	return nil
}

// DeleteEntry removes one entry row. Deleting an unknown id is a no-op.
func (c *Client) DeleteEntry(ctx context.Context, id, userID string) error {
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM gut_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}
	return nil
}

// UpsertAchievement writes one unlock row. The earliest earned_at wins,
// matching the merge direction for achievements.
func (c *Client) UpsertAchievement(ctx context.Context, a models.Achievement, userID string) error {
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}
	r := achievementToRow(a, userID)
	_, err = db.ExecContext(ctx, `
INSERT INTO gut_achievements (achievement_id, user_id, title, earned_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (achievement_id, user_id) DO UPDATE SET
    earned_at = LEAST(gut_achievements.earned_at, EXCLUDED.earned_at)`,
		r.AchievementID, r.UserID, r.Title, r.EarnedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert achievement %s: %w", a.ID, err)
	}
	return nil
}

// FetchEntries pulls all entry rows for the user.
func (c *Client) FetchEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, user_id, entry_date, pooped, duration_seconds, fiber_grams, mood, notes, score, inserted_at
FROM gut_entries WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var r entryRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.EntryDate, &r.Pooped, &r.DurationSeconds, &r.FiberGrams, &r.Mood, &r.Notes, &r.Score, &r.InsertedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, rowToEntry(r))
	}
	return entries, rows.Err()
}

// FetchAchievements pulls all unlock rows for the user.
func (c *Client) FetchAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
SELECT achievement_id, user_id, title, earned_at
FROM gut_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var r achievementRow
		if err := rows.Scan(&r.AchievementID, &r.UserID, &r.Title, &r.EarnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement row: %w", err)
		}
		achievements = append(achievements, rowToAchievement(r))
	}
	return achievements, rows.Err()
}

// PushAll bulk-upserts the full local state in one transaction.
func (c *Client) PushAll(ctx context.Context, userID string, entries []models.Entry, achievements []models.Achievement) error {
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin sync transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		r := entryToRow(e)
		_, err := tx.ExecContext(ctx, `
INSERT INTO gut_entries (id, user_id, entry_date, pooped, duration_seconds, fiber_grams, mood, notes, score, inserted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
    entry_date = EXCLUDED.entry_date,
    pooped = EXCLUDED.pooped,
    duration_seconds = EXCLUDED.duration_seconds,
    fiber_grams = EXCLUDED.fiber_grams,
    mood = EXCLUDED.mood,
    notes = EXCLUDED.notes,
    score = EXCLUDED.score,
    inserted_at = EXCLUDED.inserted_at`,
			r.ID, userID, r.EntryDate, r.Pooped, r.DurationSeconds, r.FiberGrams, r.Mood, r.Notes, r.Score, r.InsertedAt)
		if err != nil {
			return fmt.Errorf("failed to push entry %s: %w", e.ID, err)
		}
	}

	for _, a := range achievements {
		r := achievementToRow(a, userID)
		_, err := tx.ExecContext(ctx, `
INSERT INTO gut_achievements (achievement_id, user_id, title, earned_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (achievement_id, user_id) DO UPDATE SET
    earned_at = LEAST(gut_achievements.earned_at, EXCLUDED.earned_at)`,
			r.AchievementID, r.UserID, r.Title, r.EarnedAt)
		if err != nil {
			return fmt.Errorf("failed to push achievement %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}
