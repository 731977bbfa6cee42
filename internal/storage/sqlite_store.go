package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hfletcher/gutlog/internal/constants"
	"github.com/hfletcher/gutlog/internal/logger"
	"github.com/hfletcher/gutlog/internal/migration"
	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/migrations"
)

// SQLiteStore persists the snapshot in a local SQLite database. Saving
// replaces the stored rows wholesale inside one transaction, keeping the
// snapshot semantics of the Provider contract.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.runMigrations()
}

func (s *SQLiteStore) runMigrations() error {
	runner := migration.NewRunner(s.db, migrations.FS)
	applied, err := runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	if err != nil {
		return err
	}
	if applied > 0 {
		logger.Info("Applied schema migrations", "count", applied)
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'gutlog init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.runMigrations()
}

func (s *SQLiteStore) Load() (models.Snapshot, error) {
	if err := s.open(); err != nil {
		return models.Snapshot{}, err
	}

	snap := models.Snapshot{Version: constants.StoreVersion}

	rows, err := s.db.Query(`
SELECT id, user_id, date, did_poop, duration_sec, fiber_grams, mood, notes, score, created_at
FROM entries ORDER BY date DESC`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Entry
		var didPoop int
		var createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &didPoop, &e.DurationSec, &e.FiberGrams, &e.Mood, &e.Notes, &e.Score, &createdAt); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.DidPoop = didPoop != 0
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return models.Snapshot{}, err
	}

	arows, err := s.db.Query(`SELECT id, title, unlocked_at FROM achievements ORDER BY unlocked_at DESC`)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to read achievements: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var a models.Achievement
		var unlockedAt string
		if err := arows.Scan(&a.ID, &a.Title, &unlockedAt); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to scan achievement: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, unlockedAt); err == nil {
			a.UnlockedAt = t
		}
		snap.Achievements = append(snap.Achievements, a)
	}
	if err := arows.Err(); err != nil {
		return models.Snapshot{}, err
	}

	if err := s.loadMeta(&snap); err != nil {
		return models.Snapshot{}, err
	}

	return snap, nil
}

func (s *SQLiteStore) loadMeta(snap *models.Snapshot) error {
	rows, err := s.db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return fmt.Errorf("failed to read meta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case "streak":
			fmt.Sscanf(value, "%d", &snap.Streak)
		case "last_sync_at":
			if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
				snap.LastSyncAt = &t
			}
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) Save(snap models.Snapshot) error {
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"entries", "achievements", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, e := range snap.Entries {
		didPoop := 0
		if e.DidPoop {
			didPoop = 1
		}
		_, err := tx.Exec(`
INSERT INTO entries (id, user_id, date, did_poop, duration_sec, fiber_grams, mood, notes, score, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.UserID, e.Date, didPoop, e.DurationSec, e.FiberGrams, string(e.Mood), e.Notes, e.Score,
			e.CreatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
		}
	}

	for _, a := range snap.Achievements {
		_, err := tx.Exec(`INSERT INTO achievements (id, title, unlocked_at) VALUES (?, ?, ?)`,
			a.ID, a.Title, a.UnlockedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to insert achievement %s: %w", a.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES ('streak', ?)`, fmt.Sprintf("%d", snap.Streak)); err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	if snap.LastSyncAt != nil {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES ('last_sync_at', ?)`, snap.LastSyncAt.Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("failed to save last sync time: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
