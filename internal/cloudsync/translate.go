package cloudsync

import (
	"time"

	"github.com/hfletcher/gutlog/internal/models"
)

// entryRow mirrors the gut_entries table. The backend's column naming
// differs from the local field names (pooped/entry_date/inserted_at);
// this file is the single translation point in both directions.
type entryRow struct {
	ID              string
	UserID          string
	EntryDate       string
	Pooped          bool
	DurationSeconds int
	FiberGrams      int
	Mood            string
	Notes           string
	Score           int
	InsertedAt      time.Time
}

// achievementRow mirrors the gut_achievements table.
type achievementRow struct {
	AchievementID string
	UserID        string
	Title         string
	EarnedAt      time.Time
}

func entryToRow(e models.Entry) entryRow {
	return entryRow{
		ID:              e.ID,
		UserID:          e.UserID,
		EntryDate:       e.Date,
		Pooped:          e.DidPoop,
		DurationSeconds: e.DurationSec,
		FiberGrams:      e.FiberGrams,
		Mood:            string(e.Mood),
		Notes:           e.Notes,
		Score:           e.Score,
		InsertedAt:      e.CreatedAt,
	}
}

func rowToEntry(r entryRow) models.Entry {
	return models.Entry{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.EntryDate,
		DidPoop:     r.Pooped,
		DurationSec: r.DurationSeconds,
		FiberGrams:  r.FiberGrams,
		Mood:        models.Mood(r.Mood),
		Notes:       r.Notes,
		Score:       r.Score,
		CreatedAt:   r.InsertedAt,
	}
}

func achievementToRow(a models.Achievement, userID string) achievementRow {
	return achievementRow{
		AchievementID: a.ID,
		UserID:        userID,
		Title:         a.Title,
		EarnedAt:      a.UnlockedAt,
	}
}

func rowToAchievement(r achievementRow) models.Achievement {
	return models.Achievement{
		ID:         r.AchievementID,
		Title:      r.Title,
		UnlockedAt: r.EarnedAt,
	}
}
