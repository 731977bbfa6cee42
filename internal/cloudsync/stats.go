package cloudsync

import (
	"context"
	"fmt"
	"time"

	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/streak"
)

// Report holds the global aggregates scanned from all users' entries.
// Read-only reporting; not part of the sync path.
type Report struct {
	TotalUsers   int
	TotalEntries int
	TotalPoops   int
	MoodCounts   map[string]int
	HourCounts   map[string]int // morning/afternoon/evening/night, from inserted_at
	AvgStreak    float64
	MaxStreak    int
}

func bucketForHour(h int) string {
	switch {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 22:
		return "evening"
	default:
		return "night"
	}
}

// GlobalReport scans every user's entries and produces global counts:
// totals, mood distribution, time-of-day distribution and per-user
// streak stats. Streaks are recomputed here with the same calculator the
// client uses.
func (c *Client) GlobalReport(ctx context.Context) (Report, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		MoodCounts: make(map[string]int),
		HourCounts: make(map[string]int),
	}

	rows, err := db.QueryContext(ctx, `
SELECT id, user_id, entry_date, pooped, mood, inserted_at
FROM gut_entries`)
	if err != nil {
		return Report{}, fmt.Errorf("failed to scan entries for report: %w", err)
	}
	defer rows.Close()

	byUser := make(map[string][]models.Entry)
	for rows.Next() {
		var id, userID, date, mood string
		var pooped bool
		var insertedAt time.Time
		if err := rows.Scan(&id, &userID, &date, &pooped, &mood, &insertedAt); err != nil {
			return Report{}, fmt.Errorf("failed to scan report row: %w", err)
		}

		report.TotalEntries++
		if pooped {
			report.TotalPoops++
			report.MoodCounts[mood]++
			report.HourCounts[bucketForHour(insertedAt.Hour())]++
		}
		byUser[userID] = append(byUser[userID], models.Entry{ID: id, Date: date, DidPoop: pooped})
	}
	if err := rows.Err(); err != nil {
		return Report{}, err
	}

	report.TotalUsers = len(byUser)

	now := time.Now()
	total := 0
	for _, entries := range byUser {
		s := streak.Current(entries, now)
		total += s
		if s > report.MaxStreak {
			report.MaxStreak = s
		}
	}
	if report.TotalUsers > 0 {
		report.AvgStreak = float64(total) / float64(report.TotalUsers)
	}

	return report, nil
}
