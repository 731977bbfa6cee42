package streak

import (
	"testing"
	"time"

	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/utils"
)

func entryOn(date string, didPoop bool) models.Entry {
	return models.Entry{ID: "e-" + date, Date: date, DidPoop: didPoop}
}

func daysAgo(now time.Time, n int) string {
	return utils.DateOf(now.AddDate(0, 0, -n))
}

func TestCurrentEmpty(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	t.Run("no entries", func(t *testing.T) {
		if got := Current(nil, now); got != 0 {
			t.Errorf("Current(nil) = %d, want 0", got)
		}
	})

	t.Run("only unsuccessful entries", func(t *testing.T) {
		entries := []models.Entry{
			entryOn(daysAgo(now, 0), false),
			entryOn(daysAgo(now, 1), false),
		}
		if got := Current(entries, now); got != 0 {
			t.Errorf("Current = %d, want 0", got)
		}
	})
}

func TestCurrentConsecutiveRun(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	entries := []models.Entry{
		entryOn(daysAgo(now, 0), true),
		entryOn(daysAgo(now, 1), true),
		entryOn(daysAgo(now, 2), true),
	}

	if got := Current(entries, now); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}

	t.Run("gap is not bridged", func(t *testing.T) {
		// An entry two days before the run (day 4) leaves a gap at day 3
		withGap := append(entries, entryOn(daysAgo(now, 4), true))
		if got := Current(withGap, now); got != 3 {
			t.Errorf("Current = %d, want 3 (gap must break the walk)", got)
		}
	})
}

func TestCurrentStartsYesterday(t *testing.T) {
	// A run ending yesterday still counts; today is not yet required.
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)
	entries := []models.Entry{
		entryOn(daysAgo(now, 1), true),
		entryOn(daysAgo(now, 2), true),
	}
	if got := Current(entries, now); got != 2 {
		t.Errorf("Current = %d, want 2", got)
	}
}

func TestCurrentStale(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

	t.Run("most recent three days ago", func(t *testing.T) {
		entries := []models.Entry{
			entryOn(daysAgo(now, 3), true),
			entryOn(daysAgo(now, 4), true),
		}
		if got := Current(entries, now); got != 0 {
			t.Errorf("Current = %d, want 0", got)
		}
	})

	t.Run("today unsuccessful, streak ended days ago", func(t *testing.T) {
		entries := []models.Entry{
			entryOn(daysAgo(now, 0), false),
			entryOn(daysAgo(now, 3), true),
		}
		if got := Current(entries, now); got != 0 {
			t.Errorf("Current = %d, want 0", got)
		}
	})
}

func TestCurrentUnsorted(t *testing.T) {
	// Input order must not matter
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	entries := []models.Entry{
		entryOn(daysAgo(now, 2), true),
		entryOn(daysAgo(now, 0), true),
		entryOn(daysAgo(now, 1), true),
	}
	if got := Current(entries, now); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}
}

func TestCurrentMixedOutcomes(t *testing.T) {
	// Unsuccessful days do not extend the run but also must not be
	// counted - only didPoop days qualify.
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	entries := []models.Entry{
		entryOn(daysAgo(now, 0), true),
		entryOn(daysAgo(now, 1), false),
		entryOn(daysAgo(now, 2), true),
	}
	if got := Current(entries, now); got != 1 {
		t.Errorf("Current = %d, want 1", got)
	}
}
