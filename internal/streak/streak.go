// Package streak computes the current run of consecutive qualifying days.
package streak

import (
	"sort"
	"time"

	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/utils"
)

// Current counts consecutive calendar days with a successful entry,
// ending at today or yesterday relative to now. A most-recent qualifying
// day older than yesterday means the run is broken and the streak is 0.
//
// The walk assumes dates are unique within the list (the store's
// replace-on-insert invariant); it stops at the first gap.
func Current(entries []models.Entry, now time.Time) int {
	var days []string
	for _, e := range entries {
		if e.DidPoop {
			days = append(days, e.Date)
		}
	}
	if len(days) == 0 {
		return 0
	}

	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	today := utils.DateOf(now)
	yesterday := utils.DateOf(now.AddDate(0, 0, -1))
	if days[0] != today && days[0] != yesterday {
		return 0
	}

	streak := 0
	expected := days[0]
	for _, day := range days {
		if day != expected {
			break
		}
		streak++
		prev, err := utils.PreviousDay(expected)
		if err != nil {
			break
		}
		expected = prev
	}
	return streak
}

// Now is Current evaluated against the wall clock.
func Now(entries []models.Entry) int {
	return Current(entries, time.Now())
}
