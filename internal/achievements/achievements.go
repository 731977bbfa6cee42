// Package achievements holds the static milestone catalog and the
// evaluator that decides which milestones are newly earned.
//
// Progress is always recomputed from the full entry list rather than
// maintained incrementally; the lists are small and recomputation cannot
// drift.
package achievements

import (
	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/streak"
)

// Definition describes one unlockable milestone. Progress owns the
// counting rule; definitions are heterogeneous (entry counts, streak
// lengths, score thresholds).
type Definition struct {
	ID          string
	Title       string
	Description string
	Target      int
	Progress    func(entries []models.Entry) int
}

func countWhere(entries []models.Entry, pred func(models.Entry) bool) int {
	n := 0
	for _, e := range entries {
		if pred(e) {
			n++
		}
	}
	return n
}

var catalog = []Definition{
	{
		ID:          "first_flush",
		Title:       "First Flush",
		Description: "Log your first successful movement.",
		Target:      1,
		Progress: func(entries []models.Entry) int {
			return countWhere(entries, func(e models.Entry) bool { return e.DidPoop })
		},
	},
	{
		ID:          "streak_3",
		Title:       "Regularity Rookie",
		Description: "Keep a 3-day streak going.",
		Target:      3,
		Progress:    streak.Now,
	},
	{
		ID:          "streak_7",
		Title:       "Week Warrior",
		Description: "A full week without missing a day.",
		Target:      7,
		Progress:    streak.Now,
	},
	{
		ID:          "streak_30",
		Title:       "Monthly Master",
		Description: "Thirty consecutive days.",
		Target:      30,
		Progress:    streak.Now,
	},
	{
		ID:          "fiber_fanatic",
		Title:       "Fiber Fanatic",
		Description: "Ten days with at least 25g of fiber.",
		Target:      10,
		Progress: func(entries []models.Entry) int {
			return countWhere(entries, func(e models.Entry) bool { return e.FiberGrams >= 25 })
		},
	},
	{
		ID:          "perfect_score",
		Title:       "Flawless Flush",
		Description: "Log a perfect 100-score movement.",
		Target:      1,
		Progress: func(entries []models.Entry) int {
			return countWhere(entries, func(e models.Entry) bool { return e.Score == 100 })
		},
	},
	{
		ID:          "early_bird",
		Title:       "Early Bird",
		Description: "A morning regular.",
		Target:      20,
		// Entries carry no time of day; approximated by total volume.
		Progress: func(entries []models.Entry) int {
			return countWhere(entries, func(e models.Entry) bool { return e.DidPoop })
		},
	},
}

// Catalog returns the static achievement definitions.
func Catalog() []Definition {
	return catalog
}

// Lookup returns the definition with the given id.
func Lookup(id string) (Definition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Evaluate returns the definitions that are newly earned: progress has
// reached the target and no achievement with that id is unlocked yet.
// Read-only; persisting the unlocks is the caller's responsibility.
func Evaluate(entries []models.Entry, unlocked []models.Achievement) []Definition {
	have := make(map[string]struct{}, len(unlocked))
	for _, a := range unlocked {
		have[a.ID] = struct{}{}
	}

	var earned []Definition
	for _, def := range catalog {
		if _, ok := have[def.ID]; ok {
			continue
		}
		if def.Progress(entries) >= def.Target {
			earned = append(earned, def)
		}
	}
	return earned
}
