package entries

import (
	"fmt"

	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/scoring"
	"github.com/hfletcher/gutlog/internal/validation"
)

type EditCmd struct {
	ID       string  `arg:"" help:"Entry id to edit (see 'gutlog list --ids')."`
	Duration *int    `short:"d" help:"New duration in seconds."`
	Fiber    *int    `short:"f" help:"New fiber intake in grams."`
	Mood     string  `short:"m" help:"New mood (happy|neutral|sad)."`
	Notes    *string `short:"n" help:"New notes."`
	Rescore  bool    `help:"Recompute the score from the edited fields." default:"true" negatable:""`
}

func (c *EditCmd) Validate() error {
	if c.Mood != "" && !validation.ValidMood(c.Mood) {
		return fmt.Errorf("invalid mood %q (expected happy, neutral or sad)", c.Mood)
	}
	return nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	patch := models.EntryPatch{
		DurationSec: c.Duration,
		FiberGrams:  c.Fiber,
		Notes:       c.Notes,
	}
	if c.Mood != "" {
		mood := models.Mood(c.Mood)
		patch.Mood = &mood
	}

	// The cached score is stale after an edit unless explicitly
	// recomputed; --rescore (the default) folds the new values in.
	if c.Rescore {
		current, ok := findEntry(ctx, c.ID)
		if !ok {
			fmt.Println("No entry with that id.")
			return nil
		}
		next := patch.Apply(current)
		score := scoring.ScoreEntry(next)
		patch.Score = &score
	}

	updated, ok, err := ctx.Tracker.UpdateEntry(c.ID, patch, ctx.UserID())
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if !ok {
		fmt.Println("No entry with that id.")
		return nil
	}

	fmt.Printf("✓ Updated %s (score %d)\n", updated.Date, updated.Score)
	return nil
}

func findEntry(ctx *cli.Context, id string) (models.Entry, bool) {
	for _, e := range ctx.Tracker.Entries() {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}
