package entries

import (
	"fmt"

	"github.com/hfletcher/gutlog/internal/cli"
)

type ListCmd struct {
	Limit int  `short:"l" help:"Maximum entries to show." default:"14"`
	All   bool `short:"a" help:"Show all entries."`
	IDs   bool `help:"Show entry ids (for edit/delete)."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	entries := ctx.Tracker.Entries()
	if len(entries) == 0 {
		fmt.Println("No entries yet. Log your first with 'gutlog log'.")
		return nil
	}

	limit := c.Limit
	if c.All || limit > len(entries) {
		limit = len(entries)
	}

	for _, e := range entries[:limit] {
		prefix := ""
		if c.IDs {
			prefix = e.ID + "  "
		}
		if !e.DidPoop {
			fmt.Printf("%s%s  —  no movement\n", prefix, e.Date)
			continue
		}
		line := fmt.Sprintf("%s%s  %s  score %3d  %dm%02ds  %2dg fiber",
			prefix, e.Date, cli.MoodEmoji(e.Mood), e.Score, e.DurationSec/60, e.DurationSec%60, e.FiberGrams)
		if e.Notes != "" {
			line += "  · " + e.Notes
		}
		fmt.Println(line)
	}

	if limit < len(entries) {
		fmt.Printf("... and %d more (use --all)\n", len(entries)-limit)
	}
	return nil
}
