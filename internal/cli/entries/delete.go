package entries

import (
	"fmt"

	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/utils"
)

type DeleteCmd struct {
	ID   string `arg:"" optional:"" help:"Entry id to delete."`
	Date string `short:"D" help:"Delete the entry for a date (YYYY-MM-DD) instead."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	id := c.ID
	if id == "" {
		if c.Date == "" {
			c.Date = utils.Today()
		}
		entry, ok := ctx.Tracker.EntryForDate(c.Date)
		if !ok {
			fmt.Printf("No entry for %s.\n", c.Date)
			return nil
		}
		id = entry.ID
	}

	if err := ctx.Tracker.DeleteEntry(id, ctx.UserID()); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	fmt.Println("✓ Entry deleted")
	return nil
}
