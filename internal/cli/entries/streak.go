package entries

import (
	"fmt"

	"github.com/hfletcher/gutlog/internal/cli"
)

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	s := ctx.Tracker.Streak()
	switch s {
	case 0:
		fmt.Println("No active streak. Log today to start one.")
	case 1:
		fmt.Println("🔥 1-day streak. Keep it going!")
	default:
		fmt.Printf("🔥 %d-day streak\n", s)
	}
	return nil
}
