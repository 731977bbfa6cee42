package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/hfletcher/gutlog/internal/cli"
)

const bulkSyncTimeout = 60 * time.Second

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(context.Background(), bulkSyncTimeout)
	defer cancel()

	if err := ctx.Tracker.SyncWithCloud(opCtx, userID); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("✓ Pushed %d entries and %d achievements\n",
		len(ctx.Tracker.Entries()), len(ctx.Tracker.Achievements()))
	return nil
}

type PullCmd struct{}

func (c *PullCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(context.Background(), bulkSyncTimeout)
	defer cancel()

	if err := ctx.Tracker.LoadFromCloud(opCtx, userID); err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}

	fmt.Printf("✓ Merged cloud data: %d entries, %d achievements, %d-day streak\n",
		len(ctx.Tracker.Entries()), len(ctx.Tracker.Achievements()), ctx.Tracker.Streak())

	// A pull can complete milestones detected on another device's data
	ctx.CheckAchievements()
	return nil
}
