package cloud

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/logger"
)

type WatchCmd struct {
	Every string `short:"e" help:"Sync interval (cron syntax or @every duration)." default:"@every 15m"`
}

// Run starts a long-lived process that pushes and pulls on a schedule
// until interrupted. Each cycle is best-effort: a failed sync is logged
// and the next tick tries again.
func (c *WatchCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(c.Every, func() {
		opCtx, cancel := context.WithTimeout(context.Background(), bulkSyncTimeout)
		defer cancel()

		if err := ctx.Tracker.SyncWithCloud(opCtx, userID); err != nil {
			logger.Warn("Scheduled push failed", "error", err)
			return
		}
		if err := ctx.Tracker.LoadFromCloud(opCtx, userID); err != nil {
			logger.Warn("Scheduled pull failed", "error", err)
			return
		}
		logger.Info("Scheduled sync completed",
			"entries", len(ctx.Tracker.Entries()),
			"streak", ctx.Tracker.Streak())
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", c.Every, err)
	}

	scheduler.Start()
	fmt.Printf("Watching: syncing %s (Ctrl-C to stop)\n", c.Every)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	fmt.Println("\nStopped.")
	return nil
}
