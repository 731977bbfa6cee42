package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/hfletcher/gutlog/internal/billing"
	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/cli/account"
	"github.com/hfletcher/gutlog/internal/cli/backups"
	"github.com/hfletcher/gutlog/internal/cli/cloud"
	"github.com/hfletcher/gutlog/internal/cli/entries"
	"github.com/hfletcher/gutlog/internal/cli/system"
	"github.com/hfletcher/gutlog/internal/cloudsync"
	"github.com/hfletcher/gutlog/internal/constants"
	apperrors "github.com/hfletcher/gutlog/internal/errors"
	"github.com/hfletcher/gutlog/internal/logger"
	"github.com/hfletcher/gutlog/internal/storage"
	"github.com/hfletcher/gutlog/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path. Use a .db extension for SQLite, anything else for JSON." default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init         system.InitCmd          `cmd:"" help:"Initialize gutlog storage."`
	Log          entries.LogCmd          `cmd:"" help:"Log today's movement."`
	List         entries.ListCmd         `cmd:"" help:"List recent entries."`
	Today        entries.TodayCmd        `cmd:"" help:"Show today's entry and streak." default:"1"`
	Edit         entries.EditCmd         `cmd:"" help:"Edit an existing entry."`
	Delete       entries.DeleteCmd       `cmd:"" help:"Delete an entry."`
	Streak       entries.StreakCmd       `cmd:"" help:"Show your current streak."`
	Achievements entries.AchievementsCmd `cmd:"" help:"Show achievement progress."`
	Sync         cloud.SyncCmd           `cmd:"" help:"Push local data to the cloud."`
	Pull         cloud.PullCmd           `cmd:"" help:"Merge cloud data into the local store."`
	Watch        cloud.WatchCmd          `cmd:"" help:"Sync periodically until interrupted."`
	Stats        cloud.StatsCmd          `cmd:"" help:"Show anonymized global statistics."`
	Login        account.LoginCmd        `cmd:"" help:"Sign in with an access token."`
	Logout       account.LogoutCmd       `cmd:"" help:"Sign out and forget the stored token."`
	Whoami       account.WhoamiCmd       `cmd:"" help:"Show the signed-in account."`
	Premium      account.PremiumCmd      `cmd:"" help:"Manage your subscription."`
	Backup       backups.BackupCmd       `cmd:"" help:"Manage store backups."`
	Clear        system.ClearCmd         `cmd:"" help:"Delete all local data."`
	Doctor       system.DoctorCmd        `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily gut-health tracker with streaks, scores, and cloud sync"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath := storage.ExpandPath(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	var remote *cloudsync.Client
	if dsn := os.Getenv(constants.EnvRemoteDSN); dsn != "" {
		remote = cloudsync.New(dsn)
	}

	appCtx := &cli.Context{
		Remote:     remote,
		Billing:    billing.New(os.Getenv(constants.EnvBillingURL), os.Getenv(constants.EnvBillingKey)),
		ConfigPath: configPath,
		Debug:      CLI.Debug,
	}

	// Commands that manage the store themselves or never touch it run
	// without a loaded tracker, so they work before 'gutlog init'.
	needsTracker := true
	if ctx.Selected() != nil {
		switch ctx.Selected().Name {
		case "init", "login", "logout", "whoami", "doctor":
			needsTracker = false
		}
	}
	if needsTracker {
		var trackerRemote store.Remote
		if remote != nil {
			trackerRemote = remote
		}
		tracker, err := store.New(storage.New(configPath), trackerRemote)
		if err != nil {
			apperrors.Fatal(err)
		}
		appCtx.Tracker = tracker
	}

	err := ctx.Run(appCtx)

	// Drain pending cloud pushes before the process exits.
	if appCtx.Tracker != nil {
		appCtx.Tracker.Close()
	}
	if remote != nil {
		remote.Close()
	}

	apperrors.Fatal(err)
}
