package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/hfletcher/gutlog/internal/backup"
	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/constants"
	"github.com/hfletcher/gutlog/internal/session"
	"github.com/hfletcher/gutlog/internal/storage"
)

var processesFunc = ps.Processes

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: config directory exists and is writable
	if err := checkConfigDir(ctx); err != nil {
		fmt.Printf("❌ Config directory: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Config directory: OK\n")
	}

	// Check 2: store loads
	if err := checkStoreLoads(ctx); err != nil {
		fmt.Printf("❌ Store loads: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store loads: OK\n")
	}

	// Check 3: OS keyring (warning only, anonymous use works without it)
	if session.KeyringAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable, sign-in will not work on this machine\n")
	}

	// Check 4: remote reachable (skipped when not configured)
	if ctx.Remote == nil {
		fmt.Printf("⊘ Remote reachable: SKIPPED (no remote configured)\n")
	} else if err := checkRemote(ctx); err != nil {
		fmt.Printf("❌ Remote reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Remote reachable: OK\n")
	}

	// Check 5: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 6: no duplicate watch process
	if err := checkDuplicateWatch(); err != nil {
		fmt.Printf("⚠ Watch processes: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Watch processes: OK\n")
	}

	// Check 7: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkConfigDir(ctx *cli.Context) error {
	dir := filepath.Dir(ctx.ConfigPath)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("config directory missing, run 'gutlog init': %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, nil, 0600); err != nil {
		return fmt.Errorf("config directory is not writable: %w", err)
	}
	return os.Remove(probe)
}

func checkStoreLoads(ctx *cli.Context) error {
	provider := storage.New(ctx.ConfigPath)
	defer provider.Close()
	snap, err := provider.Load()
	if err != nil {
		return err
	}
	if snap.Version > constants.StoreVersion {
		return fmt.Errorf("store version %d is newer than this build supports (%d)",
			snap.Version, constants.StoreVersion)
	}
	return nil
}

func checkRemote(ctx *cli.Context) error {
	opCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ctx.Remote.Open(opCtx); err != nil {
		return err
	}
	return ctx.Remote.Ping(opCtx)
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.ConfigPath)
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'gutlog backup create'")
	}
	return nil
}

// checkDuplicateWatch looks for more than one gutlog process, which
// usually means a forgotten 'gutlog watch' competing for the store.
func checkDuplicateWatch() error {
	procs, err := processesFunc()
	if err != nil {
		return fmt.Errorf("could not enumerate processes: %w", err)
	}
	count := 0
	for _, p := range procs {
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("found %d running gutlog processes, a stale 'gutlog watch' may be holding the store", count)
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2024 {
		return fmt.Errorf("system clock reads %s, which is implausibly old", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset %d seconds is out of range", offset)
	}
	return nil
}
