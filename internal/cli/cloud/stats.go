package cloud

import (
	"context"
	"fmt"
	"sort"

	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/cloudsync"
)

type StatsCmd struct{}

// Run prints the global report scanned from all users' remote entries.
func (c *StatsCmd) Run(ctx *cli.Context) error {
	if ctx.Remote == nil {
		return cloudsync.ErrNoRemote
	}

	opCtx, cancel := context.WithTimeout(context.Background(), bulkSyncTimeout)
	defer cancel()

	report, err := ctx.Remote.GlobalReport(opCtx)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	fmt.Printf("Users            %d\n", report.TotalUsers)
	fmt.Printf("Entries          %d (%d successful)\n", report.TotalEntries, report.TotalPoops)
	fmt.Printf("Average streak   %.1f days\n", report.AvgStreak)
	fmt.Printf("Longest streak   %d days\n", report.MaxStreak)

	fmt.Println("\nMoods:")
	printCounts(report.MoodCounts)
	fmt.Println("\nTime of day:")
	printCounts(report.HourCounts)
	return nil
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-10s %d\n", k, counts[k])
	}
}
