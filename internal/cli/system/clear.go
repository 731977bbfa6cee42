package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/hfletcher/gutlog/internal/cli"
)

type ClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

// Run wipes all local entries and achievements. Cloud copies are left
// alone; a later pull brings them back.
func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Delete all local data?").
				Description(fmt.Sprintf("This removes %d entries and %d achievements from this device only.",
					len(ctx.Tracker.Entries()), len(ctx.Tracker.Achievements()))).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Tracker.ClearAllData(); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	fmt.Println("✓ Local data cleared. Cloud data is untouched; run 'gutlog pull' to restore it.")
	return nil
}
