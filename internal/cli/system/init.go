package system

import (
	"fmt"
	"os"

	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete the existing store before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, err := os.Stat(ctx.ConfigPath); err == nil {
			if ctx.Tracker != nil {
				if err := ctx.Tracker.Close(); err != nil {
					return fmt.Errorf("failed to close existing store: %w", err)
				}
			}
			if err := os.Remove(ctx.ConfigPath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", ctx.ConfigPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	provider := storage.New(ctx.ConfigPath)
	if err := provider.Init(); err != nil {
		return err
	}
	defer provider.Close()

	fmt.Printf("Initialized gutlog storage at: %s\n", ctx.ConfigPath)
	fmt.Println("Log your first movement with 'gutlog log'.")
	return nil
}
