package backups

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/hfletcher/gutlog/internal/backup"
	"github.com/hfletcher/gutlog/internal/cli"
)

type BackupCmd struct {
	Create  CreateCmd  `cmd:"" default:"1" help:"Create a backup of the local store."`
	List    ListCmd    `cmd:"" help:"List available backups."`
	Restore RestoreCmd `cmd:"" help:"Restore the store from a backup."`
}

type CreateCmd struct{}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Tracker.ConfigPath())
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("✓ Backup created: %s\n", path)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Tracker.ConfigPath())
	infos, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No backups yet. Run 'gutlog backup create' to make one.")
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%s  %6.1f KB  %s\n",
			info.Timestamp.Format("2006-01-02 15:04:05"),
			float64(info.Size)/1024,
			filepath.Base(info.Path))
	}
	return nil
}

type RestoreCmd struct {
	Backup string `arg:"" optional:"" help:"Backup file to restore. Defaults to the most recent."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Tracker.ConfigPath())

	path := c.Backup
	if path == "" {
		infos, err := mgr.ListBackups()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			return fmt.Errorf("no backups found")
		}
		path = infos[0].Path
	} else if filepath.Dir(path) == "." {
		path = filepath.Join(mgr.GetBackupDir(), path)
	}

	if !c.Yes {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Restore %s?", filepath.Base(path))).
				Description("Your current store will be backed up first, then replaced.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	// Release the store file before overwriting it
	if err := ctx.Tracker.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}

	if err := mgr.RestoreBackup(path); err != nil {
		return err
	}
	fmt.Printf("✓ Restored from %s\n", filepath.Base(path))
	return nil
}
