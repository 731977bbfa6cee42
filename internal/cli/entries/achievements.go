package entries

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hfletcher/gutlog/internal/achievements"
	"github.com/hfletcher/gutlog/internal/cli"
)

var (
	unlockedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	// Persist anything newly earned before rendering
	ctx.CheckAchievements()

	entries := ctx.Tracker.Entries()
	unlocked := make(map[string]string)
	for _, a := range ctx.Tracker.Achievements() {
		unlocked[a.ID] = a.UnlockedAt.Format("2006-01-02")
	}

	for _, def := range achievements.Catalog() {
		if when, ok := unlocked[def.ID]; ok {
			fmt.Println(unlockedStyle.Render(fmt.Sprintf("🏆 %-18s unlocked %s", def.Title, when)))
			continue
		}
		progress := def.Progress(entries)
		if progress > def.Target {
			progress = def.Target
		}
		fmt.Println(lockedStyle.Render(fmt.Sprintf("🔒 %-18s %d/%d — %s", def.Title, progress, def.Target, def.Description)))
	}
	return nil
}
