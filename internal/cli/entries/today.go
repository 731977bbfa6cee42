package entries

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/utils"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	today := utils.Today()
	entry, ok := ctx.Tracker.EntryForDate(today)
	if !ok {
		fmt.Println(mutedStyle.Render("Nothing logged for " + today + " yet."))
		return nil
	}

	var body string
	if entry.DidPoop {
		body = fmt.Sprintf("%s\n\nScore    %d/100\nTime     %dm%02ds\nFiber    %dg\nMood     %s %s",
			titleStyle.Render(today),
			entry.Score,
			entry.DurationSec/60, entry.DurationSec%60,
			entry.FiberGrams,
			cli.MoodEmoji(entry.Mood), entry.Mood)
	} else {
		body = fmt.Sprintf("%s\n\nNo movement logged.", titleStyle.Render(today))
	}
	if entry.Notes != "" {
		body += "\n\n" + mutedStyle.Render(entry.Notes)
	}
	if s := ctx.Tracker.Streak(); s > 0 {
		body += fmt.Sprintf("\n\n🔥 %d-day streak", s)
	}

	fmt.Println(cardStyle.Render(body))
	return nil
}
