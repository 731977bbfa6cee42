package entries

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/hfletcher/gutlog/internal/cli"
	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/utils"
	"github.com/hfletcher/gutlog/internal/validation"
)

type LogCmd struct {
	Date        string `short:"D" help:"Date to log (YYYY-MM-DD)." default:""`
	No          bool   `help:"Log a no-movement day."`
	Duration    int    `short:"d" help:"Duration in seconds (60-1200)." default:"300"`
	Fiber       int    `short:"f" help:"Fiber intake in grams (0-50)." default:"0"`
	Mood        string `short:"m" help:"Mood (happy|neutral|sad)." default:"neutral"`
	Notes       string `short:"n" help:"Free-text notes."`
	Interactive bool   `short:"i" help:"Fill in the entry interactively."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	if c.Date == "" {
		c.Date = utils.Today()
	}

	if c.Interactive {
		if err := c.runForm(); err != nil {
			return err
		}
	}

	didPoop := !c.No
	if err := validation.ValidateEntryInput(c.Date, didPoop, c.Duration, c.Fiber, c.Mood); err != nil {
		return err
	}

	_, existed := ctx.Tracker.EntryForDate(c.Date)

	entry := models.Entry{
		Date:        c.Date,
		DidPoop:     didPoop,
		DurationSec: c.Duration,
		FiberGrams:  c.Fiber,
		Mood:        models.Mood(c.Mood),
		Notes:       c.Notes,
	}

	added, err := ctx.Tracker.AddEntry(entry, ctx.UserID())
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	if existed {
		fmt.Printf("✓ Replaced entry for %s (score %d)\n", added.Date, added.Score)
	} else {
		fmt.Printf("✓ Logged %s (score %d)\n", added.Date, added.Score)
	}
	if s := ctx.Tracker.Streak(); s > 1 {
		fmt.Printf("🔥 %d-day streak\n", s)
	}

	ctx.CheckAchievements()
	return nil
}

func (c *LogCmd) runForm() error {
	didPoop := !c.No
	duration := strconv.Itoa(c.Duration)
	fiber := strconv.Itoa(c.Fiber)
	mood := models.Mood(c.Mood)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Did you poop today?").
				Value(&didPoop),
			huh.NewInput().
				Title("Duration (seconds)").
				Value(&duration).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					if n < validation.MinDurationSec || n > validation.MaxDurationSec {
						return fmt.Errorf("between %d and %d", validation.MinDurationSec, validation.MaxDurationSec)
					}
					return nil
				}),
			huh.NewInput().
				Title("Fiber intake (grams)").
				Value(&fiber).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					if n < validation.MinFiberGrams || n > validation.MaxFiberGrams {
						return fmt.Errorf("between %d and %d", validation.MinFiberGrams, validation.MaxFiberGrams)
					}
					return nil
				}),
			huh.NewSelect[models.Mood]().
				Title("How did it feel?").
				Options(
					huh.NewOption("😊 Happy", models.MoodHappy),
					huh.NewOption("😐 Neutral", models.MoodNeutral),
					huh.NewOption("😣 Sad", models.MoodSad),
				).
				Value(&mood),
			huh.NewText().
				Title("Notes").
				Value(&c.Notes),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	c.No = !didPoop
	c.Duration, _ = strconv.Atoi(duration)
	c.Fiber, _ = strconv.Atoi(fiber)
	c.Mood = string(mood)
	return nil
}
