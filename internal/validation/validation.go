// Package validation holds the CLI's input range checks. The model
// itself does not enforce these; they only guard what users type.
package validation

import (
	"fmt"

	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/utils"
)

const (
	// Durations as captured by the UI: 1-20 minutes
	MinDurationSec = 60
	MaxDurationSec = 1200

	MinFiberGrams = 0
	MaxFiberGrams = 50
)

// ValidMood reports whether the string is a known mood.
func ValidMood(mood string) bool {
	switch models.Mood(mood) {
	case models.MoodHappy, models.MoodNeutral, models.MoodSad:
		return true
	}
	return false
}

// ValidateEntryInput checks user-supplied entry fields. Duration and
// fiber are only checked when the movement happened; they carry no
// meaning otherwise.
func ValidateEntryInput(date string, didPoop bool, durationSec, fiberGrams int, mood string) error {
	if !utils.ValidDate(date) {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}

	if !didPoop {
		return nil
	}

	if durationSec < MinDurationSec || durationSec > MaxDurationSec {
		return fmt.Errorf("duration must be between %d and %d seconds", MinDurationSec, MaxDurationSec)
	}
	if fiberGrams < MinFiberGrams || fiberGrams > MaxFiberGrams {
		return fmt.Errorf("fiber must be between %d and %d grams", MinFiberGrams, MaxFiberGrams)
	}
	if !ValidMood(mood) {
		return fmt.Errorf("invalid mood %q (expected happy, neutral or sad)", mood)
	}

	return nil
}
