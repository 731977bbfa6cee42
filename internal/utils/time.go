package utils

import (
	"fmt"
	"time"

	"github.com/hfletcher/gutlog/internal/constants"
)

// Today returns the current date string (YYYY-MM-DD) in local wall-clock
// time. Date boundaries follow the evaluator's timezone; two users in
// different timezones may disagree on "today" and that is accepted.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// DateOf formats a time as a date string (YYYY-MM-DD) in its own location.
func DateOf(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a date string (YYYY-MM-DD) at local midnight.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// PreviousDay returns the date string one calendar day before the given one.
func PreviousDay(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(constants.DateFormat), nil
}

// ValidDate reports whether the string is a well-formed YYYY-MM-DD date.
func ValidDate(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}
