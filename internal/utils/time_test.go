package utils

import (
	"testing"
	"time"
)

func TestPreviousDay(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-03-15", "2026-03-14"},
		{"2026-03-01", "2026-02-28"},
		{"2024-03-01", "2024-02-29"},
		{"2026-01-01", "2025-12-31"},
	}
	for _, tc := range cases {
		got, err := PreviousDay(tc.date)
		if err != nil {
			t.Fatalf("PreviousDay(%q): %v", tc.date, err)
		}
		if got != tc.want {
			t.Errorf("PreviousDay(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2026 || got.Month() != time.August || got.Day() != 31 {
		t.Errorf("ParseDate returned %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("expected local midnight, got %v", got)
	}

	if _, err := ParseDate("31/08/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2026-08-31") {
		t.Error("well-formed date rejected")
	}
	for _, bad := range []string{"2026-13-01", "2026-02-30", "yesterday", ""} {
		if ValidDate(bad) {
			t.Errorf("ValidDate(%q) = true, want false", bad)
		}
	}
}
