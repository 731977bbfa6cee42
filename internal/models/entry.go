package models

import "time"

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
)

// Entry represents a single day's logged movement. At most one entry
// exists per calendar date per user; inserting a second entry for a date
// replaces the first.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Date        string    `json:"date"` // YYYY-MM-DD format
	DidPoop     bool      `json:"did_poop"`
	DurationSec int       `json:"duration_sec"`
	FiberGrams  int       `json:"fiber_grams"`
	Mood        Mood      `json:"mood"`
	Notes       string    `json:"notes,omitempty"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntryPatch carries partial updates for an existing entry. Nil fields
// are left untouched. Score is included because edits do not recompute
// it implicitly; the caller decides whether to re-score.
type EntryPatch struct {
	DidPoop     *bool   `json:"did_poop,omitempty"`
	DurationSec *int    `json:"duration_sec,omitempty"`
	FiberGrams  *int    `json:"fiber_grams,omitempty"`
	Mood        *Mood   `json:"mood,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Score       *int    `json:"score,omitempty"`
}

// Apply merges the patch into a copy of the given entry.
func (p EntryPatch) Apply(e Entry) Entry {
	if p.DidPoop != nil {
		e.DidPoop = *p.DidPoop
	}
	if p.DurationSec != nil {
		e.DurationSec = *p.DurationSec
	}
	if p.FiberGrams != nil {
		e.FiberGrams = *p.FiberGrams
	}
	if p.Mood != nil {
		e.Mood = *p.Mood
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	if p.Score != nil {
		e.Score = *p.Score
	}
	return e
}
