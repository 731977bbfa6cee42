package models

import "time"

// Achievement records a single unlocked milestone. Immutable once
// created; the unlock time only ever moves earlier, when a cloud record
// proves another device detected it first.
type Achievement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
