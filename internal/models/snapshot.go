package models

import "time"

// Snapshot is the serialized shape of the local store: everything a
// session needs to resume is read from one snapshot at startup and the
// whole snapshot is rewritten after every mutation.
type Snapshot struct {
	Version      int           `json:"version"`
	Entries      []Entry       `json:"entries"`
	Achievements []Achievement `json:"achievements"`
	Streak       int           `json:"streak"`
	LastSyncAt   *time.Time    `json:"last_sync_at,omitempty"`
}
