// Package store holds the session's authoritative local state: entries,
// achievements, streak and sync metadata. Local state is mutated under a
// lock and persisted before any network leg; per-record pushes run in
// the background and their failures never reach the caller.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hfletcher/gutlog/internal/cloudsync"
	"github.com/hfletcher/gutlog/internal/constants"
	"github.com/hfletcher/gutlog/internal/logger"
	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/scoring"
	"github.com/hfletcher/gutlog/internal/storage"
	"github.com/hfletcher/gutlog/internal/streak"
)

const pushTimeout = 10 * time.Second

// Remote is the subset of the cloud sync client the tracker needs.
type Remote interface {
	UpsertEntry(ctx context.Context, e models.Entry) error
	DeleteEntry(ctx context.Context, id, userID string) error
	UpsertAchievement(ctx context.Context, a models.Achievement, userID string) error
	FetchEntries(ctx context.Context, userID string) ([]models.Entry, error)
	FetchAchievements(ctx context.Context, userID string) ([]models.Achievement, error)
	PushAll(ctx context.Context, userID string, entries []models.Entry, achievements []models.Achievement) error
}

// Tracker is the session context object. Construct one per process with
// New, tear it down with Flush+Close.
type Tracker struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	provider storage.Provider
	remote   Remote // nil when running local-only

	entries      []models.Entry
	achievements []models.Achievement
	streak       int
	lastSyncAt   *time.Time
	syncing      bool
}

// New loads the persisted snapshot and returns a ready tracker. remote
// may be nil for anonymous/offline sessions.
func New(provider storage.Provider, remote Remote) (*Tracker, error) {
	snap, err := provider.Load()
	if err != nil {
		return nil, err
	}

	return &Tracker{
		provider:     provider,
		remote:       remote,
		entries:      snap.Entries,
		achievements: snap.Achievements,
		streak:       snap.Streak,
		lastSyncAt:   snap.LastSyncAt,
	}, nil
}

// persist must be called with the lock held.
func (t *Tracker) persist() error {
	return t.provider.Save(models.Snapshot{
		Version:      constants.StoreVersion,
		Entries:      t.entries,
		Achievements: t.achievements,
		Streak:       t.streak,
		LastSyncAt:   t.lastSyncAt,
	})
}

func sortEntries(entries []models.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// bestEffort runs a remote push in the background. Failures are logged
// and swallowed; local state is already persisted and stays
// authoritative.
func (t *Tracker) bestEffort(op string, fn func(ctx context.Context) error) {
	if t.remote == nil {
		return
	}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Warn("Cloud push failed, keeping local copy", "op", op, "error", err)
		}
	}()
}

// Flush waits for in-flight background pushes. Call before process exit.
func (t *Tracker) Flush() {
	t.wg.Wait()
}

// Close flushes pending pushes and closes the local store.
func (t *Tracker) Close() error {
	t.Flush()
	return t.provider.Close()
}

// AddEntry records a movement for a date. The score is computed here and
// cached on the entry; an existing entry for the same date is replaced,
// never duplicated. The streak is recomputed from the full list before
// the change is persisted and best-effort pushed.
func (t *Tracker) AddEntry(e models.Entry, userID string) (models.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.UserID = userID
	e.Score = scoring.ScoreEntry(e)

	t.mu.Lock()
	kept := t.entries[:0]
	for _, existing := range t.entries {
		if existing.Date != e.Date {
			kept = append(kept, existing)
		}
	}
	t.entries = append(kept, e)
	sortEntries(t.entries)
	t.streak = streak.Current(t.entries, time.Now())

	err := t.persist()
	t.mu.Unlock()
	if err != nil {
		return models.Entry{}, err
	}

	if userID != "" {
		pushed := e
		t.bestEffort("upsert entry", func(ctx context.Context) error {
			return t.remote.UpsertEntry(ctx, pushed)
		})
	}

	return e, nil
}

// UpdateEntry merges the patch into the entry with the given id. An
// unknown id is a silent no-op, not an error. The cached score is only
// recomputed if the patch carries one; edits do not re-score implicitly.
func (t *Tracker) UpdateEntry(id string, patch models.EntryPatch, userID string) (models.Entry, bool, error) {
	t.mu.Lock()
	idx := -1
	for i, e := range t.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		return models.Entry{}, false, nil
	}

	updated := patch.Apply(t.entries[idx])
	t.entries[idx] = updated

	err := t.persist()
	t.mu.Unlock()
	if err != nil {
		return models.Entry{}, false, err
	}

	if userID != "" {
		t.bestEffort("update entry", func(ctx context.Context) error {
			return t.remote.UpsertEntry(ctx, updated)
		})
	}

	return updated, true, nil
}

// DeleteEntry removes the entry with the given id locally and
// best-effort deletes it remotely. An unknown id is a silent no-op.
func (t *Tracker) DeleteEntry(id string, userID string) error {
	t.mu.Lock()
	found := false
	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	t.entries = kept

	var err error
	if found {
		err = t.persist()
	}
	t.mu.Unlock()
	if err != nil {
		return err
	}

	if found && userID != "" {
		t.bestEffort("delete entry", func(ctx context.Context) error {
			return t.remote.DeleteEntry(ctx, id, userID)
		})
	}

	return nil
}

// AddAchievement appends an unlock record. Idempotent by id: a second
// call with the same id keeps the first record and its unlock time.
func (t *Tracker) AddAchievement(a models.Achievement, userID string) error {
	if a.UnlockedAt.IsZero() {
		a.UnlockedAt = time.Now()
	}

	t.mu.Lock()
	for _, existing := range t.achievements {
		if existing.ID == a.ID {
			t.mu.Unlock()
			return nil
		}
	}
	t.achievements = append(t.achievements, a)

	err := t.persist()
	t.mu.Unlock()
	if err != nil {
		return err
	}

	if userID != "" {
		pushed := a
		t.bestEffort("upsert achievement", func(ctx context.Context) error {
			return t.remote.UpsertAchievement(ctx, pushed, userID)
		})
	}

	return nil
}

// ClearAllData wipes entries, achievements, streak and sync metadata
// locally. The remote store is deliberately untouched; this is a local
// reset, not an account deletion.
func (t *Tracker) ClearAllData() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = nil
	t.achievements = nil
	t.streak = 0
	t.lastSyncAt = nil

	return t.persist()
}

// SyncWithCloud bulk-pushes the full local state. Unlike the per-record
// pushes, a failure here is surfaced to the caller after the syncing
// flag is reset; the user asked for this sync explicitly.
func (t *Tracker) SyncWithCloud(ctx context.Context, userID string) error {
	if t.remote == nil {
		return cloudsync.ErrNoRemote
	}

	t.mu.Lock()
	t.syncing = true
	entries := append([]models.Entry(nil), t.entries...)
	achievements := append([]models.Achievement(nil), t.achievements...)
	t.mu.Unlock()

	err := t.remote.PushAll(ctx, userID, entries, achievements)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.syncing = false
	if err != nil {
		return err
	}

	now := time.Now()
	t.lastSyncAt = &now
	return t.persist()
}

// LoadFromCloud pulls the remote state, merges it with local state and
// replaces the session's copy with the merged result, recomputing the
// streak. Failures are surfaced after the syncing flag is reset.
func (t *Tracker) LoadFromCloud(ctx context.Context, userID string) error {
	if t.remote == nil {
		return cloudsync.ErrNoRemote
	}

	t.mu.Lock()
	t.syncing = true
	localEntries := append([]models.Entry(nil), t.entries...)
	localAchievements := append([]models.Achievement(nil), t.achievements...)
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.syncing = false
		t.mu.Unlock()
	}()

	cloudEntries, err := t.remote.FetchEntries(ctx, userID)
	if err != nil {
		return err
	}
	cloudAchievements, err := t.remote.FetchAchievements(ctx, userID)
	if err != nil {
		return err
	}

	mergedEntries := cloudsync.MergeEntries(localEntries, cloudEntries)
	mergedAchievements := cloudsync.MergeAchievements(localAchievements, cloudAchievements)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = mergedEntries
	t.achievements = mergedAchievements
	t.streak = streak.Current(t.entries, time.Now())
	now := time.Now()
	t.lastSyncAt = &now
	return t.persist()
}

// ConfigPath returns the backing store's file path.
func (t *Tracker) ConfigPath() string {
	return t.provider.GetConfigPath()
}

// Entries returns a copy of the entry list, newest date first.
func (t *Tracker) Entries() []models.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Entry(nil), t.entries...)
}

// EntryForDate returns the entry for the given date, if any.
func (t *Tracker) EntryForDate(date string) (models.Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.Date == date {
			return e, true
		}
	}
	return models.Entry{}, false
}

// Achievements returns a copy of the unlocked achievements.
func (t *Tracker) Achievements() []models.Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]models.Achievement(nil), t.achievements...)
}

// Streak returns the cached streak count.
func (t *Tracker) Streak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streak
}

// LastSyncAt returns the advisory timestamp of the last successful
// network operation. Display only; never used for conflict resolution.
func (t *Tracker) LastSyncAt() *time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSyncAt
}

// Syncing reports whether a bulk sync is in flight.
func (t *Tracker) Syncing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.syncing
}
