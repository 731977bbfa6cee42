package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/storage"
	"github.com/hfletcher/gutlog/internal/utils"
)

// fakeRemote records calls and can be told to fail.
type fakeRemote struct {
	mu                sync.Mutex
	failPush          bool
	failFetch         bool
	entries           map[string]models.Entry
	achievements      map[string]models.Achievement
	upsertCalls       int
	deleteCalls       int
	pushAllCalls      int
	cloudEntries      []models.Entry
	cloudAchievements []models.Achievement
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		entries:      make(map[string]models.Entry),
		achievements: make(map[string]models.Achievement),
	}
}

func (f *fakeRemote) UpsertEntry(_ context.Context, e models.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.failPush {
		return errors.New("network down")
	}
	f.entries[e.ID] = e
	return nil
}

func (f *fakeRemote) DeleteEntry(_ context.Context, id, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.failPush {
		return errors.New("network down")
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeRemote) UpsertAchievement(_ context.Context, a models.Achievement, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPush {
		return errors.New("network down")
	}
	f.achievements[a.ID] = a
	return nil
}

func (f *fakeRemote) FetchEntries(_ context.Context, _ string) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch {
		return nil, errors.New("network down")
	}
	return append([]models.Entry(nil), f.cloudEntries...), nil
}

func (f *fakeRemote) FetchAchievements(_ context.Context, _ string) ([]models.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch {
		return nil, errors.New("network down")
	}
	return append([]models.Achievement(nil), f.cloudAchievements...), nil
}

func (f *fakeRemote) PushAll(_ context.Context, _ string, entries []models.Entry, achievements []models.Achievement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushAllCalls++
	if f.failPush {
		return errors.New("network down")
	}
	for _, e := range entries {
		f.entries[e.ID] = e
	}
	for _, a := range achievements {
		f.achievements[a.ID] = a
	}
	return nil
}

func newTestTracker(t *testing.T, remote Remote) *Tracker {
	t.Helper()
	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "gutlog.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	tracker, err := New(provider, remote)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { tracker.Close() })
	return tracker
}

func TestAddEntryComputesScore(t *testing.T) {
	tracker := newTestTracker(t, nil)

	// The end-to-end case: a neutral 150s/30g entry lands in the 60-90
	// band and becomes streak 1 when its date is today.
	added, err := tracker.AddEntry(models.Entry{
		Date:        utils.Today(),
		DidPoop:     true,
		DurationSec: 150,
		FiberGrams:  30,
		Mood:        models.MoodNeutral,
	}, "")
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	if added.ID == "" {
		t.Error("AddEntry did not assign an id")
	}
	if added.Score < 60 || added.Score > 90 {
		t.Errorf("score = %d, want in [60,90]", added.Score)
	}
	if got := tracker.Streak(); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestAddEntryReplacesSameDate(t *testing.T) {
	tracker := newTestTracker(t, nil)
	date := utils.Today()

	first, err := tracker.AddEntry(models.Entry{Date: date, DidPoop: true, DurationSec: 120, FiberGrams: 40, Mood: models.MoodHappy}, "")
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}
	second, err := tracker.AddEntry(models.Entry{Date: date, DidPoop: true, DurationSec: 600, FiberGrams: 5, Mood: models.MoodSad}, "")
	if err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	entries := tracker.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1 (same-date insert must replace)", len(entries))
	}
	if entries[0].ID != second.ID || entries[0].ID == first.ID {
		t.Error("later entry did not win the date slot")
	}
}

func TestAddEntryPersists(t *testing.T) {
	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "gutlog.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	tracker, err := New(provider, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := tracker.AddEntry(models.Entry{Date: "2024-01-01", DidPoop: true, DurationSec: 100, Mood: models.MoodHappy}, ""); err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	// A second session over the same file sees the entry
	reopened, err := New(provider, nil)
	if err != nil {
		t.Fatalf("New() after restart failed: %v", err)
	}
	if len(reopened.Entries()) != 1 {
		t.Errorf("entries after restart = %d, want 1", len(reopened.Entries()))
	}
}

func TestAddEntryBestEffortPush(t *testing.T) {
	t.Run("push reaches the remote when signed in", func(t *testing.T) {
		remote := newFakeRemote()
		tracker := newTestTracker(t, remote)

		added, err := tracker.AddEntry(models.Entry{Date: "2024-01-01", DidPoop: true}, "user-1")
		if err != nil {
			t.Fatalf("AddEntry() failed: %v", err)
		}
		tracker.Flush()

		remote.mu.Lock()
		_, pushed := remote.entries[added.ID]
		remote.mu.Unlock()
		if !pushed {
			t.Error("entry was not pushed to the remote")
		}
	})

	t.Run("push failure is swallowed", func(t *testing.T) {
		remote := newFakeRemote()
		remote.failPush = true
		tracker := newTestTracker(t, remote)

		if _, err := tracker.AddEntry(models.Entry{Date: "2024-01-01", DidPoop: true}, "user-1"); err != nil {
			t.Fatalf("AddEntry() surfaced a push failure: %v", err)
		}
		tracker.Flush()

		if len(tracker.Entries()) != 1 {
			t.Error("local entry lost after remote failure")
		}
	})

	t.Run("anonymous entries are not pushed", func(t *testing.T) {
		remote := newFakeRemote()
		tracker := newTestTracker(t, remote)

		if _, err := tracker.AddEntry(models.Entry{Date: "2024-01-01", DidPoop: true}, ""); err != nil {
			t.Fatalf("AddEntry() failed: %v", err)
		}
		tracker.Flush()

		remote.mu.Lock()
		calls := remote.upsertCalls
		remote.mu.Unlock()
		if calls != 0 {
			t.Errorf("upsert calls = %d, want 0 for anonymous entry", calls)
		}
	})
}

func TestUpdateEntry(t *testing.T) {
	tracker := newTestTracker(t, nil)
	added, _ := tracker.AddEntry(models.Entry{Date: "2024-01-01", DidPoop: true, DurationSec: 120, Mood: models.MoodHappy}, "")

	t.Run("patch merges by id", func(t *testing.T) {
		notes := "felt great"
		updated, ok, err := tracker.UpdateEntry(added.ID, models.EntryPatch{Notes: &notes}, "")
		if err != nil || !ok {
			t.Fatalf("UpdateEntry() = ok=%v err=%v", ok, err)
		}
		if updated.Notes != "felt great" {
			t.Errorf("notes = %q, want %q", updated.Notes, "felt great")
		}
		if updated.DurationSec != 120 {
			t.Errorf("untouched field changed: duration = %d", updated.DurationSec)
		}
	})

	t.Run("score is not recomputed implicitly", func(t *testing.T) {
		dur := 1200
		updated, ok, err := tracker.UpdateEntry(added.ID, models.EntryPatch{DurationSec: &dur}, "")
		if err != nil || !ok {
			t.Fatalf("UpdateEntry() = ok=%v err=%v", ok, err)
		}
		if updated.Score != added.Score {
			t.Errorf("score changed to %d on a patch without a score", updated.Score)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		_, ok, err := tracker.UpdateEntry("nope", models.EntryPatch{}, "")
		if err != nil {
			t.Fatalf("UpdateEntry(unknown) returned error: %v", err)
		}
		if ok {
			t.Error("UpdateEntry(unknown) reported a match")
		}
	})
}

func TestDeleteEntry(t *testing.T) {
	remote := newFakeRemote()
	tracker := newTestTracker(t, remote)
	added, _ := tracker.AddEntry(models.Entry{Date: "2024-01-01", DidPoop: true}, "user-1")
	tracker.Flush()

	if err := tracker.DeleteEntry(added.ID, "user-1"); err != nil {
		t.Fatalf("DeleteEntry() failed: %v", err)
	}
	tracker.Flush()

	if len(tracker.Entries()) != 0 {
		t.Error("entry still present after delete")
	}
	remote.mu.Lock()
	_, stillRemote := remote.entries[added.ID]
	remote.mu.Unlock()
	if stillRemote {
		t.Error("entry still present remotely after delete")
	}

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := remote.deleteCalls
		if err := tracker.DeleteEntry("nope", "user-1"); err != nil {
			t.Fatalf("DeleteEntry(unknown) returned error: %v", err)
		}
		tracker.Flush()
		if remote.deleteCalls != before {
			t.Error("remote delete attempted for unknown id")
		}
	})
}

func TestAddAchievementIdempotent(t *testing.T) {
	tracker := newTestTracker(t, nil)

	first := models.Achievement{ID: "first_flush", Title: "First Flush", UnlockedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := tracker.AddAchievement(first, ""); err != nil {
		t.Fatalf("AddAchievement() failed: %v", err)
	}

	dup := models.Achievement{ID: "first_flush", Title: "First Flush", UnlockedAt: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)}
	if err := tracker.AddAchievement(dup, ""); err != nil {
		t.Fatalf("AddAchievement() failed: %v", err)
	}

	got := tracker.Achievements()
	if len(got) != 1 {
		t.Fatalf("len(achievements) = %d, want 1", len(got))
	}
	if !got[0].UnlockedAt.Equal(first.UnlockedAt) {
		t.Errorf("unlock time = %v, want the first one %v", got[0].UnlockedAt, first.UnlockedAt)
	}
}

func TestCheckAchievements(t *testing.T) {
	tracker := newTestTracker(t, nil)
	if _, err := tracker.AddEntry(models.Entry{Date: utils.Today(), DidPoop: true, DurationSec: 120, Mood: models.MoodHappy}, ""); err != nil {
		t.Fatalf("AddEntry() failed: %v", err)
	}

	unlocked, err := tracker.CheckAchievements("")
	if err != nil {
		t.Fatalf("CheckAchievements() failed: %v", err)
	}

	found := false
	for _, a := range unlocked {
		if a.ID == "first_flush" {
			found = true
		}
	}
	if !found {
		t.Error("first_flush not unlocked after first entry")
	}

	t.Run("second check unlocks nothing new", func(t *testing.T) {
		again, err := tracker.CheckAchievements("")
		if err != nil {
			t.Fatalf("CheckAchievements() failed: %v", err)
		}
		for _, a := range again {
			for _, b := range unlocked {
				if a.ID == b.ID {
					t.Errorf("achievement %q unlocked twice", a.ID)
				}
			}
		}
	})
}

func TestClearAllData(t *testing.T) {
	remote := newFakeRemote()
	tracker := newTestTracker(t, remote)
	added, _ := tracker.AddEntry(models.Entry{Date: utils.Today(), DidPoop: true}, "user-1")
	tracker.AddAchievement(models.Achievement{ID: "first_flush", Title: "First Flush"}, "user-1")
	tracker.Flush()

	if err := tracker.ClearAllData(); err != nil {
		t.Fatalf("ClearAllData() failed: %v", err)
	}

	if len(tracker.Entries()) != 0 || len(tracker.Achievements()) != 0 || tracker.Streak() != 0 || tracker.LastSyncAt() != nil {
		t.Error("local state not fully cleared")
	}

	// A local wipe must not touch the remote store
	remote.mu.Lock()
	_, stillRemote := remote.entries[added.ID]
	remote.mu.Unlock()
	if !stillRemote {
		t.Error("remote entry removed by a local-only clear")
	}
}

func TestSyncWithCloud(t *testing.T) {
	t.Run("pushes full state and records sync time", func(t *testing.T) {
		remote := newFakeRemote()
		tracker := newTestTracker(t, remote)
		tracker.AddEntry(models.Entry{Date: "2024-01-01", DidPoop: true}, "")
		tracker.AddAchievement(models.Achievement{ID: "first_flush", Title: "First Flush"}, "")

		if err := tracker.SyncWithCloud(context.Background(), "user-1"); err != nil {
			t.Fatalf("SyncWithCloud() failed: %v", err)
		}

		if remote.pushAllCalls != 1 {
			t.Errorf("PushAll calls = %d, want 1", remote.pushAllCalls)
		}
		if tracker.LastSyncAt() == nil {
			t.Error("last sync time not recorded")
		}
		if tracker.Syncing() {
			t.Error("syncing flag still set after completion")
		}
	})

	t.Run("failure is surfaced and flag reset", func(t *testing.T) {
		remote := newFakeRemote()
		remote.failPush = true
		tracker := newTestTracker(t, remote)

		err := tracker.SyncWithCloud(context.Background(), "user-1")
		if err == nil {
			t.Fatal("SyncWithCloud() swallowed a bulk failure, want error")
		}
		if tracker.Syncing() {
			t.Error("syncing flag still set after failure")
		}
		if tracker.LastSyncAt() != nil {
			t.Error("sync time recorded despite failure")
		}
	})
}

func TestLoadFromCloud(t *testing.T) {
	now := time.Now()

	t.Run("merges and recomputes streak", func(t *testing.T) {
		remote := newFakeRemote()
		remote.cloudEntries = []models.Entry{
			{ID: "c1", Date: utils.Today(), DidPoop: true, CreatedAt: now},
			{ID: "c2", Date: utils.DateOf(now.AddDate(0, 0, -1)), DidPoop: true, CreatedAt: now.Add(-24 * time.Hour)},
		}
		remote.cloudAchievements = []models.Achievement{{ID: "first_flush", Title: "First Flush", UnlockedAt: now}}

		tracker := newTestTracker(t, remote)
		if err := tracker.LoadFromCloud(context.Background(), "user-1"); err != nil {
			t.Fatalf("LoadFromCloud() failed: %v", err)
		}

		if len(tracker.Entries()) != 2 {
			t.Errorf("entries = %d, want 2", len(tracker.Entries()))
		}
		if got := tracker.Streak(); got != 2 {
			t.Errorf("streak = %d, want 2 after merge", got)
		}
		if len(tracker.Achievements()) != 1 {
			t.Errorf("achievements = %d, want 1", len(tracker.Achievements()))
		}
	})

	t.Run("local newer entry survives the pull", func(t *testing.T) {
		remote := newFakeRemote()
		remote.cloudEntries = []models.Entry{{ID: "e1", Date: "2024-01-01", DidPoop: false, CreatedAt: now.Add(-time.Hour)}}

		tracker := newTestTracker(t, remote)
		tracker.AddEntry(models.Entry{ID: "e1", Date: "2024-01-01", DidPoop: true, DurationSec: 120, Mood: models.MoodHappy}, "")

		if err := tracker.LoadFromCloud(context.Background(), "user-1"); err != nil {
			t.Fatalf("LoadFromCloud() failed: %v", err)
		}

		entries := tracker.Entries()
		if len(entries) != 1 || !entries[0].DidPoop {
			t.Errorf("local newer entry lost in merge: %+v", entries)
		}
	})

	t.Run("fetch failure is surfaced", func(t *testing.T) {
		remote := newFakeRemote()
		remote.failFetch = true
		tracker := newTestTracker(t, remote)
		tracker.AddEntry(models.Entry{Date: "2024-01-01", DidPoop: true}, "")

		if err := tracker.LoadFromCloud(context.Background(), "user-1"); err == nil {
			t.Fatal("LoadFromCloud() swallowed a fetch failure, want error")
		}
		if tracker.Syncing() {
			t.Error("syncing flag still set after failure")
		}
		if len(tracker.Entries()) != 1 {
			t.Error("local state mutated despite failed pull")
		}
	})
}

func TestNoRemoteConfigured(t *testing.T) {
	tracker := newTestTracker(t, nil)

	if err := tracker.SyncWithCloud(context.Background(), "user-1"); err == nil {
		t.Error("SyncWithCloud() without a remote succeeded, want error")
	}
	if err := tracker.LoadFromCloud(context.Background(), "user-1"); err == nil {
		t.Error("LoadFromCloud() without a remote succeeded, want error")
	}
}
