// Package cloudsync reconciles the local store with the hosted Postgres
// backend: shape translation in both directions, id-keyed merges, and
// the row-level push/pull operations.
package cloudsync

import (
	"sort"

	"github.com/hfletcher/gutlog/internal/models"
)

// MergeEntries reconciles local and cloud entry sets. The map is keyed
// by entry id and seeded with the cloud rows; a local entry wins its
// slot only when no cloud row exists or its CreatedAt is strictly newer
// (last writer wins per id). The result is sorted by date descending.
//
// Note: the merge keys by id, not date, so two entries with distinct ids
// for the same date can both survive until the next local insert on that
// date collapses them. Known gap, left as-is deliberately.
func MergeEntries(local, cloud []models.Entry) []models.Entry {
	merged := make(map[string]models.Entry, len(local)+len(cloud))
	for _, e := range cloud {
		merged[e.ID] = e
	}
	for _, e := range local {
		existing, ok := merged[e.ID]
		if !ok || e.CreatedAt.After(existing.CreatedAt) {
			merged[e.ID] = e
		}
	}

	out := make([]models.Entry, 0, len(merged))
	for _, e := range merged {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MergeAchievements reconciles unlock records. Seeded with the local
// set; a cloud record wins only when the id is unknown locally or its
// UnlockedAt is strictly earlier - the true unlock moment is whichever
// device saw it first. Sorted by unlock time descending.
func MergeAchievements(local, cloud []models.Achievement) []models.Achievement {
	merged := make(map[string]models.Achievement, len(local)+len(cloud))
	for _, a := range local {
		merged[a.ID] = a
	}
	for _, a := range cloud {
		existing, ok := merged[a.ID]
		if !ok || a.UnlockedAt.Before(existing.UnlockedAt) {
			merged[a.ID] = a
		}
	}

	out := make([]models.Achievement, 0, len(merged))
	for _, a := range merged {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UnlockedAt.Equal(out[j].UnlockedAt) {
			return out[i].UnlockedAt.After(out[j].UnlockedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
