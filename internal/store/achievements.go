package store

import (
	"time"

	"github.com/hfletcher/gutlog/internal/achievements"
	"github.com/hfletcher/gutlog/internal/models"
)

// CheckAchievements evaluates the catalog against the current entry list
// and persists any newly earned milestones, returning them. Evaluation
// is opportunistic: callers run it after mutations and pulls, there is
// no background job.
func (t *Tracker) CheckAchievements(userID string) ([]models.Achievement, error) {
	earned := achievements.Evaluate(t.Entries(), t.Achievements())
	if len(earned) == 0 {
		return nil, nil
	}

	now := time.Now()
	var unlocked []models.Achievement
	for _, def := range earned {
		a := models.Achievement{ID: def.ID, Title: def.Title, UnlockedAt: now}
		if err := t.AddAchievement(a, userID); err != nil {
			return unlocked, err
		}
		unlocked = append(unlocked, a)
	}
	return unlocked, nil
}
