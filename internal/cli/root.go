package cli

import (
	"fmt"

	"github.com/hfletcher/gutlog/internal/backup"
	"github.com/hfletcher/gutlog/internal/billing"
	"github.com/hfletcher/gutlog/internal/cloudsync"
	"github.com/hfletcher/gutlog/internal/logger"
	"github.com/hfletcher/gutlog/internal/models"
	"github.com/hfletcher/gutlog/internal/session"
	"github.com/hfletcher/gutlog/internal/store"
)

// Context carries the session's collaborators into every command. One is
// constructed per process in main and torn down when the process exits.
type Context struct {
	Tracker    *store.Tracker
	Remote     *cloudsync.Client // nil when no remote DSN is configured
	Billing    *billing.Client
	ConfigPath string
	Debug      bool
}

// UserID returns the signed-in user id, or "" for anonymous local-only
// sessions.
func (c *Context) UserID() string {
	return session.CurrentUserID()
}

// RequireUser returns the signed-in user id or an instructive error.
func (c *Context) RequireUser() (string, error) {
	id, err := session.Current()
	if err != nil {
		return "", fmt.Errorf("this command needs a signed-in account: %w", err)
	}
	return id.UserID, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Tracker.ConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// CheckAchievements persists newly earned milestones and announces them.
func (c *Context) CheckAchievements() {
	unlocked, err := c.Tracker.CheckAchievements(c.UserID())
	if err != nil {
		logger.Warn("Achievement check failed", "error", err)
		return
	}
	for _, a := range unlocked {
		fmt.Printf("🏆 Achievement unlocked: %s\n", a.Title)
	}
}

// MoodEmoji maps a mood to its display emoji.
func MoodEmoji(mood models.Mood) string {
	switch mood {
	case models.MoodHappy:
		return "😊"
	case models.MoodSad:
		return "😣"
	default:
		return "😐"
	}
}
