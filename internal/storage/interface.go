package storage

import "github.com/hfletcher/gutlog/internal/models"

// Provider is a durable holder for the local snapshot. The snapshot is
// read once at session start and rewritten whole after every mutation;
// implementations do not interpret its contents beyond persistence.
type Provider interface {
	// Init creates the underlying storage. It fails if storage already
	// exists at the configured path.
	Init() error
	// Load reads the current snapshot into memory.
	Load() (models.Snapshot, error)
	// Save persists the given snapshot, replacing the previous one.
	Save(models.Snapshot) error
	Close() error

	// GetConfigPath returns the path of the backing file.
	GetConfigPath() string
}
