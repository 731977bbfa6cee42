package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// New selects a provider for the given config path: paths ending in .db
// or .sqlite get the SQLite store, anything else the JSON store.
func New(configPath string) Provider {
	path := ExpandPath(configPath)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return NewSQLiteStore(path)
	default:
		return NewJSONStore(path)
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
