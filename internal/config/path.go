package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, before expansion.
const (
	DefaultConfigDir  = "~/.config/numbercruncher"
	DefaultLedgerPath = "~/.local/share/numbercruncher/ledger.db"
)

// ExpandPath expands a leading ~ and $VAR references in a path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
