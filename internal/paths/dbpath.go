// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DataDir is the per-project directory holding the database.
	DataDir = ".dealboard"
	// DBFile is the database file name inside DataDir.
	DBFile = "deals.db"
)

// ResolveDBPath resolves the database file from user input.
// It accepts a database file, a data directory or a project directory,
// and follows redirect files for git worktrees.
//
// Input normalization:
//   - "/path/to/deals.db" -> "/path/to/deals.db"
//   - "/path/to/project/.dealboard" -> "/path/to/project/.dealboard/deals.db"
//   - "/path/to/project" -> "/path/to/project/.dealboard/deals.db"
//   - "" -> ".dealboard/deals.db"
//
// Redirect handling:
//   - If .dealboard/redirect exists, its content is a path relative to
//     .dealboard naming the data directory to use instead
func ResolveDBPath(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	// An explicit database file, existing or not.
	if filepath.Ext(path) == ".db" {
		return path
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}

	dataDir := path
	if filepath.Base(path) != DataDir {
		dataDir = filepath.Join(path, DataDir)
	}
	return filepath.Join(followRedirect(dataDir), DBFile)
}

// followRedirect checks for a redirect file and follows it if present.
// Redirect files let a git worktree share the main worktree's database.
func followRedirect(dataDir string) string {
	content, err := os.ReadFile(filepath.Join(dataDir, "redirect")) //nolint:gosec // redirect path is within the data dir
	if err != nil {
		return dataDir
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return dataDir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(dataDir, target))
}
