// Package paths provides path resolution for roster's on-disk layout.
package paths

import (
	"os"
	"path/filepath"
)

// DirName is the per-project configuration directory.
const DirName = ".roster"

// DocumentName is the project configuration document inside DirName.
const DocumentName = "project.md"

// BackupsDirName holds snapshots inside DirName.
const BackupsDirName = "backups"

// ResolveProjectDir resolves the .roster directory path from user input.
// It normalizes the input, accepting either the project dir or the .roster
// dir itself:
//   - "/path/to/project"         -> "/path/to/project/.roster"
//   - "/path/to/project/.roster" -> "/path/to/project/.roster"
//   - ""                         -> "./.roster"
func ResolveProjectDir(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	if filepath.Base(path) == DirName {
		return path
	}
	return filepath.Join(path, DirName)
}

// DocumentPath returns the project document path for a resolved project dir.
func DocumentPath(projectDir string) string {
	return filepath.Join(projectDir, DocumentName)
}

// BackupsDir returns the snapshot directory for a resolved project dir.
func BackupsDir(projectDir string) string {
	return filepath.Join(projectDir, BackupsDirName)
}

// DefaultCatalogRoot returns the shared catalog location, ~/.roster/catalog,
// or a relative fallback if the home directory is unavailable.
func DefaultCatalogRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DirName, "catalog")
	}
	return filepath.Join(home, DirName, "catalog")
}
