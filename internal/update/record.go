// Package update implements snapshots, the installation record, and the
// update/migration state machine that refreshes the shared catalog while
// preserving project-local edits.
package update

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"roster/internal/document"
)

// VersionFile holds the installed catalog version as its sole content, a
// single semantic-version line inside the catalog root.
const VersionFile = "VERSION"

// Record locates the installed catalog and carries its version. It is
// created at install time and rewritten only by the update manager.
type Record struct {
	Version     *semver.Version
	CatalogRoot string
}

// ReadRecord loads the installation record from a catalog root.
func ReadRecord(catalogRoot string) (*Record, error) {
	path := filepath.Join(catalogRoot, VersionFile)
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the configured catalog root
	if err != nil {
		return nil, fmt.Errorf("reading installation record: %w", err)
	}

	version, err := semver.NewVersion(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("installation record %s: %w", path, err)
	}

	return &Record{Version: version, CatalogRoot: catalogRoot}, nil
}

// WriteRecord persists the record atomically.
func WriteRecord(r *Record) error {
	path := filepath.Join(r.CatalogRoot, VersionFile)
	if err := document.WriteFileAtomic(path, []byte(r.Version.String()+"\n")); err != nil {
		return fmt.Errorf("writing installation record: %w", err)
	}
	return nil
}
