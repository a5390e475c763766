package update

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"roster/internal/catalog"
	"roster/internal/document"
	"roster/internal/log"
	"roster/internal/paths"
)

// Phase tracks the update state machine:
// Idle → Snapshotting → Refreshing → Reconciling → Finalizing → Done,
// with RolledBack terminal from any middle state on error.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSnapshotting
	PhaseRefreshing
	PhaseReconciling
	PhaseFinalizing
	PhaseDone
	PhaseRolledBack
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSnapshotting:
		return "snapshotting"
	case PhaseRefreshing:
		return "refreshing"
	case PhaseReconciling:
		return "reconciling"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseDone:
		return "done"
	case PhaseRolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

// completeMarker is written into a staged catalog copy last, making a
// partial copy detectable: the swap never happens without it, so Finalizing
// is never reached on an incomplete catalog replacement.
const completeMarker = ".complete"

// Result reports what an update run did.
type Result struct {
	Phase           Phase
	From            *semver.Version // nil on first install
	To              *semver.Version
	UpToDate        bool      // no-op: already at target version and not forced
	Snapshot        *Snapshot // recovery point, nil when UpToDate
	RolledBack      bool
	RetainedUnknown []string // active ids absent from the new catalog, kept as-is
}

// Manager orchestrates a catalog update for one project. The new catalog
// copy is supplied by the caller (the distribution collaborator); by default
// that's the embedded catalog shipped with the binary.
type Manager struct {
	catalogRoot string
	projectDir  string
	source      fs.FS
	phase       Phase
}

// NewManager creates a manager over a catalog root, a resolved project
// directory, and a source filesystem holding the new catalog copy.
func NewManager(catalogRoot, projectDir string, source fs.FS) *Manager {
	return &Manager{
		catalogRoot: catalogRoot,
		projectDir:  projectDir,
		source:      source,
		phase:       PhaseIdle,
	}
}

// Phase returns the manager's current state.
func (m *Manager) Phase() Phase {
	return m.phase
}

// NeedsUpdate compares the installed version against the source catalog's
// version. From is nil when no installation record exists yet.
func (m *Manager) NeedsUpdate() (needed bool, from, to *semver.Version, err error) {
	sourceCat, err := catalog.Load(m.source)
	if err != nil {
		return false, nil, nil, err
	}
	to = sourceCat.Version()

	record, err := ReadRecord(m.catalogRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil, to, nil
	}
	if err != nil {
		return false, nil, to, err
	}
	return to.GreaterThan(record.Version), record.Version, to, nil
}

// Run executes the update. Equal versions are a no-op unless force is set,
// in which case the refresh re-runs idempotently. On any failure after the
// snapshot is taken, the project directory is restored from it and the
// result says so explicitly.
func (m *Manager) Run(force bool) (*Result, error) {
	needed, from, to, err := m.NeedsUpdate()
	if err != nil {
		return nil, err
	}

	result := &Result{From: from, To: to}
	if !needed {
		// Force re-runs the refresh at equal versions, but a source older
		// than the installed record is never applied: a stale binary must
		// not downgrade a shared catalog.
		downgrade := from != nil && to.LessThan(from)
		if !force || downgrade {
			result.UpToDate = true
			result.Phase = PhaseDone
			m.phase = PhaseDone
			log.Info(log.CatUpdate, "Catalog already up to date", "installed", from, "source", to)
			return result, nil
		}
	}

	// Snapshotting. A failure here is fatal with no further action: never
	// proceed without a recovery point.
	m.phase = PhaseSnapshotting
	snap, err := CreateSnapshot(m.projectDir)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snap

	m.phase = PhaseRefreshing
	oldDir, err := m.refreshCatalog()
	if err != nil {
		return m.rollback(result, snap, oldDir, fmt.Errorf("refreshing catalog: %w", err))
	}

	m.phase = PhaseReconciling
	retained, err := m.reconcile()
	if err != nil {
		return m.rollback(result, snap, oldDir, fmt.Errorf("reconciling activation state: %w", err))
	}
	result.RetainedUnknown = retained

	m.phase = PhaseFinalizing
	if err := WriteRecord(&Record{Version: to, CatalogRoot: m.catalogRoot}); err != nil {
		return m.rollback(result, snap, oldDir, fmt.Errorf("finalizing: %w", err))
	}
	if oldDir != "" {
		_ = os.RemoveAll(oldDir)
	}

	m.phase = PhaseDone
	result.Phase = PhaseDone
	log.Info(log.CatUpdate, "Update complete", "from", from, "to", to, "retained", len(retained))
	return result, nil
}

// refreshCatalog replaces the shared catalog copy wholesale: the new version
// is staged beside the live copy, verified complete and loadable, and then
// swapped in. Returns the path holding the displaced old copy (empty if
// there was none) so a rollback can put it back.
func (m *Manager) refreshCatalog() (oldDir string, err error) {
	staging := m.catalogRoot + ".staging"
	_ = os.RemoveAll(staging)
	if err := copyFSDir(m.source, staging); err != nil {
		_ = os.RemoveAll(staging)
		return "", err
	}
	if err := os.WriteFile(filepath.Join(staging, completeMarker), nil, 0o640); err != nil {
		_ = os.RemoveAll(staging)
		return "", err
	}

	// Verify the staged copy is complete and structurally sound before the
	// live catalog is touched.
	if _, err := os.Stat(filepath.Join(staging, completeMarker)); err != nil {
		_ = os.RemoveAll(staging)
		return "", fmt.Errorf("staged copy incomplete: %w", err)
	}
	if _, err := catalog.Load(os.DirFS(staging)); err != nil {
		_ = os.RemoveAll(staging)
		return "", fmt.Errorf("staged copy unusable: %w", err)
	}

	if _, err := os.Stat(m.catalogRoot); err == nil {
		oldDir = m.catalogRoot + ".old"
		_ = os.RemoveAll(oldDir)
		if err := os.Rename(m.catalogRoot, oldDir); err != nil {
			_ = os.RemoveAll(staging)
			return "", err
		}
	}
	if err := os.Rename(staging, m.catalogRoot); err != nil {
		// Put the old copy back so the live catalog is never absent.
		if oldDir != "" {
			_ = os.Rename(oldDir, m.catalogRoot)
		}
		_ = os.RemoveAll(staging)
		return "", err
	}
	return oldDir, nil
}

// reconcile recomputes the activation set against the new catalog. Ids that
// no longer exist are retained, never pruned; they surface as warnings on
// the next validation. The rewrite normalizes the owned section (sorted,
// de-duplicated) and preserves every other section byte-for-byte.
func (m *Manager) reconcile() ([]string, error) {
	docPath := paths.DocumentPath(m.projectDir)
	doc, err := document.Read(docPath)
	if err != nil {
		return nil, err
	}

	newCat, err := catalog.Load(os.DirFS(m.catalogRoot))
	if err != nil {
		return nil, err
	}

	ids := doc.ActiveIDs()
	var retained []string
	for id := range ids {
		if !newCat.Has(id) {
			retained = append(retained, id)
		}
	}

	if err := document.Write(docPath, doc.WithActiveIDs(ids)); err != nil {
		return nil, err
	}
	return retained, nil
}

// rollback restores the project directory from the snapshot and the old
// catalog copy if it had already been displaced.
func (m *Manager) rollback(result *Result, snap *Snapshot, oldDir string, cause error) (*Result, error) {
	log.ErrorErr(log.CatUpdate, "Update failed, rolling back", cause, "snapshot", snap.Name)

	if oldDir != "" {
		if _, err := os.Stat(oldDir); err == nil {
			_ = os.RemoveAll(m.catalogRoot)
			_ = os.Rename(oldDir, m.catalogRoot)
		}
	}
	if err := snap.Restore(); err != nil {
		m.phase = PhaseRolledBack
		return result, fmt.Errorf("%w; additionally, restoring snapshot %s failed: %v", cause, snap.Name, err)
	}

	m.phase = PhaseRolledBack
	result.Phase = PhaseRolledBack
	result.RolledBack = true
	return result, fmt.Errorf("update rolled back from snapshot %s: %w", snap.Name, cause)
}

// Install copies the source catalog into catalogRoot and writes the
// installation record. Used at first install; a no-op if a catalog is
// already present.
func Install(catalogRoot string, source fs.FS) (installed bool, err error) {
	if _, err := os.Stat(filepath.Join(catalogRoot, catalog.CatalogFile)); err == nil {
		return false, nil
	}

	sourceCat, err := catalog.Load(source)
	if err != nil {
		return false, err
	}
	if err := copyFSDir(source, catalogRoot); err != nil {
		return false, fmt.Errorf("installing catalog: %w", err)
	}
	if err := WriteRecord(&Record{Version: sourceCat.Version(), CatalogRoot: catalogRoot}); err != nil {
		return false, err
	}
	log.Info(log.CatUpdate, "Catalog installed", "root", catalogRoot, "version", sourceCat.Version())
	return true, nil
}

// copyFSDir copies every file of fsys into dst.
func copyFSDir(fsys fs.FS, dst string) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o640)
	})
}
