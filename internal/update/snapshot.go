package update

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"roster/internal/log"
	"roster/internal/paths"
)

// snapshotTimeFormat produces lexically sortable directory names, so the
// most recent snapshot is determinable by sorting alone.
const snapshotTimeFormat = "20060102T150405"

// SnapshotError indicates a recovery point could not be created. It is
// fatal: no destructive operation may proceed without one.
type SnapshotError struct {
	Err error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("creating snapshot: %v", e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// Snapshot is an immutable full copy of the project configuration directory,
// taken immediately before any destructive operation. Snapshots accumulate;
// pruning is a policy decision left to the caller.
type Snapshot struct {
	Name       string
	Timestamp  time.Time
	SourcePath string
	Path       string
}

// CreateSnapshot copies projectDir (excluding the backups directory itself)
// into a new timestamped directory under backups/.
func CreateSnapshot(projectDir string) (*Snapshot, error) {
	if _, err := os.Stat(projectDir); err != nil {
		return nil, &SnapshotError{Err: err}
	}

	now := time.Now()
	name := now.Format(snapshotTimeFormat)
	dest := filepath.Join(paths.BackupsDir(projectDir), name)

	// A second snapshot within the same second gets a numeric suffix rather
	// than clobbering the first.
	for i := 1; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(paths.BackupsDir(projectDir), fmt.Sprintf("%s-%d", name, i))
	}

	if err := copyDir(projectDir, dest, paths.BackupsDirName); err != nil {
		_ = os.RemoveAll(dest)
		return nil, &SnapshotError{Err: err}
	}

	s := &Snapshot{
		Name:       filepath.Base(dest),
		Timestamp:  now,
		SourcePath: projectDir,
		Path:       dest,
	}
	log.Info(log.CatUpdate, "Snapshot created", "path", dest)
	return s, nil
}

// ListSnapshots returns the snapshots under projectDir sorted lexically,
// oldest first.
func ListSnapshots(projectDir string) ([]Snapshot, error) {
	entries, err := os.ReadDir(paths.BackupsDir(projectDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	var snaps []Snapshot
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ts, err := time.ParseInLocation(snapshotTimeFormat, entry.Name()[:min(len(entry.Name()), len(snapshotTimeFormat))], time.Local)
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{
			Name:       entry.Name(),
			Timestamp:  ts,
			SourcePath: projectDir,
			Path:       filepath.Join(paths.BackupsDir(projectDir), entry.Name()),
		})
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Name < snaps[j].Name })
	return snaps, nil
}

// LatestSnapshot returns the most recent snapshot, or nil if none exist.
func LatestSnapshot(projectDir string) (*Snapshot, error) {
	snaps, err := ListSnapshots(projectDir)
	if err != nil || len(snaps) == 0 {
		return nil, err
	}
	return &snaps[len(snaps)-1], nil
}

// Restore copies the snapshot's contents back over projectDir, first
// clearing everything except the backups directory.
func (s *Snapshot) Restore() error {
	entries, err := os.ReadDir(s.SourcePath)
	if err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	for _, entry := range entries {
		if entry.Name() == paths.BackupsDirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.SourcePath, entry.Name())); err != nil {
			return fmt.Errorf("restoring snapshot: %w", err)
		}
	}
	if err := copyDir(s.Path, s.SourcePath, ""); err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	log.Info(log.CatUpdate, "Snapshot restored", "snapshot", s.Name)
	return nil
}

// Prune deletes all but the newest keep snapshots. Caller policy only; the
// core never prunes on its own.
func Prune(projectDir string, keep int) error {
	if keep < 1 {
		return nil
	}
	snaps, err := ListSnapshots(projectDir)
	if err != nil {
		return err
	}
	for len(snaps) > keep {
		victim := snaps[0]
		snaps = snaps[1:]
		if err := os.RemoveAll(victim.Path); err != nil {
			return fmt.Errorf("pruning snapshot %s: %w", victim.Name, err)
		}
		log.Debug(log.CatUpdate, "Snapshot pruned", "snapshot", victim.Name)
	}
	return nil
}

// copyDir copies src into dst recursively, skipping a top-level entry named
// skip (used to keep snapshots from nesting into each other).
func copyDir(src, dst, skip string) error {
	if err := os.MkdirAll(dst, 0o750); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if skip != "" && entry.Name() == skip {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath, ""); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // G304: paths stay inside the project tree
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640) //nolint:gosec // G304
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
