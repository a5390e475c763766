package update

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"roster/internal/paths"
)

func writeProjectDir(t *testing.T, content string) string {
	t.Helper()
	projectDir := filepath.Join(t.TempDir(), paths.DirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.WriteFile(paths.DocumentPath(projectDir), []byte(content), 0o640))
	return projectDir
}

func TestCreateSnapshotCopiesProject(t *testing.T) {
	projectDir := writeProjectDir(t, "## Tech Stack\n\nGo.\n")

	snap, err := CreateSnapshot(projectDir)
	require.NoError(t, err)
	require.Equal(t, projectDir, snap.SourcePath)

	data, err := os.ReadFile(filepath.Join(snap.Path, paths.DocumentName))
	require.NoError(t, err)
	require.Equal(t, "## Tech Stack\n\nGo.\n", string(data))
}

func TestSnapshotsDoNotNest(t *testing.T) {
	projectDir := writeProjectDir(t, "doc\n")

	first, err := CreateSnapshot(projectDir)
	require.NoError(t, err)
	second, err := CreateSnapshot(projectDir)
	require.NoError(t, err)
	require.NotEqual(t, first.Path, second.Path)

	// The second snapshot must not contain a copy of the first.
	_, err = os.Stat(filepath.Join(second.Path, paths.BackupsDirName))
	require.True(t, os.IsNotExist(err))
}

func TestListSnapshotsOldestFirst(t *testing.T) {
	projectDir := writeProjectDir(t, "doc\n")
	backups := paths.BackupsDir(projectDir)
	for _, name := range []string{"20260301T120000", "20260101T090000", "20260215T180000"} {
		require.NoError(t, os.MkdirAll(filepath.Join(backups, name), 0o750))
	}
	// Stray files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(backups, "notes.txt"), []byte("x"), 0o640))
	require.NoError(t, os.MkdirAll(filepath.Join(backups, "not-a-snapshot"), 0o750))

	snaps, err := ListSnapshots(projectDir)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	require.Equal(t, "20260101T090000", snaps[0].Name)
	require.Equal(t, "20260215T180000", snaps[1].Name)
	require.Equal(t, "20260301T120000", snaps[2].Name)

	latest, err := LatestSnapshot(projectDir)
	require.NoError(t, err)
	require.Equal(t, "20260301T120000", latest.Name)
}

func TestListSnapshotsNoBackupsDir(t *testing.T) {
	projectDir := writeProjectDir(t, "doc\n")

	snaps, err := ListSnapshots(projectDir)
	require.NoError(t, err)
	require.Empty(t, snaps)

	latest, err := LatestSnapshot(projectDir)
	require.NoError(t, err)
	require.Nil(t, latest)
}

func TestRestoreBringsBackOriginalBytes(t *testing.T) {
	original := "## Active Capabilities\n\n- code-reviewer\n"
	projectDir := writeProjectDir(t, original)

	snap, err := CreateSnapshot(projectDir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(paths.DocumentPath(projectDir), []byte("clobbered\n"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "stray.txt"), []byte("x"), 0o640))

	require.NoError(t, snap.Restore())

	data, err := os.ReadFile(paths.DocumentPath(projectDir))
	require.NoError(t, err)
	require.Equal(t, original, string(data))

	// Files created after the snapshot are gone; the backups dir survives.
	_, err = os.Stat(filepath.Join(projectDir, "stray.txt"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(snap.Path)
	require.NoError(t, err)
}

func TestPruneKeepsNewest(t *testing.T) {
	projectDir := writeProjectDir(t, "doc\n")
	backups := paths.BackupsDir(projectDir)
	for _, name := range []string{"20260101T090000", "20260215T180000", "20260301T120000"} {
		require.NoError(t, os.MkdirAll(filepath.Join(backups, name), 0o750))
	}

	require.NoError(t, Prune(projectDir, 2))

	snaps, err := ListSnapshots(projectDir)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, "20260215T180000", snaps[0].Name)
	require.Equal(t, "20260301T120000", snaps[1].Name)
}

func TestPruneZeroKeepsEverything(t *testing.T) {
	projectDir := writeProjectDir(t, "doc\n")
	backups := paths.BackupsDir(projectDir)
	require.NoError(t, os.MkdirAll(filepath.Join(backups, "20260101T090000"), 0o750))

	require.NoError(t, Prune(projectDir, 0))

	snaps, err := ListSnapshots(projectDir)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
}
