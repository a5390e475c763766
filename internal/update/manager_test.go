package update

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"roster/internal/paths"
)

func sourceFS(version string, agents ...string) fstest.MapFS {
	yaml := "version: " + version + "\nagents:\n"
	for _, id := range agents {
		yaml += "  - id: " + id + "\n    category: core\n"
	}
	return fstest.MapFS{
		"catalog.yaml": &fstest.MapFile{Data: []byte(yaml)},
		"detect.yaml":  &fstest.MapFile{Data: []byte("detect: []\n")},
	}
}

func TestInstall(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")

	installed, err := Install(root, sourceFS("1.0.0", "code-reviewer"))
	require.NoError(t, err)
	require.True(t, installed)

	record, err := ReadRecord(root)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", record.Version.String())

	// A second install is a no-op.
	installed, err = Install(root, sourceFS("9.9.9", "code-reviewer"))
	require.NoError(t, err)
	require.False(t, installed)
}

func TestNeedsUpdateFirstInstall(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "catalog"), t.TempDir(), sourceFS("1.1.0", "code-reviewer"))

	needed, from, to, err := m.NeedsUpdate()
	require.NoError(t, err)
	require.True(t, needed)
	require.Nil(t, from)
	require.Equal(t, "1.1.0", to.String())
}

func TestNeedsUpdateVersionComparison(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")
	_, err := Install(root, sourceFS("1.1.0", "code-reviewer"))
	require.NoError(t, err)

	m := NewManager(root, t.TempDir(), sourceFS("1.1.0", "code-reviewer"))
	needed, from, to, err := m.NeedsUpdate()
	require.NoError(t, err)
	require.False(t, needed)
	require.Equal(t, "1.1.0", from.String())
	require.Equal(t, "1.1.0", to.String())

	m = NewManager(root, t.TempDir(), sourceFS("1.2.0", "code-reviewer"))
	needed, _, _, err = m.NeedsUpdate()
	require.NoError(t, err)
	require.True(t, needed)

	// An older source never triggers an update.
	m = NewManager(root, t.TempDir(), sourceFS("1.0.0", "code-reviewer"))
	needed, _, _, err = m.NeedsUpdate()
	require.NoError(t, err)
	require.False(t, needed)
}

func TestRunUpToDateIsNoOp(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")
	_, err := Install(root, sourceFS("1.1.0", "code-reviewer"))
	require.NoError(t, err)
	projectDir := writeProjectDir(t, "doc\n")

	m := NewManager(root, projectDir, sourceFS("1.1.0", "code-reviewer"))
	result, err := m.Run(false)
	require.NoError(t, err)
	require.True(t, result.UpToDate)
	require.Nil(t, result.Snapshot)
	require.Equal(t, PhaseDone, result.Phase)

	// No snapshot was taken for a no-op.
	snaps, err := ListSnapshots(projectDir)
	require.NoError(t, err)
	require.Empty(t, snaps)
}

func TestRunUpdatesCatalogAndReconciles(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")
	_, err := Install(root, sourceFS("1.0.0", "code-reviewer", "old-timer"))
	require.NoError(t, err)

	doc := "## Tech Stack\n\nGo.\n\n## Active Capabilities\n\n- old-timer\n- code-reviewer\n- code-reviewer\n"
	projectDir := writeProjectDir(t, doc)

	m := NewManager(root, projectDir, sourceFS("1.1.0", "code-reviewer", "newcomer"))
	result, err := m.Run(false)
	require.NoError(t, err)
	require.Equal(t, PhaseDone, result.Phase)
	require.Equal(t, PhaseDone, m.Phase())
	require.False(t, result.RolledBack)
	require.Equal(t, "1.0.0", result.From.String())
	require.Equal(t, "1.1.0", result.To.String())
	require.NotNil(t, result.Snapshot)
	require.Equal(t, []string{"old-timer"}, result.RetainedUnknown)

	// The installation record reflects the new version.
	record, err := ReadRecord(root)
	require.NoError(t, err)
	require.Equal(t, "1.1.0", record.Version.String())

	// The activation set is normalized but old-timer is retained.
	data, err := os.ReadFile(paths.DocumentPath(projectDir))
	require.NoError(t, err)
	require.Equal(t, "## Tech Stack\n\nGo.\n\n## Active Capabilities\n\n- code-reviewer\n- old-timer\n\n", string(data))

	// Neither the staging dir nor the displaced old copy linger.
	_, err = os.Stat(root + ".staging")
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(root + ".old")
	require.True(t, os.IsNotExist(err))
}

func TestRunForceRefreshesEqualVersion(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")
	_, err := Install(root, sourceFS("1.0.0", "code-reviewer"))
	require.NoError(t, err)
	projectDir := writeProjectDir(t, "## Active Capabilities\n\n- code-reviewer\n")

	m := NewManager(root, projectDir, sourceFS("1.0.0", "code-reviewer"))
	result, err := m.Run(true)
	require.NoError(t, err)
	require.False(t, result.UpToDate)
	require.Equal(t, PhaseDone, result.Phase)
	require.NotNil(t, result.Snapshot)
}

func TestRunForceNeverDowngrades(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")
	_, err := Install(root, sourceFS("2.0.0", "code-reviewer"))
	require.NoError(t, err)
	projectDir := writeProjectDir(t, "## Active Capabilities\n\n- code-reviewer\n")

	m := NewManager(root, projectDir, sourceFS("1.0.0", "code-reviewer"))
	result, err := m.Run(true)
	require.NoError(t, err)
	require.True(t, result.UpToDate)
	require.Nil(t, result.Snapshot)

	// The installed record keeps the newer version.
	record, err := ReadRecord(root)
	require.NoError(t, err)
	require.Equal(t, "2.0.0", record.Version.String())

	snaps, err := ListSnapshots(projectDir)
	require.NoError(t, err)
	require.Empty(t, snaps)
}

func TestRunRollsBackOnReconcileFailure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")
	_, err := Install(root, sourceFS("1.0.0", "code-reviewer"))
	require.NoError(t, err)

	// An unparseable document makes the reconcile step fail after the catalog
	// has already been refreshed.
	badDoc := "# Title\n\xff\xfe\n"
	projectDir := filepath.Join(t.TempDir(), paths.DirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.WriteFile(paths.DocumentPath(projectDir), []byte(badDoc), 0o640))

	m := NewManager(root, projectDir, sourceFS("2.0.0", "code-reviewer"))
	result, err := m.Run(false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "update rolled back from snapshot")
	require.True(t, result.RolledBack)
	require.Equal(t, PhaseRolledBack, result.Phase)
	require.Equal(t, PhaseRolledBack, m.Phase())

	// The project document is byte-identical to its pre-update state.
	data, readErr := os.ReadFile(paths.DocumentPath(projectDir))
	require.NoError(t, readErr)
	require.Equal(t, badDoc, string(data))

	// The old catalog copy is back in place.
	record, readErr := ReadRecord(root)
	require.NoError(t, readErr)
	require.Equal(t, "1.0.0", record.Version.String())
}

func TestRunSnapshotFailureIsFatal(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")
	_, err := Install(root, sourceFS("1.0.0", "code-reviewer"))
	require.NoError(t, err)

	// A nonexistent project dir makes snapshotting fail before anything else
	// happens.
	missing := filepath.Join(t.TempDir(), "absent")
	m := NewManager(root, missing, sourceFS("2.0.0", "code-reviewer"))
	_, err = m.Run(false)
	require.Error(t, err)

	var serr *SnapshotError
	require.ErrorAs(t, err, &serr)

	// The catalog was never touched.
	record, readErr := ReadRecord(root)
	require.NoError(t, readErr)
	require.Equal(t, "1.0.0", record.Version.String())
}
