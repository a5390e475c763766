package update

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	root := t.TempDir()
	version := semver.MustParse("1.2.3")

	require.NoError(t, WriteRecord(&Record{Version: version, CatalogRoot: root}))

	data, err := os.ReadFile(filepath.Join(root, VersionFile))
	require.NoError(t, err)
	require.Equal(t, "1.2.3\n", string(data))

	record, err := ReadRecord(root)
	require.NoError(t, err)
	require.True(t, version.Equal(record.Version))
	require.Equal(t, root, record.CatalogRoot)
}

func TestReadRecordMissing(t *testing.T) {
	_, err := ReadRecord(t.TempDir())
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadRecordTrimsWhitespace(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, VersionFile), []byte("  2.0.0\n\n"), 0o640))

	record, err := ReadRecord(root)
	require.NoError(t, err)
	require.Equal(t, "2.0.0", record.Version.String())
}

func TestReadRecordMalformedVersion(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, VersionFile), []byte("not-a-version\n"), 0o640))

	_, err := ReadRecord(root)
	require.Error(t, err)
}
