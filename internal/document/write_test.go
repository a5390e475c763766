package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.md")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o640))

	doc, err := Read(path)
	require.NoError(t, err)
	require.NoError(t, Write(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, sample, string(data))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
}

func TestReadParseErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\xff\n"), 0o640))

	_, err := Read(path)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, path, perr.Path)
}

func TestWriteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".roster", "project.md")
	doc, err := Parse(sample)
	require.NoError(t, err)

	require.NoError(t, Write(path, doc))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, sample, string(data))
}

func TestWriteFailureLeavesOriginalIntact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.md")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o640))

	orig := renameFile
	renameFile = func(oldpath, newpath string) error {
		return errors.New("disk unplugged")
	}
	defer func() { renameFile = orig }()

	doc, err := Parse("## Replaced\n")
	require.NoError(t, err)
	require.Error(t, Write(path, doc))

	// Original bytes survive and the temp file is cleaned up.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, sample, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
