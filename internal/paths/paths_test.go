package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveProjectDir(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "project dir", in: "/path/to/project", want: "/path/to/project/.roster"},
		{name: "already resolved", in: "/path/to/project/.roster", want: "/path/to/project/.roster"},
		{name: "empty means cwd", in: "", want: ".roster"},
		{name: "trailing slash", in: "/path/to/project/", want: "/path/to/project/.roster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, filepath.FromSlash(tt.want), ResolveProjectDir(filepath.FromSlash(tt.in)))
		})
	}
}

func TestDocumentAndBackupPaths(t *testing.T) {
	dir := filepath.FromSlash("/p/.roster")
	require.Equal(t, filepath.Join(dir, "project.md"), DocumentPath(dir))
	require.Equal(t, filepath.Join(dir, "backups"), BackupsDir(dir))
}

func TestDefaultCatalogRoot(t *testing.T) {
	root := DefaultCatalogRoot()
	require.Equal(t, "catalog", filepath.Base(root))
	require.Equal(t, DirName, filepath.Base(filepath.Dir(root)))
}
