package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eips-wg/preprocessor/errors"
)

func TestIsProposalPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"content/1.md", true},
		{"content/00001.md", true},
		{"content/7702/index.md", true},
		{"./content/20.md", true},
		{"content/7702/assets/diagram.png", false},
		{"content/7702/other.md", false},
		{"content/abc.md", false},
		{"content/.md", false},
		{"content/1.txt", false},
		{"content/1", false},
		{"content", false},
		{"README.md", false},
		{"other/1.md", false},
		{"content/1/2/index.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProposalPath(tt.path))
		})
	}
}

func TestPaths(t *testing.T) {
	root := filepath.FromSlash("/work/EIPs")
	assert.Equal(t, filepath.FromSlash("/work/EIPs/build"), BuildPath(root))
	assert.Equal(t, filepath.FromSlash("/work/EIPs/build/repo"), RepoPath(root))
	assert.Equal(t, filepath.FromSlash("/work/EIPs/build/output"), OutputPath(root))
	assert.Equal(t, filepath.FromSlash("/work/EIPs/build/.lock"), LockPath(root))
}

func TestFindRootFS(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/work/EIPs/.git", 0o755))
	require.NoError(t, fs.MkdirAll("/work/EIPs/content/1", 0o755))
	require.NoError(t, fs.MkdirAll("/work/other/.git", 0o755))

	root, err := FindRootFS(fs, "/work/EIPs/content/1")
	require.NoError(t, err)
	assert.Equal(t, "/work/EIPs", root)

	root, err = FindRootFS(fs, "/work/EIPs")
	require.NoError(t, err)
	assert.Equal(t, "/work/EIPs", root)

	// .git alone is not enough.
	_, err = FindRootFS(fs, "/work/other")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestFindRoot_OS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content", "42"), 0o755))

	root, err := FindRoot(filepath.Join(dir, "content", "42"))
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}
