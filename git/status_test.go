package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eips-wg/preprocessor/errors"
)

func TestCheckDirty_Clean(t *testing.T) {
	repo := newMemRepo(t)
	commitFiles(t, repo, map[string]string{"content/1.md": "one"}, "initial")

	assert.NoError(t, repo.CheckDirty("build"))
}

func TestCheckDirty_Modified(t *testing.T) {
	repo := newMemRepo(t)
	commitFiles(t, repo, map[string]string{"content/1.md": "one"}, "initial")
	writeFile(t, repo, "content/1.md", "changed")

	err := repo.CheckDirty("build")
	require.Error(t, err)
	assert.Equal(t, errors.CodeDirty, errors.GetCode(err))

	var pe errors.PlatformError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"content/1.md"}, pe.Context()["paths"])
}

func TestCheckDirty_Untracked(t *testing.T) {
	repo := newMemRepo(t)
	commitFiles(t, repo, map[string]string{"content/1.md": "one"}, "initial")
	writeFile(t, repo, "content/2.md", "two")

	err := repo.CheckDirty("build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content/2.md")
}

func TestCheckDirty_IgnoresBuildDir(t *testing.T) {
	repo := newMemRepo(t)
	commitFiles(t, repo, map[string]string{"content/1.md": "one"}, "initial")
	writeFile(t, repo, "build/repo/content/1.md", "artifact")
	writeFile(t, repo, "build/.lock", "")

	assert.NoError(t, repo.CheckDirty("build"))

	// Without the exclusion the same files make the tree dirty.
	assert.Equal(t, errors.CodeDirty, errors.GetCode(repo.CheckDirty("")))
}

func TestCheckDirty_NestedBuildDir(t *testing.T) {
	repo := newMemRepo(t)
	commitFiles(t, repo, map[string]string{"content/build/1.md": "one"}, "initial")

	writeFile(t, repo, "content/build/1.md", "changed")
	err := repo.CheckDirty("build")
	require.Error(t, err)
	assert.Equal(t, errors.CodeDirty, errors.GetCode(err))
	assert.Contains(t, err.Error(), "content/build/1.md")

	commitFiles(t, repo, map[string]string{"content/build/1.md": "changed"}, "update")
	writeFile(t, repo, "content/build/new.md", "new")
	err = repo.CheckDirty("build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content/build/new.md")
}

func TestUnderTopDir(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"build", true},
		{"build/", true},
		{"build/repo/a.md", true},
		{"content/build/a.md", false},
		{"content/build.md", false},
		{"builds/a.md", false},
		{"content/a/build", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, underTopDir(tt.path, "build"))
		})
	}
}
