package git

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eips-wg/preprocessor/errors"
)

func TestInit_StandardRepository(t *testing.T) {
	fs := memfs.New()

	repo, err := Init("/test-repo", WithFilesystem(fs))
	require.NoError(t, err)
	assert.Equal(t, "/test-repo", repo.Path())
	assert.NotNil(t, repo.Underlying())

	stat, err := fs.Stat("/test-repo/.git")
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	_, err = repo.Underlying().Worktree()
	require.NoError(t, err)
}

func TestInit_AlreadyExists(t *testing.T) {
	fs := memfs.New()

	_, err := Init("/test-repo", WithFilesystem(fs))
	require.NoError(t, err)

	_, err = Init("/test-repo", WithFilesystem(fs))
	require.Error(t, err)
	assert.Equal(t, errors.CodeAlreadyExists, errors.GetCode(err))
}

func TestInit_OSFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "repo")

	repo, err := Init(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Path())
	assert.DirExists(t, filepath.Join(dir, ".git"))
}

func TestOpen_ExistingRepository(t *testing.T) {
	fs := memfs.New()
	created, err := Init("/test-repo", WithFilesystem(fs))
	require.NoError(t, err)
	hash := commitFiles(t, created, map[string]string{"README.md": "hello\n"}, "initial")

	repo, err := Open("/test-repo", WithFilesystem(fs))
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, hash, head.Hash)
}

func TestOpen_WithoutGitDir(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/plain/refs", 0o755))

	_, err := Open("/plain", WithFilesystem(fs))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestOpen_NonExistentRepository(t *testing.T) {
	_, err := Open("/missing", WithFilesystem(memfs.New()))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestOpenOrInit(t *testing.T) {
	fs := memfs.New()

	first, err := OpenOrInit("/repo", WithFilesystem(fs))
	require.NoError(t, err)
	hash := commitFiles(t, first, map[string]string{"a.txt": "a"}, "initial")

	second, err := OpenOrInit("/repo", WithFilesystem(fs))
	require.NoError(t, err)

	head, err := second.Head()
	require.NoError(t, err)
	assert.Equal(t, hash, head.Hash)
}
