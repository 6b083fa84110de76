package git

import (
	"path"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func newMemRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Init("/repo", WithFilesystem(memfs.New()))
	require.NoError(t, err)
	return repo
}

func writeFile(t *testing.T, repo *Repository, name, content string) {
	t.Helper()
	if dir := path.Dir(name); dir != "." {
		require.NoError(t, repo.Filesystem().MkdirAll(dir, 0o755))
	}
	require.NoError(t, util.WriteFile(repo.Filesystem(), name, []byte(content), 0o644))
}

func commitFiles(t *testing.T, repo *Repository, files map[string]string, message string) plumbing.Hash {
	t.Helper()

	wt, err := repo.Underlying().Worktree()
	require.NoError(t, err)

	for name, content := range files {
		writeFile(t, repo, name, content)
		_, err := wt.Add(name)
		require.NoError(t, err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:            &object.Signature{Name: "Test User", Email: "test@example.com"},
		AllowEmptyCommits: true,
	})
	require.NoError(t, err)
	return hash
}

func removeFiles(t *testing.T, repo *Repository, names ...string) plumbing.Hash {
	t.Helper()

	wt, err := repo.Underlying().Worktree()
	require.NoError(t, err)
	for _, name := range names {
		_, err := wt.Remove(name)
		require.NoError(t, err)
	}

	hash, err := wt.Commit("remove files", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com"},
	})
	require.NoError(t, err)
	return hash
}

// switchBranch points HEAD at refs/heads/<name>, creating the branch at from,
// and forcibly checks it out.
func switchBranch(t *testing.T, repo *Repository, name string, from plumbing.Hash) {
	t.Helper()

	require.NoError(t, repo.SetBranch(name, from))
	require.NoError(t, repo.SetHeadBranch(name))
	require.NoError(t, repo.ForceCheckout(true))
}
