// Package testutil provides repository fixtures for tests: in-memory
// repositories for fast unit tests and on-disk repositories for anything
// that fetches through a local path.
package testutil

import (
	"path"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/eips-wg/preprocessor/git"
)

// NewMemoryRepo creates a repository on an in-memory filesystem. The
// returned filesystem is the repository working tree.
func NewMemoryRepo() (*git.Repository, billy.Filesystem, error) {
	repo, err := git.Init("/", git.WithFilesystem(memfs.New()))
	if err != nil {
		//nolint:wrapcheck // test utility
		return nil, nil, err
	}

	return repo, repo.Filesystem(), nil
}

// NewDiskRepo creates a repository in a fresh temporary directory and
// returns it with its path. The directory is removed when the test ends.
func NewDiskRepo(t testing.TB) (*git.Repository, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.Init(dir)
	if err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}

	return repo, dir
}

// WriteFile writes content to path in fs, creating parent directories.
func WriteFile(fs billy.Filesystem, name, content string) error {
	if dir := path.Dir(name); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			//nolint:wrapcheck // test utility
			return err
		}
	}
	//nolint:wrapcheck // test utility
	return util.WriteFile(fs, name, []byte(content), 0o644)
}

// CommitFiles writes files into the repository working tree, stages them
// and commits them on the current branch. Files are written in path order
// so the resulting tree is deterministic.
func CommitFiles(repo *git.Repository, files map[string]string, message string) (plumbing.Hash, error) {
	wt, err := repo.Underlying().Worktree()
	if err != nil {
		//nolint:wrapcheck // test utility
		return plumbing.ZeroHash, err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := WriteFile(repo.Filesystem(), name, files[name]); err != nil {
			return plumbing.ZeroHash, err
		}
		if _, err := wt.Add(name); err != nil {
			//nolint:wrapcheck // test utility
			return plumbing.ZeroHash, err
		}
	}

	return commit(wt, message)
}

// RemoveFiles deletes files from the working tree and commits the removal.
func RemoveFiles(repo *git.Repository, names []string, message string) (plumbing.Hash, error) {
	wt, err := repo.Underlying().Worktree()
	if err != nil {
		//nolint:wrapcheck // test utility
		return plumbing.ZeroHash, err
	}

	for _, name := range names {
		if _, err := wt.Remove(name); err != nil {
			//nolint:wrapcheck // test utility
			return plumbing.ZeroHash, err
		}
	}

	return commit(wt, message)
}

func commit(wt *gogit.Worktree, message string) (plumbing.Hash, error) {
	//nolint:wrapcheck // test utility
	return wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  TestAuthor,
			Email: TestEmail,
		},
		AllowEmptyCommits: true,
	})
}
