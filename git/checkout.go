package git

import (
	stderrors "errors"
	"path"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// gitModulesFile is the file declaring submodules.
const gitModulesFile = ".gitmodules"

// ForceCheckout resets the index and working tree to HEAD, discarding local
// modifications. When clean is set, every file not tracked by HEAD is
// removed too, including files matched by .gitignore, along with the
// directories left empty.
func (r *Repository) ForceCheckout(clean bool) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return wrapError(err, "failed to get worktree")
	}

	head, err := r.repo.Head()
	if err != nil {
		return wrapError(err, "failed to resolve HEAD")
	}

	if err := wt.Reset(&gogit.ResetOptions{Commit: head.Hash(), Mode: gogit.HardReset}); err != nil {
		return wrapError(err, "failed to check out HEAD")
	}

	if clean {
		commit, err := r.CommitObject(head.Hash())
		if err != nil {
			return err
		}
		tracked, err := trackedFiles(commit)
		if err != nil {
			return err
		}
		if _, err := r.removeUntracked("", tracked); err != nil {
			return wrapError(err, "failed to remove untracked files")
		}
	}

	return nil
}

func trackedFiles(commit *object.Commit) (map[string]bool, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, wrapError(err, "failed to load commit tree")
	}

	tracked := make(map[string]bool)
	err = tree.Files().ForEach(func(f *object.File) error {
		tracked[f.Name] = true
		return nil
	})
	if err != nil {
		return nil, wrapError(err, "failed to list tracked files")
	}
	return tracked, nil
}

// removeUntracked deletes files under dir that are not in tracked and
// reports whether dir ended up empty. The .git directory is never touched.
func (r *Repository) removeUntracked(dir string, tracked map[string]bool) (bool, error) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return false, err
	}

	remaining := 0
	for _, fi := range entries {
		p := path.Join(dir, fi.Name())
		if p == gogit.GitDirName {
			remaining++
			continue
		}

		if fi.IsDir() {
			empty, err := r.removeUntracked(p, tracked)
			if err != nil {
				return false, err
			}
			if !empty {
				remaining++
				continue
			}
			if err := r.fs.Remove(p); err != nil {
				return false, err
			}
			continue
		}

		if tracked[p] {
			remaining++
			continue
		}
		if err := r.fs.Remove(p); err != nil {
			return false, err
		}
	}

	return remaining == 0, nil
}

// CheckoutDetached detaches HEAD at hash and forcibly checks it out.
func (r *Repository) CheckoutDetached(hash plumbing.Hash) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return wrapError(err, "failed to get worktree")
	}

	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return wrapErrorWithContext(err, "failed to check out commit", map[string]interface{}{"commit": hash.String()})
	}
	return nil
}

// HasSubmodules reports whether the commit's tree declares submodules.
func (r *Repository) HasSubmodules(commit *object.Commit) (bool, error) {
	tree, err := commit.Tree()
	if err != nil {
		return false, wrapError(err, "failed to load commit tree")
	}

	if _, err := tree.FindEntry(gitModulesFile); err != nil {
		if stderrors.Is(err, object.ErrEntryNotFound) || stderrors.Is(err, object.ErrDirectoryNotFound) {
			return false, nil
		}
		return false, wrapError(err, "failed to look up "+gitModulesFile)
	}

	return true, nil
}

