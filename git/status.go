package git

import (
	"slices"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/eips-wg/preprocessor/errors"
)

// CheckDirty fails with DIRTY when the working tree has staged, modified or
// untracked files. Paths under excludeDir at the top of the working tree
// (typically the build directory) are ignored; a directory of the same name
// deeper in the tree is checked like any other. Ignored
// files according to .gitignore never count. The offending paths are listed
// in the "paths" context field.
func (r *Repository) CheckDirty(excludeDir string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return wrapError(err, "failed to get worktree")
	}

	if excludeDir != "" {
		wt.Excludes = append(wt.Excludes, gitignore.ParsePattern("/"+excludeDir+"/", nil))
	}

	status, err := wt.Status()
	if err != nil {
		return wrapError(err, "failed to compute worktree status")
	}

	var dirty []string
	for path, st := range status {
		if st.Staging == gogit.Unmodified && st.Worktree == gogit.Unmodified {
			continue
		}
		if excludeDir != "" && underTopDir(path, excludeDir) {
			continue
		}
		dirty = append(dirty, path)
	}

	if len(dirty) == 0 {
		return nil
	}

	slices.Sort(dirty)
	err = errors.Newf(errors.CodeDirty, "repository is dirty: %s", strings.Join(dirty, ", "))
	return errors.WithContext(errors.WithContext(err, "paths", dirty), "path", r.path)
}

// underTopDir reports whether path is dir itself or lies beneath it, with
// dir taken as the first path component.
func underTopDir(path, dir string) bool {
	first, _, _ := strings.Cut(path, "/")
	return first == dir
}
