// Package layout knows where things live inside a proposal repository and
// its build directory.
//
//	<root>/
//	├── .git/
//	├── content/          proposals (content/<n>.md or content/<n>/index.md)
//	└── build/
//	    ├── .lock         held for the duration of a run
//	    ├── repo/         merged working copy
//	    └── output/       rendered site
package layout

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/samber/lo"

	"github.com/eips-wg/preprocessor/errors"
)

// Directory and file names.
const (
	ContentDir = "content"
	BuildDir   = "build"
	RepoDir    = "repo"
	OutputDir  = "output"
	LockFile   = ".lock"
	GitDir     = ".git"
)

// BuildPath returns <root>/build.
func BuildPath(root string) string {
	return filepath.Join(root, BuildDir)
}

// RepoPath returns <root>/build/repo.
func RepoPath(root string) string {
	return filepath.Join(root, BuildDir, RepoDir)
}

// OutputPath returns <root>/build/output.
func OutputPath(root string) string {
	return filepath.Join(root, BuildDir, OutputDir)
}

// LockPath returns <root>/build/.lock.
func LockPath(root string) string {
	return filepath.Join(root, BuildDir, LockFile)
}

// IsRoot reports whether dir on fs contains both a .git and a content
// directory.
func IsRoot(fs billy.Filesystem, dir string) bool {
	return lo.EveryBy([]string{GitDir, ContentDir}, func(name string) bool {
		info, err := fs.Stat(path.Join(dir, name))
		return err == nil && info.IsDir()
	})
}

// FindRoot walks up from start on the OS filesystem until it finds a
// project root. Returns NOT_FOUND when no ancestor qualifies.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeFilesystem, "failed to resolve start directory")
	}

	root, err := FindRootFS(osfs.New("/"), filepath.ToSlash(abs))
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(root), nil
}

// FindRootFS is FindRoot over an arbitrary filesystem. start must be an
// absolute slash-separated path.
func FindRootFS(fs billy.Filesystem, start string) (string, error) {
	dir := path.Clean(start)
	for {
		if IsRoot(fs, dir) {
			return dir, nil
		}

		parent := path.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.WithContext(
		errors.Newf(errors.CodeNotFound, "no directory containing %s and %s found above %s", GitDir, ContentDir, start),
		"start", start,
	)
}

// IsProposalPath reports whether p, relative to the repository root, is a
// proposal document: content/<number>.md or content/<number>/index.md.
func IsProposalPath(p string) bool {
	parts := strings.Split(filepath.ToSlash(path.Clean(p)), "/")
	if len(parts) < 2 || parts[0] != ContentDir {
		return false
	}

	switch len(parts) {
	case 2:
		num, ok := strings.CutSuffix(parts[1], ".md")
		return ok && isNumber(num)
	case 3:
		return isNumber(parts[1]) && parts[2] == "index.md"
	default:
		return false
	}
}

func isNumber(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
