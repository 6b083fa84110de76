package git

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/eips-wg/preprocessor/errors"
)

func applyOptions(path string, opts []RepositoryOption) (*repositoryOptions, string, error) {
	options := &repositoryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.fs == nil {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, "", wrapError(err, "failed to resolve repository path")
		}
		path = abs
		options.fs = osfs.New("/")
	}

	return options, path, nil
}

// Init creates a new repository at path.
//
// Without options, Init creates a standard repository (with a .git
// directory) on the OS filesystem. Init fails with ALREADY_EXISTS when a
// repository is already present.
//
// Examples:
//
//	repo, err := git.Init("/path/to/repo")
//	repo, err := git.Init("/repo", git.WithFilesystem(memfs.New()))
func Init(path string, opts ...RepositoryOption) (*Repository, error) {
	options, path, err := applyOptions(path, opts)
	if err != nil {
		return nil, err
	}

	if err := options.fs.MkdirAll(path, 0o755); err != nil {
		return nil, wrapError(err, "failed to create repository directory")
	}

	scopedFs, err := options.fs.Chroot(path)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to path")
	}

	dotGitFs, err := scopedFs.Chroot(gogit.GitDirName)
	if err != nil {
		return nil, wrapError(err, "failed to create .git filesystem")
	}

	storage := filesystem.NewStorage(dotGitFs, cache.NewObjectLRUDefault())
	repo, err := gogit.Init(storage, scopedFs)
	if err != nil {
		return nil, wrapError(err, "failed to initialize repository")
	}

	return &Repository{path: path, repo: repo, fs: scopedFs}, nil
}

// Open opens an existing repository with a working tree at path. Fails with
// NOT_FOUND when path has no .git directory.
func Open(path string, opts ...RepositoryOption) (*Repository, error) {
	options, path, err := applyOptions(path, opts)
	if err != nil {
		return nil, err
	}

	scopedFs, err := options.fs.Chroot(path)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to path")
	}

	if stat, err := scopedFs.Stat(gogit.GitDirName); err != nil || !stat.IsDir() {
		return nil, wrapErrorWithContext(gogit.ErrRepositoryNotExists, "failed to open repository",
			map[string]interface{}{"path": path})
	}

	dotGitFs, err := scopedFs.Chroot(gogit.GitDirName)
	if err != nil {
		return nil, wrapError(err, "failed to scope filesystem to .git")
	}

	storage := filesystem.NewStorage(dotGitFs, cache.NewObjectLRUDefault())
	repo, err := gogit.Open(storage, scopedFs)
	if err != nil {
		return nil, wrapError(err, "failed to open repository at "+path)
	}

	return &Repository{path: path, repo: repo, fs: scopedFs}, nil
}

// OpenOrInit opens the repository at path, initializing it first if none
// exists.
func OpenOrInit(path string, opts ...RepositoryOption) (*Repository, error) {
	repo, err := Open(path, opts...)
	if err == nil {
		return repo, nil
	}
	if errors.GetCode(err) != errors.CodeNotFound {
		return nil, err
	}
	return Init(path, opts...)
}

// Path returns the repository path as given to Init or Open (made absolute
// when the OS filesystem is used).
func (r *Repository) Path() string {
	return r.path
}

// Underlying returns the go-git repository for operations not covered by
// this wrapper.
func (r *Repository) Underlying() *gogit.Repository {
	return r.repo
}

// Filesystem returns the working tree filesystem.
func (r *Repository) Filesystem() billy.Filesystem {
	return r.fs
}
