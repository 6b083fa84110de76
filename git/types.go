package git

import (
	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository wraps a go-git repository together with the billy filesystem
// it was opened on. A Repository is not safe for concurrent writers.
type Repository struct {
	path string
	repo *gogit.Repository
	fs   billy.Filesystem
}

// CommitOptions describes a commit written directly to the object store.
type CommitOptions struct {
	// Tree is the root tree of the commit.
	Tree plumbing.Hash
	// Parents are the parent commits in order; the first parent is the
	// previous head.
	Parents []plumbing.Hash
	// Message is the full commit message.
	Message string
	// Signature is used as both author and committer. A zero When is
	// replaced with the current time.
	Signature object.Signature
}

// RepositoryOption configures Init, Open and OpenOrInit.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	fs billy.Filesystem
}

// WithFilesystem sets the billy filesystem holding the repository. The
// repository path is interpreted relative to its root. Defaults to the OS
// filesystem rooted at "/".
//
// Example:
//
//	repo, err := git.Init("/repo", git.WithFilesystem(memfs.New()))
func WithFilesystem(fs billy.Filesystem) RepositoryOption {
	return func(opts *repositoryOptions) {
		opts.fs = fs
	}
}
