package git

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/eips-wg/preprocessor/errors"
)

// ResolveCommit resolves a revision (full or abbreviated hash, branch, ref
// name or HEAD) to a commit. Returns NOT_FOUND if the revision does not name
// a commit in this repository and INVALID_INPUT if it does not parse.
func (r *Repository) ResolveCommit(rev string) (*object.Commit, error) {
	if rev == "" {
		return nil, errors.New(errors.CodeInvalidInput, "revision is required")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		code := classifyError(err)
		if code == errors.CodeInternal {
			// go-git reports syntax errors with an internal type.
			code = errors.CodeInvalidInput
		}
		return nil, errors.WrapWithContext(err, code, "failed to resolve revision",
			map[string]interface{}{"revision": rev})
	}

	return r.CommitObject(*hash)
}

// CommitObject loads the commit with the given hash.
func (r *Repository) CommitObject(hash plumbing.Hash) (*object.Commit, error) {
	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, wrapErrorWithContext(err, "failed to load commit", map[string]interface{}{"commit": hash.String()})
	}
	return commit, nil
}

// Head returns the commit HEAD currently resolves to.
func (r *Repository) Head() (*object.Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, wrapError(err, "failed to resolve HEAD")
	}
	return r.CommitObject(ref.Hash())
}

// WriteCommit writes a commit object straight to the object store without
// touching refs, the index or the working tree. At least one parent is
// required.
//
// Example:
//
//	hash, err := repo.WriteCommit(git.CommitOptions{
//	    Tree:      merged.Hash,
//	    Parents:   []plumbing.Hash{localHead, otherHead},
//	    Message:   "Merge https://github.com/ethereum/ERCs.git",
//	    Signature: object.Signature{Name: "eips-build", Email: "eips-build@eips-build.invalid"},
//	})
func (r *Repository) WriteCommit(opts CommitOptions) (plumbing.Hash, error) {
	if len(opts.Parents) == 0 {
		return plumbing.ZeroHash, errors.New(errors.CodeInvalidInput, "commit requires at least one parent")
	}
	if opts.Tree.IsZero() {
		return plumbing.ZeroHash, errors.New(errors.CodeInvalidInput, "commit requires a tree")
	}

	sig := opts.Signature
	if sig.When.IsZero() {
		sig.When = time.Now()
	}

	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      opts.Message,
		TreeHash:     opts.Tree,
		ParentHashes: opts.Parents,
	}

	obj := r.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, wrapError(err, "failed to encode commit")
	}

	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, wrapError(err, "failed to store commit")
	}

	return hash, nil
}
