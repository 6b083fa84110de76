package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/eips-wg/preprocessor/errors"
)

// SetBranch force-points refs/heads/<name> at hash, creating it if needed.
func (r *Repository) SetBranch(name string, hash plumbing.Hash) error {
	if name == "" {
		return errors.New(errors.CodeInvalidInput, "branch name is required")
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), hash)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return wrapError(err, fmt.Sprintf("failed to update branch %q", name))
	}
	return nil
}

// DeleteBranch removes refs/heads/<name>. Deleting a missing branch is not
// an error.
func (r *Repository) DeleteBranch(name string) error {
	if name == "" {
		return errors.New(errors.CodeInvalidInput, "branch name is required")
	}

	if err := r.repo.Storer.RemoveReference(plumbing.NewBranchReferenceName(name)); err != nil {
		return wrapError(err, fmt.Sprintf("failed to delete branch %q", name))
	}
	return nil
}

// HasBranch reports whether refs/heads/<name> exists.
func (r *Repository) HasBranch(name string) bool {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), false)
	return err == nil
}

// DetachHead points HEAD directly at hash.
func (r *Repository) DetachHead(hash plumbing.Hash) error {
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, hash)); err != nil {
		return wrapError(err, "failed to detach HEAD")
	}
	return nil
}

// SetHeadBranch makes HEAD a symbolic ref to refs/heads/<name>.
func (r *Repository) SetHeadBranch(name string) error {
	ref := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(name))
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return wrapError(err, "failed to update HEAD")
	}
	return nil
}

// UpdateHead moves HEAD to hash. When HEAD is symbolic the branch it points
// to is moved; a detached HEAD is moved directly.
func (r *Repository) UpdateHead(hash plumbing.Hash) error {
	head, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return wrapError(err, "failed to read HEAD")
	}

	name := plumbing.HEAD
	if head.Type() == plumbing.SymbolicReference {
		name = head.Target()
	}

	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(name, hash)); err != nil {
		return wrapErrorWithContext(err, "failed to move HEAD", map[string]interface{}{"ref": name.String()})
	}
	return nil
}
