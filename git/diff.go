package git

import (
	"context"
	"slices"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/samber/lo"

	"github.com/eips-wg/preprocessor/errors"
)

// MergeBase returns the best common ancestor of a and b. Returns NOT_FOUND
// when the histories are unrelated.
func (r *Repository) MergeBase(a, b plumbing.Hash) (plumbing.Hash, error) {
	ca, err := r.CommitObject(a)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	cb, err := r.CommitObject(b)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	bases, err := ca.MergeBase(cb)
	if err != nil {
		return plumbing.ZeroHash, wrapError(err, "failed to compute merge base")
	}
	if len(bases) == 0 {
		err := errors.New(errors.CodeNotFound, "histories are unrelated: no merge base")
		return plumbing.ZeroHash, errors.WithContext(errors.WithContext(err, "a", a.String()), "b", b.String())
	}

	return bases[0].Hash, nil
}

// ChangedFiles lists the paths changed on b's side since it diverged from
// a: the merge base of a and b is diffed against b, so changes made only on
// a's side are not reported. Added and modified files report their new
// path, deleted files their old path. The result is sorted and free of
// duplicates.
func (r *Repository) ChangedFiles(ctx context.Context, a, b plumbing.Hash) ([]string, error) {
	base, err := r.MergeBase(a, b)
	if err != nil {
		return nil, err
	}

	baseCommit, err := r.CommitObject(base)
	if err != nil {
		return nil, err
	}
	baseTree, err := baseCommit.Tree()
	if err != nil {
		return nil, wrapError(err, "failed to load merge base tree")
	}

	headCommit, err := r.CommitObject(b)
	if err != nil {
		return nil, err
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, wrapError(err, "failed to load tree")
	}

	changes, err := object.DiffTreeWithOptions(ctx, baseTree, headTree, &object.DiffTreeOptions{DetectRenames: false})
	if err != nil {
		return nil, wrapError(err, "failed to diff trees")
	}

	paths := lo.Map(changes, func(ch *object.Change, _ int) string {
		if ch.To.Name != "" {
			return ch.To.Name
		}
		return ch.From.Name
	})
	paths = lo.Uniq(paths)
	slices.Sort(paths)

	return paths, nil
}
