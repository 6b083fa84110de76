package git

import (
	"context"
	stderrors "errors"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/progress"
)

const (
	// anonymousRemote names the in-memory remote used by FetchCommit. It is
	// never written to the repository configuration.
	anonymousRemote = "anonymous"

	// FetchHead is the ref holding the tip of the most recent FetchCommit.
	FetchHead plumbing.ReferenceName = "FETCH_HEAD"

	// scratchRef receives the fetched tip before it is published. go-git
	// only writes fetch destinations under refs/.
	scratchRef plumbing.ReferenceName = "refs/eips-build/fetch"
)

// FetchCommit fetches a single ref from url and returns the fetched tip.
//
// The refspec has the form "src" or "src:dst". A src of "HEAD" fetches the
// branch the remote's HEAD points at; any other short name is expanded to
// refs/heads/<name>. The tip is written to FETCH_HEAD and, when dst is given,
// force-written to refs/heads/<dst>. url may be a remote URL or a local path.
// No credentials are sent and tags are not fetched.
//
// Transfer progress is parsed from the remote's sideband output and sent to
// rep, which may be nil. Any failure is reported as FETCH_FAILED with the
// url in the error context.
//
// Example:
//
//	tip, err := repo.FetchCommit(ctx, "https://github.com/ethereum/ERCs.git", "master:master-other", nil)
func (r *Repository) FetchCommit(ctx context.Context, url, refspec string, rep progress.Reporter) (*object.Commit, error) {
	if rep == nil {
		rep = progress.Nop()
	}

	src, dst, err := parseRefspec(refspec)
	if err != nil {
		return nil, fetchError(err, url, refspec)
	}

	remote := gogit.NewRemote(r.repo.Storer, &config.RemoteConfig{
		Name: anonymousRemote,
		URLs: []string{url},
	})

	advertised, err := remote.ListContext(ctx, &gogit.ListOptions{})
	if err != nil {
		return nil, fetchError(err, url, refspec)
	}

	src, err = resolveAdvertised(advertised, src)
	if err != nil {
		return nil, fetchError(err, url, refspec)
	}

	err = remote.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: anonymousRemote,
		RefSpecs:   []config.RefSpec{config.RefSpec("+" + src.String() + ":" + scratchRef.String())},
		Progress:   progress.NewSidebandWriter(rep),
		Tags:       gogit.NoTags,
	})
	rep.Done()
	if err != nil && !stderrors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil, fetchError(err, url, refspec)
	}

	ref, err := r.repo.Reference(scratchRef, true)
	if err != nil {
		return nil, fetchError(err, url, refspec)
	}
	tip := ref.Hash()

	if err := r.repo.Storer.RemoveReference(scratchRef); err != nil {
		return nil, wrapError(err, "failed to remove "+scratchRef.String())
	}

	targets := []plumbing.ReferenceName{FetchHead}
	if dst != "" && dst != FetchHead {
		targets = append(targets, dst)
	}
	for _, name := range targets {
		if err := r.repo.Storer.SetReference(plumbing.NewHashReference(name, tip)); err != nil {
			return nil, wrapError(err, "failed to update "+name.String())
		}
	}

	commit, err := r.repo.CommitObject(tip)
	if err != nil {
		return nil, fetchError(err, url, refspec)
	}

	return commit, nil
}

// resolveAdvertised returns the name to fetch for src. A symbolic HEAD is
// followed to its branch because go-git skips symbolic refs when updating
// fetch destinations.
func resolveAdvertised(refs []*plumbing.Reference, src plumbing.ReferenceName) (plumbing.ReferenceName, error) {
	byName := make(map[plumbing.ReferenceName]*plumbing.Reference, len(refs))
	for _, ref := range refs {
		byName[ref.Name()] = ref
	}

	for range len(refs) + 1 {
		ref, ok := byName[src]
		if !ok {
			return "", errors.WithContext(
				errors.New(errors.CodeNotFound, "remote does not advertise "+src.String()),
				"ref", src.String())
		}
		if ref.Type() != plumbing.SymbolicReference {
			return src, nil
		}
		src = ref.Target()
	}

	return "", errors.New(errors.CodeInvalidInput, "symbolic reference loop at "+src.String())
}

func fetchError(err error, url, refspec string) error {
	return errors.WrapWithContext(err, errors.CodeFetchFailed, "failed to fetch "+refspec, map[string]interface{}{
		"url":     url,
		"refspec": refspec,
	})
}

// parseRefspec splits "src[:dst]" and expands short names. A leading "+" is
// accepted and ignored because every fetch is forced.
func parseRefspec(refspec string) (src, dst plumbing.ReferenceName, err error) {
	spec := strings.TrimPrefix(refspec, "+")
	left, right, hasDst := strings.Cut(spec, ":")
	if left == "" || (hasDst && right == "") || strings.Contains(right, ":") {
		return "", "", errors.Newf(errors.CodeInvalidInput, "invalid refspec %q", refspec)
	}

	src = expandRef(left)
	if hasDst {
		dst = expandRef(right)
	}
	return src, dst, nil
}

func expandRef(name string) plumbing.ReferenceName {
	switch {
	case name == plumbing.HEAD.String(), name == FetchHead.String():
		return plumbing.ReferenceName(name)
	case strings.HasPrefix(name, "refs/"):
		return plumbing.ReferenceName(name)
	default:
		return plumbing.NewBranchReferenceName(name)
	}
}
