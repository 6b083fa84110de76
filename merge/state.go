package merge

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/family"
	"github.com/eips-wg/preprocessor/git"
	"github.com/eips-wg/preprocessor/layout"
	"github.com/eips-wg/preprocessor/progress"
)

const (
	// MasterBranch is the branch the build repository works on.
	MasterBranch = "master"

	// OtherBranch is the scratch branch other families are fetched into.
	OtherBranch = "master-other"
)

// FreshOptions configures NewFresh.
type FreshOptions struct {
	// SourcePath is the root of the local working copy.
	SourcePath string

	// TargetPath is where the build repository lives. It is created if
	// missing.
	TargetPath string

	// BuildDirName is ignored by the dirty check. Defaults to "build".
	BuildDirName string

	// ContentRoot is the subtree merged from other families. Defaults to
	// "content".
	ContentRoot string

	Locations family.Locations
	Logger    *slog.Logger
	Progress  progress.Reporter
}

// state is shared by every stage of the pipeline.
type state struct {
	sourcePath  string
	contentRoot string
	use         family.Use
	locs        family.Locations
	target      *git.Repository
	logger      *slog.Logger
	progress    progress.Reporter
}

// Path returns the path of the build repository checkout.
func (s *state) Path() string {
	return s.target.Path()
}

// Family returns the family of the source repository.
func (s *state) Family() family.Use {
	return s.use
}

// Repository returns the build repository.
func (s *state) Repository() *git.Repository {
	return s.target
}

func (s *state) location(u family.Use) (family.Location, error) {
	loc, ok := s.locs[u]
	if !ok {
		return family.Location{}, errors.Newf(errors.CodeInvalidConfig, "no location configured for %s", u)
	}
	return loc, nil
}

// Fresh is a verified source working copy and an opened build repository.
type Fresh struct {
	state
}

// NewFresh checks that the source working copy is clean apart from the
// build directory, identifies its family and opens (or creates) the build
// repository. Nothing is written to the source repository.
func NewFresh(ctx context.Context, opts FreshOptions) (*Fresh, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Progress == nil {
		opts.Progress = progress.Nop()
	}
	if opts.BuildDirName == "" {
		opts.BuildDirName = layout.BuildDir
	}
	if opts.ContentRoot == "" {
		opts.ContentRoot = layout.ContentDir
	}
	if opts.SourcePath == "" || opts.TargetPath == "" {
		return nil, errors.New(errors.CodeInvalidInput, "source and target paths are required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeTimeout, "context done before start")
	}

	source, err := git.Open(opts.SourcePath)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("checking working copy", "path", source.Path())
	if err := source.CheckDirty(opts.BuildDirName); err != nil {
		return nil, err
	}

	use, err := family.IdentifyPath(source.Path(), opts.Locations)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("identified repository", "family", use.String())

	target, err := git.OpenOrInit(opts.TargetPath)
	if err != nil {
		return nil, err
	}

	return &Fresh{state: state{
		sourcePath:  source.Path(),
		contentRoot: opts.ContentRoot,
		use:         use,
		locs:        opts.Locations,
		target:      target,
		logger:      opts.Logger,
		progress:    opts.Progress,
	}}, nil
}

// CloneSource copies the source HEAD into the build repository, points
// master at it and checks it out, removing anything left over from an
// earlier run. Repositories with submodules are rejected.
func (f *Fresh) CloneSource(ctx context.Context) (*SourceOnly, error) {
	f.logger.Info("copying working copy", "from", f.sourcePath, "to", f.target.Path())

	tip, err := f.target.FetchCommit(ctx, f.sourcePath, "HEAD", f.progress)
	if err != nil {
		return nil, err
	}

	// Detach first so master can be moved even when it is checked out.
	if err := f.target.DetachHead(tip.Hash); err != nil {
		return nil, err
	}
	if err := f.target.SetBranch(MasterBranch, tip.Hash); err != nil {
		return nil, err
	}
	if err := f.target.SetHeadBranch(MasterBranch); err != nil {
		return nil, err
	}

	submodules, err := f.target.HasSubmodules(tip)
	if err != nil {
		return nil, err
	}
	if submodules {
		return nil, errors.WithContext(
			errors.New(errors.CodeNotImplemented, "repositories with submodules are not supported"),
			"commit", tip.Hash.String(),
		)
	}

	if err := f.target.ForceCheckout(true); err != nil {
		return nil, err
	}

	return &SourceOnly{state: f.state, head: tip.Hash}, nil
}

// SourceOnly is a build repository holding a copy of the source HEAD.
type SourceOnly struct {
	state
	head plumbing.Hash
}

// Head returns the local head commit.
func (s *SourceOnly) Head() plumbing.Hash {
	return s.head
}

// FetchUpstream fetches master from the canonical repository of the
// source's family.
func (s *SourceOnly) FetchUpstream(ctx context.Context) (*SourceWithUpstream, error) {
	loc, err := s.location(s.use)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fetching upstream", "family", s.use.String(), "url", loc.Repository)
	upstream, err := s.target.FetchCommit(ctx, loc.Repository, MasterBranch, s.progress)
	if err != nil {
		return nil, err
	}

	return &SourceWithUpstream{
		state:    s.state,
		local:    s.head,
		head:     s.head,
		upstream: upstream.Hash,
	}, nil
}

// SourceWithUpstream knows both the local head and the upstream head.
type SourceWithUpstream struct {
	state
	// local is the head cloned from the working copy; head starts there and
	// advances with every merge commit.
	local    plumbing.Hash
	head     plumbing.Hash
	upstream plumbing.Hash
}

// Head returns the current head of the build repository. It moves with
// every merge.
func (s *SourceWithUpstream) Head() plumbing.Hash {
	return s.head
}

// Local returns the head cloned from the working copy, before any merge.
func (s *SourceWithUpstream) Local() plumbing.Hash {
	return s.local
}

// Upstream returns the upstream head.
func (s *SourceWithUpstream) Upstream() plumbing.Hash {
	return s.upstream
}

// ChangedFiles lists the paths changed on the local side since it diverged
// from upstream, relative to the repository root. Merges do not affect the
// result.
func (s *SourceWithUpstream) ChangedFiles(ctx context.Context) ([]string, error) {
	return s.target.ChangedFiles(ctx, s.upstream, s.local)
}

// ChangedPaths is ChangedFiles joined onto the checkout path.
func (s *SourceWithUpstream) ChangedPaths(ctx context.Context) ([]string, error) {
	files, err := s.ChangedFiles(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(s.Path(), filepath.FromSlash(f))
	}
	return paths, nil
}

// Merge folds the content root of every other family into the local head,
// one merge commit per family. On conflict nothing is committed for that
// family and HEAD stays where it was.
func (s *SourceWithUpstream) Merge(ctx context.Context) error {
	composer := NewComposer(s.target, s.logger)

	for _, other := range s.use.Others() {
		if err := s.mergeOne(ctx, composer, other); err != nil {
			return err
		}
	}
	return nil
}

func (s *SourceWithUpstream) mergeOne(ctx context.Context, composer *Composer, other family.Use) (err error) {
	loc, err := s.location(other)
	if err != nil {
		return err
	}

	s.logger.Info("merging", "family", other.String(), "url", loc.Repository)
	theirs, err := s.target.FetchCommit(ctx, loc.Repository, MasterBranch+":"+OtherBranch, s.progress)
	if err != nil {
		return err
	}
	defer func() {
		if derr := s.target.DeleteBranch(OtherBranch); derr != nil {
			if err == nil {
				err = derr
				return
			}
			s.logger.Warn("failed to delete scratch branch", "branch", OtherBranch, "error", derr)
		}
	}()

	ours, err := s.target.CommitObject(s.head)
	if err != nil {
		return err
	}

	base, incoming, err := trees(ours, theirs)
	if err != nil {
		return err
	}

	merged, err := MergeInto(s.target.Underlying().Storer, base, incoming, s.contentRoot, s.logger)
	if err != nil {
		return err
	}

	hash, err := composer.Commit(merged, []plumbing.Hash{s.head, theirs.Hash}, "Merge "+loc.Repository)
	if err != nil {
		return err
	}

	s.head = hash
	return nil
}

func trees(ours, theirs *object.Commit) (*object.Tree, *object.Tree, error) {
	base, err := ours.Tree()
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeMalformedTree, "failed to read local tree")
	}
	incoming, err := theirs.Tree()
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeMalformedTree, "failed to read incoming tree")
	}
	return base, incoming, nil
}
