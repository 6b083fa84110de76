package cli

import (
	"context"

	"github.com/eips-wg/preprocessor/layout"
	"github.com/eips-wg/preprocessor/merge"
	"github.com/eips-wg/preprocessor/progress"
)

func (a *app) progress() progress.Reporter {
	return progress.NewLogReporter(a.logger)
}

// prepare copies the working copy into build/repo and fetches upstream.
func (a *app) prepare(ctx context.Context, root string) (*merge.SourceWithUpstream, error) {
	locs, err := a.cfg.FamilyLocations()
	if err != nil {
		return nil, err
	}

	fresh, err := merge.NewFresh(ctx, merge.FreshOptions{
		SourcePath: root,
		TargetPath: layout.RepoPath(root),
		Locations:  locs,
		Logger:     a.logger,
		Progress:   a.progress(),
	})
	if err != nil {
		return nil, err
	}

	only, err := fresh.CloneSource(ctx)
	if err != nil {
		return nil, err
	}

	up, err := only.FetchUpstream(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("prepared", "local", up.Local().String(), "upstream", up.Upstream().String())
	return up, nil
}

// prepareMerged is prepare followed by merging the other families.
func (a *app) prepareMerged(ctx context.Context, root string) (*merge.SourceWithUpstream, error) {
	up, err := a.prepare(ctx, root)
	if err != nil {
		return nil, err
	}
	if err := up.Merge(ctx); err != nil {
		return nil, err
	}
	return up, nil
}
