package cache

import (
	"context"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/git"
)

// fetchRef is fetched when a pinned commit is missing locally. It is stored
// under the same branch name so branch revisions resolve after a fetch.
const fetchRef = "master:master"

// repoKey is the cache key of the repository for url.
func repoKey(url string) string {
	return "git\x00" + url
}

// Repo returns a checkout of commit from the repository at url. commit is
// any revision the repository can resolve: a full or abbreviated hash, a
// branch or a ref name. The repository is kept in the cache and master is
// fetched at most once per call, only when commit does not resolve locally.
// The checkout is forced, so local modifications in the returned directory
// are discarded.
func (c *Cache) Repo(ctx context.Context, url, commit string) (string, error) {
	if commit == "" {
		return "", errors.WithContext(
			errors.New(errors.CodeInvalidInput, "commit is required"),
			"url", url,
		)
	}

	dir, err := c.Dir(repoKey(url))
	if err != nil {
		return "", err
	}

	repo, err := git.OpenOrInit(dir)
	if err != nil {
		return "", err
	}

	resolved, err := repo.ResolveCommit(commit)
	if err != nil {
		if errors.GetCode(err) != errors.CodeNotFound {
			return "", err
		}

		c.logger.Info("fetching repository", "url", url, "commit", commit)
		if _, err := repo.FetchCommit(ctx, url, fetchRef, c.progress); err != nil {
			return "", err
		}

		resolved, err = repo.ResolveCommit(commit)
		if err != nil {
			return "", errors.WrapWithContext(err, errors.CodeNotFound, "commit not found after fetch",
				map[string]interface{}{"url": url, "commit": commit})
		}
	}

	if err := repo.CheckoutDetached(resolved.Hash); err != nil {
		return "", err
	}

	c.logger.Debug("checked out cached repository", "url", url, "commit", resolved.Hash.String(), "path", dir)
	return dir, nil
}
