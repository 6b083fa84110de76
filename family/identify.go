package family

import (
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/eips-wg/preprocessor/git"
)

// Identify probes repo for each family's fingerprint commit. Exactly one
// must be present; otherwise an *AmbiguousError lists what resolved.
// Families missing from locs are not probed.
func Identify(repo *git.Repository, locs Locations) (Use, error) {
	resolved := make(map[Use]bool, len(locs))
	fingerprints := make(map[Use]string, len(locs))

	var found []Use
	for _, u := range All() {
		loc, ok := locs[u]
		if !ok {
			continue
		}

		fingerprints[u] = loc.IdentifyingCommit
		_, err := repo.CommitObject(plumbing.NewHash(loc.IdentifyingCommit))
		resolved[u] = err == nil
		if resolved[u] {
			found = append(found, u)
		}
	}

	if len(found) != 1 {
		return 0, &AmbiguousError{Resolved: resolved, Fingerprints: fingerprints}
	}
	return found[0], nil
}

// IdentifyPath opens the repository at path and identifies it.
func IdentifyPath(path string, locs Locations, opts ...git.RepositoryOption) (Use, error) {
	repo, err := git.Open(path, opts...)
	if err != nil {
		return 0, err
	}
	return Identify(repo, locs)
}
