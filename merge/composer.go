package merge

import (
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/git"
)

// Identity used for every merge commit.
const (
	CommitterName  = "eips-build"
	CommitterEmail = "eips-build@eips-build.invalid"
)

// Composer writes merge commits and moves the checkout onto them.
type Composer struct {
	repo   *git.Repository
	logger *slog.Logger
}

// NewComposer returns a Composer for repo.
func NewComposer(repo *git.Repository, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Composer{repo: repo, logger: logger}
}

// Commit writes a commit of tree with the given parents, moves HEAD (through
// its branch when attached) to it and forcibly checks it out. The first
// parent must be the current head.
func (c *Composer) Commit(tree *object.Tree, parents []plumbing.Hash, message string) (plumbing.Hash, error) {
	if len(parents) == 0 {
		return plumbing.ZeroHash, errors.New(errors.CodeInvalidInput, "merge commit requires at least one parent")
	}

	hash, err := c.repo.WriteCommit(git.CommitOptions{
		Tree:    tree.Hash,
		Parents: parents,
		Message: message,
		Signature: object.Signature{
			Name:  CommitterName,
			Email: CommitterEmail,
		},
	})
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if err := c.repo.UpdateHead(hash); err != nil {
		return plumbing.ZeroHash, err
	}
	if err := c.repo.ForceCheckout(false); err != nil {
		return plumbing.ZeroHash, err
	}

	c.logger.Debug("committed", "commit", hash.String(), "parents", len(parents), "message", message)
	return hash, nil
}
