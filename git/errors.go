package git

import (
	stderrors "errors"
	"io/fs"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/eips-wg/preprocessor/errors"
)

// wrapError wraps err with a message and the code classifyError assigns to
// it. The original error stays in the chain. Returns nil if err is nil.
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, classifyError(err), message)
}

// wrapErrorWithContext is wrapError plus context metadata.
func wrapErrorWithContext(err error, message string, ctx map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, classifyError(err), message, ctx)
}

// classifyError maps go-git and filesystem errors to error codes. Errors
// that already carry a code keep it; anything unrecognised is internal.
//
//nolint:gocyclo,cyclop // each case is a simple mapping
func classifyError(err error) errors.ErrorCode {
	var coder errors.Coder
	if stderrors.As(err, &coder) {
		return coder.Code()
	}

	switch {
	case stderrors.Is(err, gogit.ErrRepositoryNotExists),
		stderrors.Is(err, transport.ErrRepositoryNotFound),
		stderrors.Is(err, plumbing.ErrReferenceNotFound),
		stderrors.Is(err, plumbing.ErrObjectNotFound),
		stderrors.Is(err, object.ErrFileNotFound),
		stderrors.Is(err, object.ErrDirectoryNotFound),
		stderrors.Is(err, object.ErrEntryNotFound),
		stderrors.Is(err, transport.ErrEmptyRemoteRepository),
		stderrors.Is(err, fs.ErrNotExist):
		return errors.CodeNotFound

	case stderrors.Is(err, gogit.ErrRepositoryAlreadyExists),
		stderrors.Is(err, gogit.ErrBranchExists),
		stderrors.Is(err, fs.ErrExist):
		return errors.CodeAlreadyExists

	case stderrors.Is(err, gogit.ErrWorktreeNotClean),
		stderrors.Is(err, gogit.ErrUnstagedChanges),
		stderrors.Is(err, gogit.ErrNonFastForwardUpdate):
		return errors.CodeConflict

	case stderrors.Is(err, gogit.ErrIsBareRepository),
		stderrors.Is(err, gogit.ErrMissingURL),
		stderrors.Is(err, plumbing.ErrInvalidType):
		return errors.CodeInvalidInput

	case stderrors.Is(err, transport.ErrAuthenticationRequired),
		stderrors.Is(err, transport.ErrAuthorizationFailed),
		stderrors.Is(err, transport.ErrInvalidAuthMethod):
		return errors.CodeFetchFailed

	case stderrors.Is(err, fs.ErrPermission):
		return errors.CodeFilesystem
	}

	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		return errors.CodeFilesystem
	}

	return errors.CodeInternal
}
