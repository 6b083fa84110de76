package git

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/assert"

	"github.com/eips-wg/preprocessor/errors"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"repository not exists", gogit.ErrRepositoryNotExists, errors.CodeNotFound},
		{"reference not found", plumbing.ErrReferenceNotFound, errors.CodeNotFound},
		{"object not found", plumbing.ErrObjectNotFound, errors.CodeNotFound},
		{"entry not found", object.ErrEntryNotFound, errors.CodeNotFound},
		{"empty remote", transport.ErrEmptyRemoteRepository, errors.CodeNotFound},
		{"already exists", gogit.ErrRepositoryAlreadyExists, errors.CodeAlreadyExists},
		{"worktree not clean", gogit.ErrWorktreeNotClean, errors.CodeConflict},
		{"bare repository", gogit.ErrIsBareRepository, errors.CodeInvalidInput},
		{"auth required", transport.ErrAuthenticationRequired, errors.CodeFetchFailed},
		{"path error", &fs.PathError{Op: "open", Path: "/x", Err: stderrors.New("boom")}, errors.CodeFilesystem},
		{"not exist", fs.ErrNotExist, errors.CodeNotFound},
		{"wrapped", fmt.Errorf("outer: %w", plumbing.ErrReferenceNotFound), errors.CodeNotFound},
		{"keeps existing code", errors.New(errors.CodeDirty, "dirty"), errors.CodeDirty},
		{"unknown", stderrors.New("something else"), errors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyError(tt.err))
		})
	}
}

func TestWrapError_PreservesChain(t *testing.T) {
	err := wrapError(plumbing.ErrReferenceNotFound, "failed to resolve HEAD")

	assert.True(t, stderrors.Is(err, plumbing.ErrReferenceNotFound))
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	assert.Contains(t, err.Error(), "failed to resolve HEAD")
}

func TestWrapError_Nil(t *testing.T) {
	assert.Nil(t, wrapError(nil, "context"))
	assert.Nil(t, wrapErrorWithContext(nil, "context", nil))
}
