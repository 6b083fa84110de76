package merge

import (
	"fmt"

	"github.com/eips-wg/preprocessor/errors"
)

// ConflictReason names the property that differed between two entries at
// the same path.
type ConflictReason string

const (
	ReasonMode    ConflictReason = "mode"
	ReasonKind    ConflictReason = "kind"
	ReasonContent ConflictReason = "content"
)

// ConflictError reports a path present on both sides with different mode,
// kind or content.
type ConflictError struct {
	Path   string
	Reason ConflictReason
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting %s at `%s`", e.Reason, e.Path)
}

func (e *ConflictError) Code() errors.ErrorCode {
	return errors.CodeMergeConflict
}

// UnknownEntryKindError reports an entry that is neither a blob nor a tree,
// such as a submodule.
type UnknownEntryKindError struct {
	Path string
}

func (e *UnknownEntryKindError) Error() string {
	return fmt.Sprintf("tree entry at `%s` is neither a file nor a directory", e.Path)
}

func (e *UnknownEntryKindError) Code() errors.ErrorCode {
	return errors.CodeMalformedTree
}

// UnnamedEntryError reports a tree entry with an empty name.
type UnnamedEntryError struct {
	ParentPath string
}

func (e *UnnamedEntryError) Error() string {
	return fmt.Sprintf("unnamed tree entry in `%s`", e.ParentPath)
}

func (e *UnnamedEntryError) Code() errors.ErrorCode {
	return errors.CodeMalformedTree
}
