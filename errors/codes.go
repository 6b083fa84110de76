package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates a requested object, ref or directory does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates a resource already exists and cannot be created again.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeConflict indicates a resource state conflict that prevents the operation.
	CodeConflict ErrorCode = "CONFLICT"

	// Repository errors.

	// CodeDirty indicates the working copy has uncommitted or untracked changes.
	CodeDirty ErrorCode = "DIRTY"

	// CodeAmbiguousFamily indicates a repository matched zero or several
	// document families.
	CodeAmbiguousFamily ErrorCode = "AMBIGUOUS_FAMILY"

	// CodeFetchFailed indicates fetching from a remote failed.
	CodeFetchFailed ErrorCode = "FETCH_FAILED"

	// CodeMergeConflict indicates two trees disagree on a path.
	CodeMergeConflict ErrorCode = "MERGE_CONFLICT"

	// CodeMalformedTree indicates a tree holds an entry that cannot be merged.
	CodeMalformedTree ErrorCode = "MALFORMED_TREE"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Infrastructure errors.

	// CodeNetwork indicates a network operation failed.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeLockFailed indicates an advisory file lock could not be taken or released.
	CodeLockFailed ErrorCode = "LOCK_FAILED"

	// CodeFilesystem indicates a local filesystem operation failed.
	CodeFilesystem ErrorCode = "FILESYSTEM_ERROR"

	// CodeExecutionFailed indicates an external command failed.
	CodeExecutionFailed ErrorCode = "EXECUTION_FAILED"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeNotImplemented indicates the requested functionality is not supported.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
