// Package errors provides the structured error type shared by every package
// in the preprocessor.
//
// It extends Go's standard error handling with error codes, a retry
// classification and context metadata, and stays compatible with the
// standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Features
//
//   - Error codes naming every failure the build can report
//   - Classification into retryable and permanent failures
//   - Context metadata for logging and diagnostics
//   - Wrapping that preserves the error chain
//   - A Coder interface so domain error structs carry codes too
//
// # Design Principles
//
//   - Standard library compatibility
//   - Immutability: WithContext returns a new error instead of mutating
//   - Type safety: codes and classifications are distinct string types
//   - A small API surface
//
// # Quick Start
//
// Creating errors:
//
//	// Simple error
//	err := errors.New(errors.CodeDirty, "repository has uncommitted changes")
//
//	// Formatted error
//	err := errors.Newf(errors.CodeInvalidInput, "invalid refspec %q", refspec)
//
// Wrapping errors:
//
//	if err := remote.FetchContext(ctx, opts); err != nil {
//	    return errors.Wrap(err, errors.CodeFetchFailed, "failed to fetch master")
//	}
//
// Adding context:
//
//	err := errors.New(errors.CodeDirty, "repository is dirty")
//	err = errors.WithContext(err, "paths", []string{"content/00001.md"})
//	err = errors.WithContext(err, "path", "/home/me/EIPs")
//
//	// Or in one step while wrapping.
//	err = errors.WrapWithContext(cause, errors.CodeLockFailed, "failed to lock",
//	    map[string]interface{}{"path": lockPath})
//
// Inspecting errors:
//
//	switch errors.GetCode(err) {
//	case errors.CodeMergeConflict:
//	    // report the conflicting path
//	case errors.CodeDirty:
//	    // ask the user to commit or stash
//	}
//
// # Error Codes
//
// The codes cover the build's failure modes:
//
//   - Resource errors: CodeNotFound, CodeAlreadyExists, CodeConflict
//   - Repository state: CodeDirty, CodeAmbiguousFamily
//   - Git operations: CodeFetchFailed, CodeMergeConflict, CodeMalformedTree
//   - Validation errors: CodeInvalidInput, CodeInvalidConfig
//   - Infrastructure errors: CodeNetwork, CodeTimeout, CodeLockFailed,
//     CodeFilesystem
//   - Execution errors: CodeExecutionFailed
//   - System errors: CodeInternal, CodeNotImplemented
//   - Generic: CodeUnknown
//
// # Error Classification
//
// Errors are classified as either retryable or permanent:
//
//   - Retryable: CodeFetchFailed, CodeNetwork and CodeTimeout
//   - Permanent: everything else
//
// The build never retries on its own. Callers embedding the packages can
// use IsRetryable to decide:
//
//	for attempt := 0; attempt < 3; attempt++ {
//	    _, err = repo.FetchCommit(ctx, url, "master", nil)
//	    if err == nil || !errors.IsRetryable(err) {
//	        break
//	    }
//	    time.Sleep(time.Duration(attempt+1) * time.Second)
//	}
//
// Wrap keeps the classification of a wrapped PlatformError, so a retryable
// cause stays retryable when a caller adds its own code.
//
// # Domain Errors and Coder
//
// Packages that need structured fields define their own error types and
// implement Coder. GetCode and GetClassification then work on them directly:
//
//	type ConflictError struct {
//	    Path   string
//	    Reason ConflictReason
//	}
//
//	func (e *ConflictError) Error() string {
//	    return fmt.Sprintf("conflicting %s at `%s`", e.Reason, e.Path)
//	}
//
//	func (e *ConflictError) Code() errors.ErrorCode { return errors.CodeMergeConflict }
//
// Callers recover the fields with errors.As:
//
//	var conflict *merge.ConflictError
//	if errors.As(err, &conflict) {
//	    fmt.Println(conflict.Path)
//	}
//
// GetCode reports the outermost code in the chain, so wrapping a domain
// error with a more specific code overrides it.
//
// # Standard Library Compatibility
//
//	// errors.Is traverses the chain
//	if errors.Is(err, plumbing.ErrReferenceNotFound) {
//	    // the go-git sentinel is still reachable
//	}
//
//	// errors.As finds typed errors in the chain
//	var platformErr errors.PlatformError
//	if errors.As(err, &platformErr) {
//	    ctx := platformErr.Context()
//	}
//
// # Best Practices
//
//   - Wrap errors with a code and a message at each layer
//   - Prefer a specific code over CodeUnknown or CodeInternal
//   - Put paths, URLs and refs in context rather than only in the message
//   - Use IsRetryable for retry decisions, not specific codes
package errors
