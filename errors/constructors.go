package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// New creates a new PlatformError with the given code and message.
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: classify(code),
		message:        message,
	}
}

// Newf creates a new PlatformError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err under a new code and message. The classification of a
// wrapped PlatformError is preserved. Returns nil if err is nil.
//
// Example:
//
//	if err := os.MkdirAll(dir, 0o755); err != nil {
//	    return errors.Wrap(err, errors.CodeFilesystem, "failed to create cache directory")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	return WrapWithContext(err, code, message, nil)
}

// Wrapf wraps err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches context metadata in one step.
// The context map is copied. Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	classification := classify(code)
	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		classification = platformErr.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		context:        maps.Clone(ctx),
		cause:          err,
	}
}

// WithContext returns a copy of err with one more context field. Errors that
// are not PlatformErrors are converted using their own code when they
// implement Coder, or CodeUnknown otherwise. Returns nil if err is nil.
//
// Example:
//
//	err := errors.New(errors.CodeFetchFailed, "fetch failed")
//	err = errors.WithContext(err, "url", url)
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}

	var platformErr PlatformError
	if !stderrors.As(err, &platformErr) {
		code := GetCode(err)
		platformErr = &platformError{
			code:           code,
			classification: classify(code),
			message:        err.Error(),
			cause:          err,
		}
	}

	ctx := platformErr.Context()
	if ctx == nil {
		ctx = make(map[string]interface{}, 1)
	}
	ctx[key] = value

	return &platformError{
		code:           platformErr.Code(),
		classification: platformErr.Classification(),
		message:        platformErr.Message(),
		context:        ctx,
		cause:          platformErr.Unwrap(),
	}
}
