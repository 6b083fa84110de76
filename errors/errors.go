package errors

// Coder is implemented by any error that reports an ErrorCode.
type Coder interface {
	error
	Code() ErrorCode
}

// PlatformError extends the standard error interface with structured information
// for consistent error handling.
type PlatformError interface {
	Coder

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}
