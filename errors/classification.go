package errors

// ErrorClassification indicates whether an error should trigger a retry.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// retryableCodes lists the codes classified as retryable. Every other code
// is permanent.
var retryableCodes = map[ErrorCode]struct{}{
	CodeFetchFailed: {},
	CodeNetwork:     {},
	CodeTimeout:     {},
}

func classify(code ErrorCode) ErrorClassification {
	if _, ok := retryableCodes[code]; ok {
		return ClassificationRetryable
	}
	return ClassificationPermanent
}
