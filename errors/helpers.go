package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode of the outermost Coder in err's chain.
// Returns CodeUnknown if err is nil or carries no code.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeMergeConflict {
//	    // report the conflicting path
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var coder Coder
	if stderrors.As(err, &coder) {
		return coder.Code()
	}

	return CodeUnknown
}

// GetClassification extracts the classification of err. Errors that only
// implement Coder are classified by their code. Returns
// ClassificationPermanent if err is nil or carries no code.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}

	return classify(GetCode(err))
}

// IsRetryable returns true if the error is classified as retryable.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
