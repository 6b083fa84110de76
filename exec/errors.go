package exec

import (
	"fmt"

	"github.com/eips-wg/preprocessor/errors"
)

// ExecError is a command that could not start or exited non-zero.
type ExecError struct {
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %v failed with exit code %d: %v", e.Command, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %v failed with exit code %d", e.Command, e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Code implements errors.Coder.
func (e *ExecError) Code() errors.ErrorCode {
	return errors.CodeExecutionFailed
}
