package exec

import (
	"context"
	"io"
	"time"
)

// Executor runs commands.
type Executor interface {
	// WithEnv adds environment variables, overriding inherited ones.
	WithEnv(env map[string]string) Executor

	// WithDir sets the working directory.
	WithDir(dir string) Executor

	// WithContext sets the context; cancelling it kills the command.
	WithContext(ctx context.Context) Executor

	// WithDisableColors asks the command for plain output through the
	// common NO_COLOR style variables.
	WithDisableColors() Executor

	// WithTimeout bounds the run time.
	WithTimeout(timeout time.Duration) Executor

	// WithInheritEnv starts from the parent process environment.
	WithInheritEnv() Executor

	// WithStdout and WithStderr set where passthrough output goes.
	WithStdout(w io.Writer) Executor
	WithStderr(w io.Writer) Executor

	// WithPassthrough streams output while still capturing it.
	WithPassthrough() Executor

	// Run executes args[0] with the remaining arguments.
	Run(args ...string) (*Result, error)
}

// Result is the outcome of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	Combined string
	ExitCode int
}

// Option configures New.
type Option func(*Command)

// WithEnv returns an Option adding environment variables.
func WithEnv(env map[string]string) Option {
	return func(c *Command) {
		for k, v := range env {
			c.env[k] = v
		}
	}
}

// WithDir returns an Option setting the working directory.
func WithDir(dir string) Option {
	return func(c *Command) {
		c.dir = dir
	}
}

// WithInheritEnv returns an Option inheriting the parent environment.
func WithInheritEnv() Option {
	return func(c *Command) {
		c.inheritEnv = true
	}
}

// WithDisableColors returns an Option disabling color output.
func WithDisableColors() Option {
	return func(c *Command) {
		c.disableColors = true
	}
}

// WithPassthrough returns an Option streaming output to the given writers.
func WithPassthrough(stdout, stderr io.Writer) Option {
	return func(c *Command) {
		c.passthrough = true
		c.stdout = stdout
		c.stderr = stderr
	}
}
