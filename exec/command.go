package exec

import (
	"context"
	"io"
	"maps"
	"os"
	osexec "os/exec"
	"time"
)

// Command is the os/exec backed Executor.
type Command struct {
	ctx           context.Context
	env           map[string]string
	dir           string
	timeout       time.Duration
	inheritEnv    bool
	disableColors bool
	passthrough   bool
	stdout        io.Writer
	stderr        io.Writer
}

// New returns a Command configured by opts.
func New(opts ...Option) *Command {
	c := &Command{
		ctx:    context.Background(),
		env:    make(map[string]string),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Command) clone() *Command {
	out := *c
	out.env = maps.Clone(c.env)
	return &out
}

func (c *Command) WithEnv(env map[string]string) Executor {
	out := c.clone()
	maps.Copy(out.env, env)
	return out
}

func (c *Command) WithDir(dir string) Executor {
	out := c.clone()
	out.dir = dir
	return out
}

func (c *Command) WithContext(ctx context.Context) Executor {
	out := c.clone()
	out.ctx = ctx
	return out
}

func (c *Command) WithDisableColors() Executor {
	out := c.clone()
	out.disableColors = true
	return out
}

func (c *Command) WithTimeout(timeout time.Duration) Executor {
	out := c.clone()
	out.timeout = timeout
	return out
}

func (c *Command) WithInheritEnv() Executor {
	out := c.clone()
	out.inheritEnv = true
	return out
}

func (c *Command) WithStdout(w io.Writer) Executor {
	out := c.clone()
	out.stdout = w
	return out
}

func (c *Command) WithStderr(w io.Writer) Executor {
	out := c.clone()
	out.stderr = w
	return out
}

func (c *Command) WithPassthrough() Executor {
	out := c.clone()
	out.passthrough = true
	return out
}

// Run executes the command and waits for it. A non-nil Result is returned
// whenever the command started, even if it failed.
func (c *Command) Run(args ...string) (*Result, error) {
	if len(args) == 0 {
		return nil, &ExecError{ExitCode: -1, Err: osexec.ErrNotFound}
	}

	ctx := c.ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := osexec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.dir
	cmd.Env = c.environ()

	var stdoutPass, stderrPass io.Writer
	if c.passthrough {
		stdoutPass, stderrPass = c.stdout, c.stderr
	}
	stdout := newCapture(stdoutPass)
	stderr := newCapture(stderrPass)
	combined := &lockedBuffer{}

	cmd.Stdout = io.MultiWriter(stdout.Writer(), combined)
	cmd.Stderr = io.MultiWriter(stderr.Writer(), combined)

	err := cmd.Run()
	if cmd.ProcessState == nil {
		return nil, &ExecError{Command: args, ExitCode: -1, Err: err}
	}

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Combined: combined.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	if err != nil {
		return result, &ExecError{
			Command:  args,
			ExitCode: result.ExitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}
	return result, nil
}

func (c *Command) environ() []string {
	var env []string
	if c.inheritEnv {
		env = os.Environ()
	}

	extra := maps.Clone(c.env)
	if c.disableColors {
		extra["NO_COLOR"] = "1"
		extra["TERM"] = "dumb"
		extra["CLICOLOR"] = "0"
		extra["CLICOLOR_FORCE"] = "0"
		extra["FORCE_COLOR"] = "0"
	}
	for k, v := range extra {
		env = append(env, k+"="+v)
	}

	// Never fall back to the parent environment implicitly.
	if env == nil {
		env = []string{}
	}
	return env
}
