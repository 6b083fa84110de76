package exec

import (
	"context"
	"io"
	"time"
)

// Wrapper prepends a fixed command prefix to every Run. The build's
// collaborator hook is a Wrapper around the user-supplied command line.
type Wrapper struct {
	executor Executor
	prefix   []string
}

// NewWrapper returns a Wrapper running prefix followed by the Run
// arguments through executor.
//
// Example:
//
//	hook := exec.NewWrapper(exec.New(), "eipw", "--config", "eipw.toml")
//	res, err := hook.Run("content/00001.md") // eipw --config eipw.toml content/00001.md
func NewWrapper(executor Executor, prefix ...string) *Wrapper {
	return &Wrapper{executor: executor, prefix: prefix}
}

func (w *Wrapper) with(e Executor) Executor {
	return &Wrapper{executor: e, prefix: w.prefix}
}

func (w *Wrapper) WithEnv(env map[string]string) Executor { return w.with(w.executor.WithEnv(env)) }
func (w *Wrapper) WithDir(dir string) Executor             { return w.with(w.executor.WithDir(dir)) }
func (w *Wrapper) WithDisableColors() Executor             { return w.with(w.executor.WithDisableColors()) }
func (w *Wrapper) WithInheritEnv() Executor                { return w.with(w.executor.WithInheritEnv()) }
func (w *Wrapper) WithPassthrough() Executor               { return w.with(w.executor.WithPassthrough()) }
func (w *Wrapper) WithStdout(out io.Writer) Executor       { return w.with(w.executor.WithStdout(out)) }
func (w *Wrapper) WithStderr(out io.Writer) Executor       { return w.with(w.executor.WithStderr(out)) }

func (w *Wrapper) WithContext(ctx context.Context) Executor {
	return w.with(w.executor.WithContext(ctx))
}

func (w *Wrapper) WithTimeout(timeout time.Duration) Executor {
	return w.with(w.executor.WithTimeout(timeout))
}

// Run executes the prefix followed by args.
func (w *Wrapper) Run(args ...string) (*Result, error) {
	full := make([]string, 0, len(w.prefix)+len(args))
	full = append(full, w.prefix...)
	full = append(full, args...)
	return w.executor.Run(full...)
}
