// Package exec runs external programs with captured output.
//
// The build uses it for its collaborator hook: a checker or renderer that
// runs inside the merged checkout once the merge has finished, with the
// changed proposal paths appended to its arguments.
//
// # Features
//
//   - Immutable executors: every With method returns a configured copy
//   - Captured stdout, stderr and their interleaving in one Result
//   - Optional passthrough to the terminal while still capturing
//   - Explicit environment: nothing is inherited unless asked
//   - Context cancellation and timeouts
//   - Wrapper for running one tool repeatedly with a fixed prefix
//
// # Basic Usage
//
//	ex := exec.New()
//	res, err := ex.Run("git", "--version")
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Stdout)
//
// # Configuration
//
// Options given to New configure the base executor:
//
//	ex := exec.New(
//	    exec.WithInheritEnv(),
//	    exec.WithDir(checkout),
//	    exec.WithEnv(map[string]string{"EIPS_FAMILY": "EIPs"}),
//	    exec.WithDisableColors(),
//	)
//
// With methods specialize a copy per call and leave the original untouched,
// so a base executor can be shared:
//
//	base := exec.New(exec.WithInheritEnv())
//
//	res, err := base.
//	    WithDir(checkout).
//	    WithEnv(map[string]string{"EIPS_THEME_DIR": themeDir}).
//	    WithContext(ctx).
//	    WithTimeout(10 * time.Minute).
//	    Run("eipw", "content/00001.md")
//
// # Environment
//
// Without WithInheritEnv a command sees only the variables given through
// WithEnv. With it, the parent environment comes first and WithEnv entries
// override it. WithDisableColors sets NO_COLOR and the related variables
// most tools honor.
//
// # Output
//
// Output is always captured into Result.Stdout, Result.Stderr and
// Result.Combined. WithPassthrough also streams both to the writers set by
// WithStdout and WithStderr, or to the process's own streams by default:
//
//	res, err := ex.
//	    WithStdout(cmd.OutOrStdout()).
//	    WithStderr(cmd.ErrOrStderr()).
//	    WithPassthrough().
//	    Run("eipw", "--config", "eipw.toml")
//
// # Wrapper
//
// Wrapper prepends a fixed command prefix to every Run. The check command
// turns the user's "-- COMMAND ARGS..." into a Wrapper and passes the
// changed proposals as the remaining arguments:
//
//	hook := exec.NewWrapper(exec.New(exec.WithInheritEnv()), "eipw", "--config", "eipw.toml")
//	res, err := hook.WithDir(checkout).Run("content/00003.md", "content/00004.md")
//	// runs: eipw --config eipw.toml content/00003.md content/00004.md
//
// Wrapper implements Executor, so its With methods keep the prefix.
//
// # Error Handling
//
// A command that cannot start or exits non-zero yields an *ExecError. It
// carries the command line, the exit code and both output streams, and its
// error code is EXECUTION_FAILED:
//
//	var execErr *exec.ExecError
//	if errors.As(err, &execErr) {
//	    os.Exit(execErr.ExitCode)
//	}
//
// A command that never started has no Result and an ExitCode of -1. For a
// finished command the Result is returned alongside the error so callers can
// still inspect the output.
package exec
