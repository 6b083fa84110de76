// Command eips-build prepares EIPs and ERCs working copies for checking and
// rendering.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/exec"
	"github.com/eips-wg/preprocessor/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Execute(ctx)
	if err == nil {
		return
	}

	var execErr *exec.ExecError
	if errors.As(err, &execErr) && execErr.ExitCode > 0 {
		stop()
		os.Exit(execErr.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	stop()
	os.Exit(1)
}
