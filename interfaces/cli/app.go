// Package cli provides a minimal command-line front-end for exercising an
// Enclave from a shell — a smoke-test entry point, not a REPL product: the
// spec this module implements treats client front-ends as an external
// concern and only asks for something illustrative here.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-enclave/enclave"
	"github.com/go-enclave/enclave/infrastructure/logging"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer
}

// New creates a new CLI application.
func New() *App {
	app := &App{stdout: os.Stdout, stderr: os.Stderr}

	app.root = &cobra.Command{
		Use:           "enclave",
		Short:         "Evaluate a script inside a sandboxed enclave",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.root.AddCommand(app.newEvalCmd())

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

func (a *App) newEvalCmd() *cobra.Command {
	var timeout time.Duration
	var memoryLimit int64
	var logFormat string

	cmd := &cobra.Command{
		Use:   "eval [script]",
		Short: "Evaluate a script and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFormat == "json" {
				logging.Init(logging.ProductionConfig())
			} else {
				logging.Init(logging.DefaultConfig())
			}

			e, err := enclave.New(
				enclave.WithTimeout(timeout),
				enclave.WithMemoryLimit(memoryLimit),
			)
			if err != nil {
				return err
			}
			defer e.Close()

			result, _ := e.Eval(args[0])
			fmt.Fprintln(a.stdout, result.String())
			if result.IsError() {
				return fmt.Errorf("evaluation failed")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "evaluation deadline (0 disables)")
	cmd.Flags().Int64Var(&memoryLimit, "memory-limit", 0, "allocation ceiling in bytes (0 disables)")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "log output format: console or json")

	return cmd
}
