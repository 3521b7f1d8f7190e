// Command spdxparse reads SPDX documents and license expressions.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK              = 0 // success
	exitError           = 1 // user error or a document that could not be read
	exitStrictViolation = 2 // strict mode found error diagnostics or cycles
)

// codeError carries a non-default exit code out of a command.
type codeError struct {
	code int
	err  error
}

func (e *codeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *codeError) Unwrap() error { return e.err }

type cli struct {
	settings   settings
	configFile string
	stderr     io.Writer
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var ce *codeError
	if errors.As(err, &ce) {
		if ce.err != nil {
			cliutil.PrintError("%v", ce.err)
		}
		return ce.code
	}
	cliutil.PrintError("%v", err)
	return exitError
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "spdxparse",
		Short: "Read SPDX documents and license expressions",
		Long: `spdxparse reads SPDX 2.x documents in RDF/XML, JSON, YAML and tag-value
form and parses SPDX license expressions.

Settings are read from .spdxparse.yaml in the current or home directory and
from SPDXPARSE_* environment variables. Flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c.stderr = cmd.ErrOrStderr()
			return c.loadSettings(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default .spdxparse.yaml)")
	pf.CountP("verbose", "v", "debug logging; -vv for trace logging")
	pf.String("license-list", "", "license-list-data directory (default: discovered)")
	pf.Bool("allow-unknown-licenses", false, "accept license ids not on the license list")
	pf.Bool("allow-unknown-exceptions", false, "accept exception ids not on the license list")
	pf.String("min-severity", "warning", "least severe diagnostic to report: error, warning or info")
	pf.StringSlice("ignore", nil, "diagnostic codes to suppress (globs allowed)")

	root.AddCommand(
		c.parseCmd(),
		c.exprCmd(),
		c.licensesCmd(),
		c.graphCmd(),
		c.watchCmd(),
		versionCmd(),
	)
	return root
}

func (c *cli) setupLogger() *slog.Logger {
	if c.settings.Verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.settings.Verbose >= 2 {
		level = gospdx.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// options builds the read options from the merged settings.
func (c *cli) options() ([]gospdx.Option, error) {
	var opts []gospdx.Option
	logger := c.setupLogger()
	if logger != nil {
		opts = append(opts, gospdx.WithLogger(logger))
	}

	list, err := c.licenseList()
	if err != nil {
		return nil, fmt.Errorf("loading license list: %w", err)
	}
	opts = append(opts, gospdx.WithLicenseList(list))

	if c.settings.AllowUnknownLicenses {
		opts = append(opts, gospdx.WithAllowUnknownLicenses())
	}
	if c.settings.AllowUnknownExceptions {
		opts = append(opts, gospdx.WithAllowUnknownExceptions())
	}

	diag, err := c.settings.diagnosticConfig()
	if err != nil {
		return nil, err
	}
	opts = append(opts, gospdx.WithDiagnosticConfig(diag))
	return opts, nil
}
