// Package cli implements the scanlog command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/scanlog/internal/config"
	"github.com/crimson-sun/scanlog/internal/logging"
	"github.com/crimson-sun/scanlog/internal/pipeline"
)

// DefaultConfigFile is read from the working directory when --config is
// not given and the file exists.
const DefaultConfigFile = "scanlog.yaml"

// NewRootCommand creates the scanlog command. The report goes to stdout,
// diagnostics to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "scanlog [log-folder]",
		Short: "Flag anomalous lines in a folder of log files",
		Long: "scanlog reads every log file in a folder, marks lines that are statistical\n" +
			"outliers or contain a trouble keyword, and reports them with their file paths.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.LoadOptions{File: configFile, Flags: cmd.Flags()}
			if opts.File == "" && config.Exists(DefaultConfigFile) {
				opts.File = DefaultConfigFile
			}
			if len(args) == 1 {
				opts.LogFolder = args[0]
			}
			return runScan(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file (default ./"+DefaultConfigFile+" when present)")
	config.RegisterFlags(cmd.Flags())

	cmd.AddCommand(newVersionCommand())
	return cmd
}

func runScan(ctx context.Context, opts config.LoadOptions, stdout, stderr io.Writer) (err error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "configuration", err)
	}

	logger := logging.Init(stderr, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level), logging.NewRunID())
	logger.Debug("scan starting", "log_folder", cfg.LogFolder, "vectorizer", cfg.Vectorizer, "contamination", cfg.Contamination)

	p, connCfg, err := pipeline.FromConfig(cfg, stdout, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "setup", err)
	}
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = WrapExitError(ExitFailure, "close output", cerr)
		}
	}()

	if _, err := p.Run(ctx, connCfg); err != nil {
		return WrapExitError(ExitFailure, "scan failed", err)
	}
	return nil
}

// Execute runs the command with args and returns the process exit code.
// Errors are printed to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		// Cobra's own errors: unknown flags, too many arguments.
		err = WrapExitError(ExitCommandError, "usage", err)
	}
	fmt.Fprintf(stderr, "scanlog: %v\n", err)
	return GetExitCode(err)
}
