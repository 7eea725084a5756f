package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpggio/assetboard/internal/config"
	"github.com/spf13/cobra"
)

// globalOptions are flags shared by every command.
type globalOptions struct {
	configPath string
	apiBase    string
	pageSize   int
	dbPath     string
	logLevel   string

	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
}

func newRootCmd(ver string) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "assetboard",
		Short:         "Retrieve and sort review assets",
		Long:          "assetboard retrieves every asset of a project from the paginated review API and serves a sortable board joined with review info.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return opts.cleanup()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("ASSETBOARD_CONFIG_PATH"), "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.apiBase, "api-base", "", "review API base URL (overrides config)")
	cmd.PersistentFlags().IntVar(&opts.pageSize, "page-size", 0, "records per page (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "review snapshot database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	cmd.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newReviewsCmd(opts),
		newColumnsCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Serve MCP tools over stdio
  assetboard serve

  # Serve MCP over streamable HTTP
  assetboard serve --transport http --port 8080

  # Print every asset of a project, newest model submissions first
  assetboard list --project sunrise --sort mdl_submitted_at:desc

  # Import a review snapshot
  assetboard reviews import --project sunrise reviews.json`

func (o *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if o.apiBase != "" {
		cfg.API.BaseURL = o.apiBase
	}
	if o.pageSize != 0 {
		cfg.API.PageSize = o.pageSize
	}
	if o.dbPath != "" {
		cfg.DB.Path = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	o.cfg = cfg

	// stdout carries tables and JSON-RPC, so logs go to stderr or a file.
	logWriter := io.Writer(cmd.ErrOrStderr())
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log file error: %v\n", err)
		} else {
			o.closers = append(o.closers, file)
			logWriter = fileWriter
		}
	}
	o.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return nil
}

func (o *globalOptions) cleanup() error {
	var firstErr error
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	o.closers = nil
	return firstErr
}
