package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"facultynotes/internal/annotate"
	"facultynotes/internal/config"
	"facultynotes/internal/docstore"
	"facultynotes/internal/logging"
	"facultynotes/internal/report"
	"facultynotes/internal/runner"
)

// app carries state shared between the root command hooks and subcommands.
type app struct {
	verbose    bool
	configPath string
	filePath   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Append each record's note to its faculty name",
		Long: `Reads the admissions JSON document, and for every record with a non-empty
"qeyd" note rewrites "Fakulte adi" as "<name> (<note parts>)". The file is
overwritten in place.

Running it twice on the same file appends the note a second time.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runAnnotate,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigFile, "Config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&a.filePath, "file", "f", "", "Document to annotate in place (default: config paths.input)")

	rootCmd.AddCommand(newConfigCmd(a))
	return rootCmd
}

// setup loads config (flags > env > file > defaults) and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(a.configPath); err != nil {
			return fmt.Errorf("config file %s: %w", a.configPath, err)
		}
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.filePath != "" {
		cfg.SetPath(a.filePath)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	logging.For(logger, logging.CategoryBoot).Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("input", cfg.Paths.Input),
		zap.String("output", cfg.OutputPath()))

	a.cfg = cfg
	a.logger = logger
	return nil
}

// runAnnotate performs one pass. Failures inside the pass are reported on
// stdout and do not change the exit status.
func (a *app) runAnnotate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := docstore.New(a.cfg.Paths.Input, a.cfg.OutputPath())
	annotator := annotate.New(annotate.Options{
		NoteField: a.cfg.Fields.Note,
		NameField: a.cfg.Fields.Name,
		Separator: a.cfg.Fields.Separator,
	}, logging.For(a.logger, logging.CategoryAnnotate))

	r := runner.New(store, annotator, report.New(cmd.OutOrStdout()), a.logger)
	r.Run(ctx)
	return nil
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
