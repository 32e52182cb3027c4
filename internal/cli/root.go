package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/songtab/internal/config"
	"github.com/roach88/songtab/internal/score"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "csv"
	Config  config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "csv"}

// NewRootCommand creates the root command for the songtab CLI.
// Environment variables (SONGTAB_*) supply flag defaults.
func NewRootCommand() *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "songtab",
		Short: "songtab - flatten score documents into tables",
		Long: `songtab loads a score document (sections of measures with melody notes
and harmony events) and flattens it into a notes table and a harmony table,
each row tagged with its section name and measure number.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (text|json|csv)")

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewNotesCommand(opts))
	cmd.AddCommand(NewHarmonyCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// Logger builds the diagnostic logger. --verbose lowers the configured level
// to DEBUG.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	level := o.Config.LogLevel
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newFormatter builds the OutputFormatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadSong loads the document at path with the command's logger.
func loadSong(opts *RootOptions, path string, cmd *cobra.Command) (*score.Song, error) {
	return score.Load(path, score.WithLogger(opts.Logger(cmd.ErrOrStderr())))
}
