package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/songtab/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
}

// ExportResult describes one exported song.
type ExportResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Database string `json:"database"`
	Notes    int    `json:"notes"`
	Harmony  int    `json:"harmony"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the flattened tables to SQLite",
		Long: `Flatten a score document and store its notes and harmony tables in a
SQLite database. Each export gets a new song ID.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.DBPath, "path to SQLite database")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	song, err := loadSong(opts.RootOptions, path, cmd)
	if err != nil {
		return formatter.Fail(err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeStoreFailed, err)
	}
	defer st.Close()

	formatter.VerboseLog("Writing %s to %s", path, opts.Database)
	id, err := st.WriteSong(cmd.Context(), song, path)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeStoreFailed, err)
	}

	result := ExportResult{
		ID:       id,
		Name:     song.Name(),
		Database: opts.Database,
		Notes:    song.NotesTable().Len(),
		Harmony:  song.HarmonyTable().Len(),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Exported %q: %d note(s), %d harmony event(s)\n", result.Name, result.Notes, result.Harmony)
	fmt.Fprintf(formatter.Writer, "  id: %s\n  db: %s\n", result.ID, result.Database)
	return nil
}
