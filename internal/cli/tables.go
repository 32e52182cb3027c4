package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/roach88/songtab/internal/score"
	"github.com/roach88/songtab/internal/table"
)

// TableOptions holds flags for the notes and harmony commands.
type TableOptions struct {
	*RootOptions
	Section string // restrict to one section name's grouping
}

// NewNotesCommand creates the notes command.
func NewNotesCommand(rootOpts *RootOptions) *cobra.Command {
	return newTableCommand(rootOpts, "notes", "Print the notes table", func(s *score.Song, g *score.Grouping) *table.Table {
		if g != nil {
			return table.Build(g.Notes, table.ChordDefaults)
		}
		return s.NotesTable()
	})
}

// NewHarmonyCommand creates the harmony command.
func NewHarmonyCommand(rootOpts *RootOptions) *cobra.Command {
	return newTableCommand(rootOpts, "harmony", "Print the harmony table", func(s *score.Song, g *score.Grouping) *table.Table {
		if g != nil {
			return table.Build(g.Harmony, table.ChordDefaults)
		}
		return s.HarmonyTable()
	})
}

// pickTable selects the table to print; g is nil when no section was requested.
type pickTable func(s *score.Song, g *score.Grouping) *table.Table

func newTableCommand(rootOpts *RootOptions, use, short string, pick pickTable) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Long: short + `, one row per event in document order.

Every field that appears on any event becomes a column. Missing chords are
shown as "0"; other missing fields are empty (null in JSON).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(opts, args[0], pick, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Section, "section", "s", "", "only rows from this section name")

	return cmd
}

func runTable(opts *TableOptions, path string, pick pickTable, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	song, err := loadSong(opts.RootOptions, path, cmd)
	if err != nil {
		return formatter.Fail(err)
	}

	var group *score.Grouping
	if opts.Section != "" {
		g, ok := song.Section(opts.Section)
		if !ok {
			return formatter.Fail(fmt.Errorf("unknown section %q", opts.Section))
		}
		group = &g
	}
	tbl := pick(song, group)
	formatter.VerboseLog("%d row(s), %d column(s)", tbl.Len(), len(tbl.Columns()))

	switch formatter.Format {
	case "json":
		return formatter.Success(tbl)
	case "csv":
		return tbl.WriteCSV(formatter.Writer)
	default:
		fmt.Fprintln(formatter.Writer, renderTable(tbl))
		return nil
	}
}

// renderTable draws tbl as a bordered text table.
func renderTable(tbl *table.Table) string {
	if tbl.Len() == 0 {
		return "(no rows)"
	}
	header, rows := tbl.Strings()
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(header...).
		Rows(rows...).
		String()
}
