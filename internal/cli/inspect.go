package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/songtab/internal/record"
	"github.com/roach88/songtab/internal/score"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a score document",
		Long: `Load a score document (.json, .yaml, .yml or .cue) and print its name,
time signature, section order, and note/harmony counts per section.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	formatter.VerboseLog("Loading %s", path)

	song, err := loadSong(opts, path, cmd)
	if err != nil {
		return formatter.Fail(err)
	}

	sum := song.Summary()
	if formatter.Format == "json" {
		return formatter.Success(sum)
	}

	writeSummary(formatter, sum)
	return nil
}

func writeSummary(f *OutputFormatter, sum score.Summary) {
	w := f.Writer
	ts := formatTimeSignature(sum.TimeSignature, "none")

	fmt.Fprintf(w, "Song: %s\n", sum.Name)
	fmt.Fprintf(w, "Time signature: %s\n", ts)
	fmt.Fprintf(w, "Notes: %d, harmony events: %d\n\n", sum.Notes, sum.Harmony)

	if len(sum.Sections) == 0 {
		fmt.Fprintln(w, "No sections.")
		return
	}

	fmt.Fprintln(w, "Sections:")
	for _, s := range sum.Sections {
		fmt.Fprintf(w, "  %s: %d note(s), %d harmony event(s)\n", s.Name, s.Notes, s.Harmony)
	}
	fmt.Fprintf(w, "\nOrder: %s\n", strings.Join(sum.SectionNames, " → "))
}

// formatTimeSignature renders a time signature for text output. absent is
// used when no measure declared one; an explicit null prints as "null".
func formatTimeSignature(v record.Value, absent string) string {
	switch {
	case v == nil:
		return absent
	case record.IsNull(v):
		return "null"
	default:
		return record.Format(v)
	}
}
