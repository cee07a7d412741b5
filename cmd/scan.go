package cmd

import (
	"fmt"
	"os"

	"foldertoai/pkg/report"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var scanSummaryOnly bool

// scanCmd runs the pipeline and prints what would be packaged instead of the messages.
var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Show which files of a folder would be packaged",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, set, err := runIngest(cmd.Context(), args[0], cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		snapshot := ctrl.Snapshot()
		if !scanSummaryOnly {
			styles := report.PlainStyles()
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				styles = report.ColorStyles()
			}
			fmt.Fprint(out, report.Tree(snapshot, styles))
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, report.Summary(snapshot, set.Len()))
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanSummaryOnly, "summary", false, "Print only the counters, not the file tree")
	RootCmd.AddCommand(scanCmd)
}
