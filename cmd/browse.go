package cmd

import (
	"foldertoai/pkg/tui"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse <folder>",
	Short: "Package a folder and page through the messages interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController(args[0])
		if err != nil {
			return err
		}
		return tui.RunBrowse(ctrl, settings.TickBudget)
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)
}
