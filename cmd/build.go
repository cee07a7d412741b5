package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"foldertoai/pkg/export"
	"foldertoai/pkg/ingest"
	"foldertoai/pkg/segment"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var buildOutDir string

// buildCmd packages a folder into messages and writes them to stdout or, with
// --out, to numbered files next to a manifest.
var buildCmd = &cobra.Command{
	Use:   "build <folder>",
	Short: "Package a folder into messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]
		_, set, err := runIngest(cmd.Context(), folder, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		if buildOutDir == "" {
			return export.WriteStream(cmd.OutOrStdout(), set)
		}

		if _, err := export.WriteDir(buildOutDir, folder, settings.MaxMessageChars, set, logger); err != nil {
			return err
		}
		manifest, err := export.Verify(buildOutDir)
		if err != nil {
			return fmt.Errorf("written messages failed verification: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d messages to %s\n", manifest.TotalMessages, buildOutDir)
		return nil
	},
}

// runIngest drives a run over folder to completion, showing progress on
// stderr when it is a terminal.
func runIngest(ctx context.Context, folder string, stderr io.Writer) (*ingest.Controller, segment.MessageSet, error) {
	ctrl, err := newController(folder)
	if err != nil {
		return nil, segment.MessageSet{}, err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var progress ingest.ProgressFunc
	if f, ok := stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		reporter := newProgressReporter(stderr)
		defer reporter.stop()
		progress = reporter.update
	}

	set, err := ingest.Run(ctx, ctrl, settings.TickBudget, progress)
	if err != nil {
		return nil, segment.MessageSet{}, fmt.Errorf("failed to package %s: %w", folder, err)
	}

	snapshot := ctrl.Snapshot()
	logger.Info("Folder packaged",
		zap.String("folder", folder),
		zap.Int("files", snapshot.NumFiles()),
		zap.Int("binaryFiles", snapshot.NumBinary()),
		zap.Int("couldNotLoad", snapshot.NumCouldNotLoad()),
		zap.Int("messages", set.Len()),
	)
	return ctrl, set, nil
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "", "Write message_NNN.txt files and manifest.json to this directory")
	RootCmd.AddCommand(buildCmd)
}
