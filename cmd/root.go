package cmd

import (
	"context"
	"fmt"
	"os"

	"foldertoai/pkg/config"
	"foldertoai/pkg/ingest"
	"foldertoai/pkg/logging"
	"foldertoai/pkg/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AppName is reported in log fields and the version string.
const AppName = "FolderToAI"

var (
	cfgFile  string
	cfgViper = viper.New()
	settings *config.Settings
	logger   = zap.NewNop()
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "foldertoai",
	Short: "FolderToAI packages a folder into messages for an AI chat",
	Long: `FolderToAI walks a folder, skips binary, oversized and ignored files, and
packages the readable content into a sequence of size-bounded messages that can
be pasted one by one into an AI chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		s, err := config.Load(cfgViper, cfgFile, cwd)
		if err != nil {
			return err
		}
		settings = s

		if err := logging.Apply(s, AppName, version.Version); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logging.Logger
		logger.Debug("Resolved settings",
			zap.Strings("ignoredSubfolders", s.IgnoredSubfolders),
			zap.String("ignoreFile", s.IgnoreFile),
			zap.Int64("fileSizeLimit", s.FileSizeLimit),
			zap.Int("maxMessageChars", s.MaxMessageChars),
			zap.Int("messageReserve", s.MessageReserve),
			zap.Duration("tickBudget", s.TickBudget),
		)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute(l *zap.Logger) error {
	if l != nil {
		logger = l
	}
	return RootCmd.ExecuteContext(context.Background())
}

// newController prepares an ingestion run over folder using the resolved settings.
func newController(folder string) (*ingest.Controller, error) {
	cfg, err := settings.IngestConfig(logger)
	if err != nil {
		return nil, err
	}
	return ingest.New(folder, cfg, ingest.WithLogger(logger)), nil
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to a configuration file (JSON or YAML)")
	config.RegisterFlags(RootCmd.PersistentFlags())
	if err := config.BindFlags(cfgViper, RootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}
