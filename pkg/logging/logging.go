// Package logging configures the process-wide zap logger.
package logging

import (
	"foldertoai/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It discards everything until Setup succeeds.
var Logger = zap.NewNop()

// Level is the minimum level of a run. Without debug only warnings reach
// stderr, where they would otherwise cut through the progress bar.
func Level(debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// Config returns the zap configuration for a run: development encoding with
// every pipeline step under debug, production JSON otherwise.
func Config(debug bool, appName, appVersion string) zap.Config {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(Level(debug))
	cfg.DisableStacktrace = !debug
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}
	return cfg
}

// Setup builds the logger and installs it as Logger and as zap's global.
// On failure the previous Logger stays in place.
func Setup(debug bool, appName, appVersion string) error {
	logger, err := Config(debug, appName, appVersion).Build()
	if err != nil {
		return err
	}
	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}

// Apply reconfigures logging for resolved settings.
func Apply(s *config.Settings, appName, appVersion string) error {
	return Setup(s.Debug, appName, appVersion)
}
