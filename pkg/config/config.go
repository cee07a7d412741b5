// Package config resolves foldertoai settings from defaults, an optional
// config file, FOLDERTOAI_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foldertoai/pkg/ignore"
	"foldertoai/pkg/ingest"
	"foldertoai/pkg/segment"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is prepended to every environment variable viper looks up.
const EnvPrefix = "FOLDERTOAI"

// ConfigName is the config file base name searched for in the working directory.
const ConfigName = "foldertoai"

// DefaultTickBudget is how long one cooperative step window may run.
const DefaultTickBudget = 50 * time.Millisecond

// ErrInvalidDirName is returned when an ignore entry is not a plain directory name.
var ErrInvalidDirName = ignore.ErrInvalidName

// Settings is the resolved configuration.
type Settings struct {
	IgnoredSubfolders []string      `mapstructure:"ignored_subfolders"`
	IgnoreFile        string        `mapstructure:"ignore_file"`
	FileSizeLimit     int64         `mapstructure:"file_size_limit"`
	MaxMessageChars   int           `mapstructure:"max_message_chars"`
	MessageReserve    int           `mapstructure:"message_reserve"`
	TickBudget        time.Duration `mapstructure:"tick_budget"`
	Debug             bool          `mapstructure:"debug"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	opts := segment.DefaultOptions()
	return Settings{
		IgnoredSubfolders: append([]string(nil), ignore.DefaultDirs...),
		FileSizeLimit:     ingest.DefaultMaxFileSize,
		MaxMessageChars:   opts.MaxChars,
		MessageReserve:    opts.Reserve,
		TickBudget:        DefaultTickBudget,
	}
}

// flag name for each config key
var flagKeys = map[string]string{
	"ignored_subfolders": "ignore",
	"ignore_file":        "ignore-file",
	"file_size_limit":    "max-file-size",
	"max_message_chars":  "max-chars",
	"message_reserve":    "reserve",
	"tick_budget":        "tick",
	"debug":              "debug",
}

// RegisterFlags defines one flag per config key on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Defaults()
	flags.StringSlice("ignore", d.IgnoredSubfolders, "Directory names whose contents are never loaded (replaces the default list)")
	flags.String("ignore-file", d.IgnoreFile, "File listing extra directory names to ignore, one per line")
	flags.Int64("max-file-size", d.FileSizeLimit, "Files larger than this many bytes are listed but not loaded")
	flags.Int("max-chars", d.MaxMessageChars, "Maximum grapheme clusters per message")
	flags.Int("reserve", d.MessageReserve, "Grapheme clusters per message reserved for the message header")
	flags.Duration("tick", d.TickBudget, "Time budget of one processing window")
	flags.Bool("debug", d.Debug, "Enable development logging")
}

// BindFlags binds every flag registered by RegisterFlags to its config key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("ignored_subfolders", d.IgnoredSubfolders)
	v.SetDefault("ignore_file", d.IgnoreFile)
	v.SetDefault("file_size_limit", d.FileSizeLimit)
	v.SetDefault("max_message_chars", d.MaxMessageChars)
	v.SetDefault("message_reserve", d.MessageReserve)
	v.SetDefault("tick_budget", d.TickBudget)
	v.SetDefault("debug", d.Debug)
}

// Load resolves Settings. An explicit cfgFile must exist; otherwise a
// foldertoai.{yaml,yml,json} in dir is read when present.
func Load(v *viper.Viper, cfgFile, dir string) (*Settings, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings for values no run could use.
func (s *Settings) Validate() error {
	for _, name := range s.IgnoredSubfolders {
		if err := ignore.ValidateName(strings.TrimSpace(name)); err != nil {
			return fmt.Errorf("ignored_subfolders: %w", err)
		}
	}
	if s.FileSizeLimit < 0 {
		return fmt.Errorf("file_size_limit must not be negative, got %d", s.FileSizeLimit)
	}
	if err := s.segmentOptions().Validate(); err != nil {
		return fmt.Errorf("max_message_chars=%d message_reserve=%d: %w", s.MaxMessageChars, s.MessageReserve, err)
	}
	if s.TickBudget <= 0 {
		return fmt.Errorf("tick_budget must be positive, got %s", s.TickBudget)
	}
	return nil
}

func (s *Settings) segmentOptions() segment.Options {
	return segment.Options{MaxChars: s.MaxMessageChars, Reserve: s.MessageReserve}
}

// IngestConfig builds the immutable run configuration, merging the names of
// IgnoreFile into the ignore-set.
func (s *Settings) IngestConfig(logger *zap.Logger) (ingest.Config, error) {
	names := append([]string(nil), s.IgnoredSubfolders...)
	if s.IgnoreFile != "" {
		extra, err := ignore.LoadFile(s.IgnoreFile, logger)
		if err != nil {
			return ingest.Config{}, err
		}
		names = append(names, extra...)
	}

	set, err := ignore.NewDirSet(names...)
	if err != nil {
		return ingest.Config{}, err
	}

	return ingest.Config{
		Ignored:     set,
		MaxFileSize: s.FileSizeLimit,
		Segment:     s.segmentOptions(),
	}, nil
}
