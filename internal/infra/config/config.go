// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Library  LibraryConfig           `yaml:"library"`
	Playback PlaybackConfig          `yaml:"playback"`
	Audio    AudioConfig             `yaml:"audio"`
	Filters  map[string]FilterConfig `yaml:"filters"`
	Notify   NotifyConfig            `yaml:"notify"`
	Messages MessagesConfig          `yaml:"messages"`
	Log      LogConfig               `yaml:"log"`
}

// LibraryConfig represents where audio files are looked up.
type LibraryConfig struct {
	StartDir   string   `yaml:"start_dir" default:"."`
	Extensions []string `yaml:"extensions" default:"[\".mp3\"]" validate:"min=1,dive,startswith=."`
}

// PlaybackConfig represents playback control configuration.
type PlaybackConfig struct {
	TickIntervalMs int  `yaml:"tick_interval_ms" default:"100" validate:"gte=10,lte=1000"`
	Shuffle        bool `yaml:"shuffle"`
	HistorySize    int  `yaml:"history_size" default:"50" validate:"gte=1,lte=1000"`
}

// AudioConfig represents speaker configuration.
type AudioConfig struct {
	SampleRate      int `yaml:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	BufferMs        int `yaml:"buffer_ms" default:"100" validate:"gte=10,lte=2000"`
	ResampleQuality int `yaml:"resample_quality" default:"4" validate:"gte=1,lte=6"`
}

// FilterConfig represents a filter's configuration.
// Filters are enabled unless explicitly disabled.
type FilterConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// NotifyConfig represents message surface configuration.
type NotifyConfig struct {
	Desktop bool   `yaml:"desktop"`
	AppName string `yaml:"app_name" default:"dirplayer"`
}

// MessagesConfig represents user-facing messages.
type MessagesConfig struct {
	NoSelection           string `yaml:"no_selection" default:"No file selected."`
	ZeroDuration          string `yaml:"zero_duration" default:"Selected file has a duration of 0."`
	UnsupportedFile       string `yaml:"unsupported_file" default:"Selected file is not a supported audio file."`
	DurationLimitExceeded string `yaml:"duration_limit_exceeded" default:"Selected file is outside the allowed duration range."`
	QueueExhausted        string `yaml:"queue_exhausted" default:"No more files to play."`
	NoHistory             string `yaml:"no_history" default:"No previous file."`
	DefaultError          string `yaml:"default_error" default:"Something went wrong."`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Output string `yaml:"output" default:"file" validate:"oneof=file stdout stderr discard"`
	File   string `yaml:"file" default:"dirplayer.log"`
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
}

// Load loads configuration from a YAML file.
// An empty path yields the defaults. Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	// Override with environment variables
	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() error {
	if v := os.Getenv("DIRPLAYER_START_DIR"); v != "" {
		c.Library.StartDir = v
	}
	if v := os.Getenv("DIRPLAYER_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("DIRPLAYER_SHUFFLE"); v != "" {
		shuffle, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "invalid DIRPLAYER_SHUFFLE %q", v)
		}
		c.Playback.Shuffle = shuffle
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// GetMessage returns the message for the given code.
func (c *Config) GetMessage(code string) string {
	switch code {
	case "no_selection":
		return c.Messages.NoSelection
	case "zero_duration":
		return c.Messages.ZeroDuration
	case "unsupported_file":
		return c.Messages.UnsupportedFile
	case "duration_limit_exceeded":
		return c.Messages.DurationLimitExceeded
	case "queue_exhausted":
		return c.Messages.QueueExhausted
	case "no_history":
		return c.Messages.NoHistory
	default:
		return c.Messages.DefaultError
	}
}

// IsFilterEnabled checks if a filter is enabled.
func (c *Config) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Filters[filterName]; ok && f.Enabled != nil {
		return *f.Enabled
	}
	return true
}

// GetFilterSettings returns the settings for a filter.
func (c *Config) GetFilterSettings(filterName string) map[string]any {
	if f, ok := c.Filters[filterName]; ok {
		return f.Settings
	}
	return nil
}

// StartDirectory returns the absolute directory the file chooser opens in.
// A leading "~" is expanded to the user's home directory.
func (c *Config) StartDirectory() (string, error) {
	dir := c.Library.StartDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "failed to resolve home directory")
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}
	return abs, nil
}

// TickInterval returns the time display refresh interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Playback.TickIntervalMs) * time.Millisecond
}

// AudioBuffer returns the speaker buffer length.
func (c *Config) AudioBuffer() time.Duration {
	return time.Duration(c.Audio.BufferMs) * time.Millisecond
}
