package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/xabinapal/ccnotify/internal/utils"
)

// ErrInvalidConfig indicates the configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultAppName is the application name shown by the notification backend.
const DefaultAppName = "Claude Code"

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the logging level (debug, info, warn, error).
	Level string `yaml:"level,omitempty" json:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	// File is an optional log file path. Logs go to stderr when empty.
	// A relative path is resolved against the data directory.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	// JSON enables JSON-formatted logging.
	JSON bool `yaml:"json,omitempty" json:"json,omitempty"`
}

// Config represents the ccnotify configuration.
type Config struct {
	// HistoryFile is the Claude Code history log used for session labels.
	HistoryFile string `yaml:"history_file,omitempty" json:"history_file" validate:"required"`
	// AppName is the application name reported to the notification service.
	AppName string `yaml:"app_name,omitempty" json:"app_name" validate:"required"`
	// Sound plays the platform default sound with each notification.
	Sound *bool `yaml:"sound,omitempty" json:"sound"`
	// Icon is an optional path to a notification icon.
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`
	// Log holds logging settings.
	Log LogConfig `yaml:"log,omitempty" json:"log"`

	// filePath is the path where this config was loaded from.
	filePath string `yaml:"-" json:"-"`
}

// Default returns a new Config with default values.
func Default() *Config {
	paths := GetPaths()
	sound := true
	return &Config{
		HistoryFile: paths.HistoryFile,
		AppName:     DefaultAppName,
		Sound:       &sound,
		Log: LogConfig{
			Level: "warn",
		},
		filePath: paths.ConfigFile,
	}
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	paths := GetPaths()
	return LoadFrom(paths.ConfigFile)
}

// LoadFrom loads the configuration from a specific path.
// A missing file is not an error and yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	// #nosec G304 - path is the config file path (controlled, from user config directory)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills values an explicit empty key in the file may have cleared.
func (c *Config) applyDefaults() {
	def := Default()
	if c.HistoryFile == "" {
		c.HistoryFile = def.HistoryFile
	}
	c.HistoryFile = utils.ExpandHome(c.HistoryFile)
	if c.AppName == "" {
		c.AppName = def.AppName
	}
	if c.Sound == nil {
		c.Sound = def.Sound
	}
	if c.Icon != "" {
		c.Icon = utils.ExpandHome(c.Icon)
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File != "" {
		c.Log.File = utils.ExpandHome(c.Log.File)
		if !filepath.IsAbs(c.Log.File) {
			c.Log.File = filepath.Join(GetPaths().DataDir, c.Log.File)
		}
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed %q check (value %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SoundEnabled reports whether notifications should play a sound.
func (c *Config) SoundEnabled() bool {
	return c.Sound == nil || *c.Sound
}

// Save writes the configuration to its file path.
func (c *Config) Save() error {
	if c.filePath == "" {
		return errors.New("config file path not set")
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// SetFilePath sets the path Save writes to.
func (c *Config) SetFilePath(path string) {
	c.filePath = path
}

// FilePath returns the path where this config was loaded from.
func (c *Config) FilePath() string {
	return c.filePath
}
