// Package config provides configuration management for ccnotify.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the application name used for directories.
	AppName = "ccnotify"
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "config.yaml"
	// HistoryFileName is the name of the Claude Code history log.
	HistoryFileName = "history.jsonl"
)

// Paths holds all the application paths.
type Paths struct {
	ConfigDir   string
	DataDir     string
	ConfigFile  string
	ClaudeDir   string
	HistoryFile string
}

// GetPaths returns the application paths following XDG Base Directory specification.
func GetPaths() Paths {
	configDir := getConfigDir()
	claudeDir := getClaudeDir()
	return Paths{
		ConfigDir:   configDir,
		DataDir:     getDataDir(),
		ConfigFile:  filepath.Join(configDir, ConfigFileName),
		ClaudeDir:   claudeDir,
		HistoryFile: filepath.Join(claudeDir, HistoryFileName),
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	// Check for explicit override
	if dir := os.Getenv("CCNOTIFY_CONFIG_DIR"); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
			return filepath.Join(userProfile, "AppData", "Roaming", AppName)
		}
	default:
		// Linux, macOS and other Unix-like systems: follow XDG
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, AppName)
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", AppName)
		}
	}

	// Last resort fallback
	return filepath.Join(".", "."+AppName)
}

// getDataDir returns the data directory path. Relative log files live here.
func getDataDir() string {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, AppName)
		}
		if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
			return filepath.Join(userProfile, "AppData", "Local", AppName)
		}
	case "darwin":
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			return filepath.Join(xdgData, AppName)
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", AppName)
		}
	default:
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			return filepath.Join(xdgData, AppName)
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".local", "share", AppName)
		}
	}

	return filepath.Join(".", "."+AppName, "data")
}

// getClaudeDir returns the Claude Code configuration directory.
func getClaudeDir() string {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".claude")
	}
	return filepath.Join(".", ".claude")
}

// EnsureDirs creates the ccnotify directories if they don't exist.
// The Claude directory is never created here.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}
