// Package paths resolves the taskdesk configuration and data directories.
//
// Precedence for the config directory: --config-dir flag, then
// TASKDESK_CONFIG_DIR, then the platform default. For the data directory:
// --data-dir flag, then data_dir from config.yaml, then TASKDESK_DATA_DIR,
// then the platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "taskdesk"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TASKDESK_CONFIG_DIR"
	EnvDataDir   = "TASKDESK_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/taskdesk (fallback ~/.config/taskdesk)
// macOS:   ~/Library/Application Support/taskdesk
// Windows: %APPDATA%/taskdesk
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/taskdesk (fallback ~/.local/share/taskdesk)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// userDir applies the XDG convention on Linux and os.UserConfigDir elsewhere.
func userDir(xdgEnv, homeFallback string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}

	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeFallback, AppName), nil
}

// ResolveConfigDir returns the absolute configuration directory.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the absolute data directory. configValue is the
// data_dir setting read from config.yaml, possibly empty.
func ResolveDataDir(flag, configValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, configValue, os.Getenv(EnvDataDir))
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// firstAbs returns the first non-empty candidate made absolute, or the
// fallback when every candidate is empty.
func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
