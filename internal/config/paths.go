package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "rotor"

// Environment overrides for the config file and the TUI log file. When set
// they win over the platform directories.
const (
	EnvConfigPath = "ROTOR_CONFIG"
	EnvLogPath    = "ROTOR_LOG"
)

// GetConfigDir returns the platform-specific config directory.
// Unix: $XDG_CONFIG_HOME/rotor or ~/.config/rotor
// Windows: %APPDATA%\rotor
func GetConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, appName), nil
}

// GetDataDir returns the platform-specific data directory.
// Unix: $XDG_DATA_HOME/rotor or ~/.local/share/rotor
// Windows: %LOCALAPPDATA%\rotor
func GetDataDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(base, appName), nil
}

// GetConfigPath returns the path to config.toml, or $ROTOR_CONFIG.
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	cfgDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "config.toml"), nil
}

// GetLogPath returns the file the TUI writes its log to, since the
// terminal itself is taken over by the interface. $ROTOR_LOG overrides it.
func GetLogPath() (string, error) {
	if p := os.Getenv(EnvLogPath); p != "" {
		return p, nil
	}
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "rotor.log"), nil
}

// EnsureDirs creates the directories holding the config file and the log
// file, following any environment overrides.
func EnsureDirs() error {
	files := []func() (string, error){GetConfigPath, GetLogPath}
	for _, fn := range files {
		path, err := fn()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return err
		}
	}
	return nil
}
