package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/tonhe/rotor/internal/config"
	"github.com/tonhe/rotor/internal/engine"
	"github.com/tonhe/rotor/tui/styles"
)

func configCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: rotor config <path|show|interval|theme>")
		os.Exit(1)
	}

	switch args[0] {
	case "path":
		configPath()
	case "show":
		if err := configShow(os.Stdout, mustLoadConfig()); err != nil {
			fatal(err)
		}
	case "interval":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: rotor config interval MINUTES")
			os.Exit(1)
		}
		minutes, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fatal(fmt.Errorf("invalid interval %q: %w", args[1], err))
		}
		cfg := mustLoadConfig()
		if err := setInterval(cfg, minutes); err != nil {
			fatal(err)
		}
		saveConfig(cfg)
		fmt.Printf("Default interval set to %s.\n", cfg.Rotation.DefaultInterval)
	case "theme":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: rotor config theme NAME")
			os.Exit(1)
		}
		configSetTheme(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: rotor config <path|show|interval|theme>")
		os.Exit(1)
	}
}

func configPath() {
	path, err := config.GetConfigPath()
	if err != nil {
		fatal(err)
	}
	fmt.Println(path)
}

func configShow(w io.Writer, cfg *config.Config) error {
	return cfg.Encode(w)
}

// setInterval applies a minute count as the default interval, checked
// against the configured bounds.
func setInterval(cfg *config.Config, minutes float64) error {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return fmt.Errorf("%w: %v minutes", engine.ErrIntervalOutOfRange, minutes)
	}
	prev := cfg.Rotation.DefaultInterval
	cfg.Rotation.DefaultInterval = time.Duration(minutes * float64(time.Minute))
	if err := cfg.Validate(); err != nil {
		cfg.Rotation.DefaultInterval = prev
		return err
	}
	return nil
}

func configSetTheme(name string) {
	// Validate the theme name exists
	if styles.GetThemeByName(name) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'rotor themes' to see available themes.")
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	cfg.Theme = name
	saveConfig(cfg)

	fmt.Printf("Default theme set to %q.\n", name)
}

func themesCmd() {
	for _, name := range styles.ListThemes() {
		fmt.Println(name)
	}
}

// LoadConfig reads the config file, returning defaults when it does not
// exist yet.
func LoadConfig() (*config.Config, error) {
	path, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

func mustLoadConfig() *config.Config {
	cfg, err := LoadConfig()
	if err != nil {
		fatal(err)
	}
	return cfg
}

// saveConfig writes the config to disk, creating directories as needed.
func saveConfig(cfg *config.Config) {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		fatal(err)
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
}
