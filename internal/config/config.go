package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/tonhe/rotor/internal/identity"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Theme       string         `toml:"theme"`
	LogLevel    string         `toml:"log_level"`
	MetricsAddr string         `toml:"metrics_addr"`
	Rotation    RotationConfig `toml:"rotation"`
	Identity    IdentityConfig `toml:"identity"`
	System      SystemConfig   `toml:"system"`
	Zone        ZoneConfig     `toml:"zone"`
}

// RotationConfig bounds the rotation period. Durations are stored as
// strings ("5m") in the file.
type RotationConfig struct {
	DefaultInterval    time.Duration `toml:"-"`
	DefaultIntervalStr string        `toml:"default_interval"`
	MinInterval        time.Duration `toml:"-"`
	MinIntervalStr     string        `toml:"min_interval"`
	MaxInterval        time.Duration `toml:"-"`
	MaxIntervalStr     string        `toml:"max_interval"`
}

type IdentityConfig struct {
	AddressTemplates []string    `toml:"address_templates"`
	Countries        []string    `toml:"countries"`
	Agents           DevicePools `toml:"agents"`
	Screens          DevicePools `toml:"screens"`
}

// DevicePools is a list of strings per device class.
type DevicePools struct {
	Desktop []string `toml:"desktop"`
	Mobile  []string `toml:"mobile"`
	Tablet  []string `toml:"tablet"`
}

// ByClass keys the pools by identity.DeviceClass.
func (p DevicePools) ByClass() map[identity.DeviceClass][]string {
	return map[identity.DeviceClass][]string{
		identity.Desktop: p.Desktop,
		identity.Mobile:  p.Mobile,
		identity.Tablet:  p.Tablet,
	}
}

type SystemConfig struct {
	AutoStart         bool          `toml:"auto_start"`
	AutoStartDelay    time.Duration `toml:"-"`
	AutoStartDelayStr string        `toml:"auto_start_delay"`
	RefreshOnRotate   bool          `toml:"refresh_on_rotate"`
	MaxLogEntries     int           `toml:"max_log_entries"`
}

// ZoneConfig identifies the ad zone whose script is re-requested after a
// rotation.
type ZoneConfig struct {
	ID        string `toml:"id"`
	SDK       string `toml:"sdk"`
	ScriptURL string `toml:"script_url"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:    "solarized-dark",
		LogLevel: "info",
		Rotation: RotationConfig{
			DefaultInterval:    5 * time.Minute,
			DefaultIntervalStr: "5m0s",
			MinInterval:        time.Minute,
			MinIntervalStr:     "1m0s",
			MaxInterval:        time.Hour,
			MaxIntervalStr:     "1h0m0s",
		},
		Identity: IdentityConfig{
			AddressTemplates: []string{
				"192.168.{x}.{y}",
				"10.0.{x}.{y}",
				"172.16.{x}.{y}",
				"203.0.{x}.{y}",
				"45.76.{x}.{y}",
			},
			Countries: []string{"US", "UK", "CA", "AU", "DE", "FR", "JP", "SG"},
			Agents: DevicePools{
				Desktop: []string{
					"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
					"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
					"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
					"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:90.0) Gecko/20100101 Firefox/90.0",
				},
				Mobile: []string{
					"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1",
					"Mozilla/5.0 (Linux; Android 10; SM-G973F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.120 Mobile Safari/537.36",
					"Mozilla/5.0 (Android 11; Mobile; rv:68.0) Gecko/68.0 Firefox/68.0",
					"Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) CriOS/91.0.4472.80 Mobile/15E148 Safari/604.1",
				},
				Tablet: []string{
					"Mozilla/5.0 (iPad; CPU OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1",
					"Mozilla/5.0 (Linux; Android 10; SM-T870) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.120 Safari/537.36",
					"Mozilla/5.0 (iPad; CPU OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1",
				},
			},
			Screens: DevicePools{
				Desktop: []string{"1920x1080", "1366x768", "1536x864", "1440x900"},
				Mobile:  []string{"375x812", "414x896", "360x780", "390x844"},
				Tablet:  []string{"768x1024", "810x1080", "800x1280", "834x1194"},
			},
		},
		System: SystemConfig{
			AutoStart:         true,
			AutoStartDelay:    2 * time.Second,
			AutoStartDelayStr: "2s",
			RefreshOnRotate:   true,
			MaxLogEntries:     1000,
		},
		Zone: ZoneConfig{
			ID:        "demo-zone",
			SDK:       "show_demo-zone",
			ScriptURL: "https://ads.example.invalid/sdk.js",
		},
	}
}

// Pools converts the identity section into sampler pools.
func (c *Config) Pools() identity.Pools {
	return identity.Pools{
		AddressTemplates: c.Identity.AddressTemplates,
		Regions:          c.Identity.Countries,
		Agents:           c.Identity.Agents.ByClass(),
		Screens:          c.Identity.Screens.ByClass(),
	}
}

// Validate checks interval bounds, log settings and identity pools.
func (c *Config) Validate() error {
	r := c.Rotation
	if r.MinInterval <= 0 {
		return fmt.Errorf("%w: min_interval must be positive", ErrInvalidConfig)
	}
	if r.MaxInterval < r.MinInterval {
		return fmt.Errorf("%w: max_interval %s below min_interval %s", ErrInvalidConfig, r.MaxInterval, r.MinInterval)
	}
	if r.DefaultInterval < r.MinInterval || r.DefaultInterval > r.MaxInterval {
		return fmt.Errorf("%w: default_interval %s not in [%s, %s]",
			ErrInvalidConfig, r.DefaultInterval, r.MinInterval, r.MaxInterval)
	}
	if c.System.MaxLogEntries <= 0 {
		return fmt.Errorf("%w: max_log_entries must be positive", ErrInvalidConfig)
	}
	if c.System.AutoStartDelay < 0 {
		return fmt.Errorf("%w: auto_start_delay must not be negative", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if err := c.Pools().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseDurations() error {
	fields := []struct {
		name string
		str  string
		dst  *time.Duration
	}{
		{"rotation.default_interval", c.Rotation.DefaultIntervalStr, &c.Rotation.DefaultInterval},
		{"rotation.min_interval", c.Rotation.MinIntervalStr, &c.Rotation.MinInterval},
		{"rotation.max_interval", c.Rotation.MaxIntervalStr, &c.Rotation.MaxInterval},
		{"system.auto_start_delay", c.System.AutoStartDelayStr, &c.System.AutoStartDelay},
	}
	for _, f := range fields {
		if f.str == "" {
			continue
		}
		d, err := time.ParseDuration(f.str)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = d
	}
	return nil
}

// Encode writes cfg as TOML, durations rendered back to strings.
func (c *Config) Encode(w io.Writer) error {
	c.Rotation.DefaultIntervalStr = c.Rotation.DefaultInterval.String()
	c.Rotation.MinIntervalStr = c.Rotation.MinInterval.String()
	c.Rotation.MaxIntervalStr = c.Rotation.MaxInterval.String()
	c.System.AutoStartDelayStr = c.System.AutoStartDelay.String()
	return toml.NewEncoder(w).Encode(c)
}

func SaveConfig(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return cfg.Encode(f)
}
