package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/tonhe/rotor/internal/config"
	"github.com/tonhe/rotor/internal/engine"
	"github.com/tonhe/rotor/internal/identity"
)

func TestIsSubcommand(t *testing.T) {
	for _, name := range []string{"run", "sample", "check", "config", "themes", "version", "help"} {
		if !IsSubcommand(name) {
			t.Errorf("%q should be a subcommand", name)
		}
	}
	if IsSubcommand("identity") {
		t.Error("identity is not a subcommand")
	}
}

func TestPrintSamplesTable(t *testing.T) {
	var buf bytes.Buffer
	if err := printSamples(&buf, config.DefaultConfig(), 3, false); err != nil {
		t.Fatalf("printSamples() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, rule and 3 rows, got %d lines", len(lines))
	}
}

func TestPrintSamplesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printSamples(&buf, config.DefaultConfig(), 4, true); err != nil {
		t.Fatalf("printSamples() error: %v", err)
	}
	out := buf.String()
	sc := bufio.NewScanner(strings.NewReader(out))
	n := 0
	for sc.Scan() {
		var id identity.Identity
		if err := json.Unmarshal(sc.Bytes(), &id); err != nil {
			t.Fatalf("line %d: %v", n, err)
		}
		if id.ID == "" || id.Address == "" {
			t.Errorf("line %d missing fields: %+v", n, id)
		}
		n++
	}
	if n != 4 {
		t.Errorf("expected 4 identities, got %d", n)
	}
	if !strings.Contains(out, `"device_class":"`) {
		t.Errorf("device class should encode by name: %s", out)
	}
}

func TestPrintSamplesRejectsZero(t *testing.T) {
	if err := printSamples(&bytes.Buffer{}, config.DefaultConfig(), 0, false); err == nil {
		t.Error("expected error for n=0")
	}
}

func TestCheckConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := checkConfig(&buf, config.DefaultConfig()); err != nil {
		t.Fatalf("checkConfig() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"interval: 5m0s (min 1m0s, max 1h0m0s)", "desktop: 4 agents, 4 screens"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	// iPad agents carry a "Mobile/" token, so the default tablet pool warns.
	if !strings.Contains(out, "warning: tablet pool agent looks like mobile") {
		t.Errorf("expected tablet warning:\n%s", out)
	}
}

func TestCheckConfigWarnsOnMismatch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Identity.Agents.Desktop = append(cfg.Identity.Agents.Desktop,
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148")

	var buf bytes.Buffer
	if err := checkConfig(&buf, cfg); err != nil {
		t.Fatalf("checkConfig() error: %v", err)
	}
	if !strings.Contains(buf.String(), "warning: desktop pool agent looks like mobile") {
		t.Errorf("expected mismatch warning:\n%s", buf.String())
	}
}

func TestCheckConfigInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Identity.Countries = nil
	if err := checkConfig(&bytes.Buffer{}, cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSetInterval(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		want    time.Duration
		wantErr bool
	}{
		{"whole minutes", 10, 10 * time.Minute, false},
		{"fractional", 1.5, 90 * time.Second, false},
		{"below min", 0.5, 5 * time.Minute, true},
		{"above max", 61, 5 * time.Minute, true},
		{"nan", math.NaN(), 5 * time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := setInterval(cfg, tt.minutes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("setInterval(%v) error = %v, wantErr %v", tt.minutes, err, tt.wantErr)
			}
			if cfg.Rotation.DefaultInterval != tt.want {
				t.Errorf("interval = %s, want %s", cfg.Rotation.DefaultInterval, tt.want)
			}
		})
	}
}

func TestConfigShow(t *testing.T) {
	var buf bytes.Buffer
	if err := configShow(&buf, config.DefaultConfig()); err != nil {
		t.Fatalf("configShow() error: %v", err)
	}
	var decoded map[string]any
	if _, err := toml.Decode(buf.String(), &decoded); err != nil {
		t.Fatalf("output is not valid TOML: %v", err)
	}
	if !strings.Contains(buf.String(), `default_interval = "5m0s"`) {
		t.Errorf("expected duration rendered as a string:\n%s", buf.String())
	}
}

func TestWriteStatus(t *testing.T) {
	now := time.Now()
	var buf bytes.Buffer
	writeStatus(&buf, engine.Snapshot{
		Current:       identity.Identity{Address: "10.1.2.3", DeviceClass: identity.Mobile},
		State:         engine.RotatorRunning,
		RotationCount: 7,
		SuccessCount:  7,
		StartedAt:     now.Add(-time.Hour),
		TakenAt:       now,
		Countdown:     65 * time.Second,
	})
	out := buf.String()
	for _, want := range []string{"running", "10.1.2.3", "mobile", "#7", "next 1:05", "up 01:00:00", "100%"} {
		if !strings.Contains(out, want) {
			t.Errorf("status line missing %q: %q", want, out)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Mozilla/5.0", 60, "Mozilla/5.0"},
		{"Mozilla/5.0 (Windows)", 10, "Mozilla..."},
		{"São Tomé and Príncipe", 8, "São T..."},
		{"Côte d'Ivoire", 3, "Côt"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8 %q", tt.in, tt.max, got)
		}
	}
}

func TestPrintSamplesMultibyteRegion(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Identity.Countries = []string{"Österreich-Ungarn-Monarchie"}
	var buf bytes.Buffer
	if err := printSamples(&buf, cfg, 2, false); err != nil {
		t.Fatalf("printSamples() error: %v", err)
	}
	if !utf8.ValidString(buf.String()) {
		t.Errorf("table output is not valid UTF-8: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Österreich-Un...") {
		t.Errorf("expected region cut to 16 runes:\n%s", buf.String())
	}
}
