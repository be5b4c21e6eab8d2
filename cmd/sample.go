package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tonhe/rotor/internal/config"
	"github.com/tonhe/rotor/internal/identity"
)

func sampleCmd(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	n := fs.Int("n", 5, "Number of identities to sample")
	asJSON := fs.Bool("json", false, "Print one JSON object per line")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: rotor sample [-n N] [--json]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := printSamples(os.Stdout, mustLoadConfig(), *n, *asJSON); err != nil {
		fatal(err)
	}
}

func printSamples(w io.Writer, cfg *config.Config, n int, asJSON bool) error {
	if n < 1 {
		return fmt.Errorf("-n must be at least 1, got %d", n)
	}
	sampler, err := identity.NewSampler(cfg.Pools())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		for range n {
			if err := enc.Encode(sampler.Sample()); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Fprintf(w, "%-15s  %-8s  %-16s  %-10s  %s\n", "Address", "Device", "Country", "Screen", "Agent")
	fmt.Fprintf(w, "%-15s  %-8s  %-16s  %-10s  %s\n", "-------", "------", "-------", "------", "-----")
	for range n {
		id := sampler.Sample()
		fmt.Fprintf(w, "%-15s  %-8s  %-16s  %-10s  %s\n",
			id.Address,
			id.DeviceClass,
			truncate(id.Region, 16),
			id.Screen,
			truncate(id.AgentString, 60),
		)
	}
	return nil
}

// truncate shortens s to maxLen runes, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
