package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/tonhe/rotor/internal/config"
	"github.com/tonhe/rotor/internal/identity"
)

func checkCmd() {
	cfg, err := LoadConfig()
	if err != nil {
		fatal(err)
	}
	if err := checkConfig(os.Stdout, cfg); err != nil {
		fatal(err)
	}
}

// checkConfig validates cfg and reports agent strings that look like a
// different device class than the pool they are listed in. Mismatches are
// warnings; only validation failures return an error.
func checkConfig(w io.Writer, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	pools := cfg.Pools()
	fmt.Fprintf(w, "interval: %s (min %s, max %s)\n",
		cfg.Rotation.DefaultInterval, cfg.Rotation.MinInterval, cfg.Rotation.MaxInterval)
	fmt.Fprintf(w, "address templates: %d, countries: %d\n", len(pools.AddressTemplates), len(pools.Regions))
	for _, dc := range identity.DeviceClasses {
		fmt.Fprintf(w, "%s: %d agents, %d screens\n", dc, len(pools.Agents[dc]), len(pools.Screens[dc]))
	}

	mismatches := identity.CheckAgents(pools.Agents)
	for _, m := range mismatches {
		fmt.Fprintf(w, "warning: %s pool agent looks like %s: %s\n", m.Pool, m.Detected, truncate(m.Agent, 60))
	}
	if len(mismatches) == 0 {
		fmt.Fprintln(w, "OK")
	}
	return nil
}
