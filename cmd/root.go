package cmd

import (
	"fmt"
	"os"
)

// Version and Build are stamped at link time.
var (
	Version = "0.1.0"
	Build   = ""
)

// knownSubcommands is the set of CLI subcommands that bypass the TUI.
var knownSubcommands = map[string]bool{
	"run":     true,
	"sample":  true,
	"check":   true,
	"config":  true,
	"themes":  true,
	"version": true,
	"help":    true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Execute dispatches to the appropriate CLI subcommand handler.
func Execute(args []string) {
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "run":
		runCmd(args[1:])
	case "sample":
		sampleCmd(args[1:])
	case "check":
		checkCmd()
	case "config":
		configCmd(args[1:])
	case "themes":
		themesCmd()
	case "version":
		fmt.Println(versionString())
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func versionString() string {
	s := "rotor v" + Version
	if Build != "" {
		s += " (" + Build + ")"
	}
	return s
}

func printUsage() {
	fmt.Println(`rotor - visitor identity rotator

Usage:
  rotor                     Launch TUI (headless run when not a terminal)
  rotor run [--interval M]  Rotate headless, logging to stderr
  rotor sample [-n N]       Print sampled identities
  rotor check               Validate the config and agent pools
  rotor config <cmd>        Manage configuration
  rotor themes              List available themes
  rotor version             Show version
  rotor help                Show this help

Config Commands:
  rotor config path                Show config file path
  rotor config show                Print the effective config
  rotor config interval MINUTES    Set the default rotation interval
  rotor config theme NAME          Set default theme

Environment:
  ROTOR_CONFIG                     Config file path override
  ROTOR_LOG                        TUI log file path override`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
