package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/rotor/cmd"
	"github.com/tonhe/rotor/internal/app"
	"github.com/tonhe/rotor/internal/config"
	"github.com/tonhe/rotor/internal/logging"
	"github.com/tonhe/rotor/tui"
	"golang.org/x/term"
)

// Set via -ldflags "-X main.version=... -X main.build=...".
var (
	version = "0.1.0"
	build   = ""
)

func main() {
	cmd.Version = version
	cmd.Build = build

	if len(os.Args) > 1 {
		if cmd.IsSubcommand(os.Args[1]) {
			cmd.Execute(os.Args[1:])
			return
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		cmd.Execute([]string{"help"})
		os.Exit(1)
	}

	cfg, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := cmd.RunHeadless(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config) error {
	if err := config.EnsureDirs(); err != nil {
		return err
	}
	logPath, err := config.GetLogPath()
	if err != nil {
		return err
	}
	logger, logFile := logging.NewFile(logPath, cfg.LogLevel)
	defer logFile.Close()

	a, err := app.New(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()
	a.ScheduleAutoStart()

	// The metrics server, if configured, runs alongside the TUI.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := a.Run(ctx, nil); err != nil {
			logger.Error("background services stopped", "error", err)
		}
	}()

	p := tea.NewProgram(tui.NewAppModel(a, version, build), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
