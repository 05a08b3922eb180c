package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"fuzzytree/internal/config"
	"fuzzytree/internal/finder"
	"fuzzytree/internal/tree"
	"fuzzytree/internal/ui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// Parse has already written the message to stderr.
		return 1
	}

	if cfg.ShowVersion {
		fmt.Println("ft", version)
		return 0
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	out, err := finder.Run(cfg.Cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ft: %v\n", err)
		return 1
	}

	t, err := tree.New(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ft: %v\n", err)
		return 1
	}
	t.CollapseOver(cfg.Collapse)
	log.Debug("tree built", "cmd", cfg.Cmd, "paths", t.NPaths())

	m := ui.New(t, ui.Config{Lines: cfg.Lines, Debug: cfg.Debug}, log)

	// Inline (non-altscreen) rendering, with output on stderr so stdout
	// stays clean for the committed paths.
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ft: %v\n", err)
		return 1
	}

	switch fm := final.(ui.Model); fm.Outcome() {
	case ui.OutcomeAccept:
		if paths := fm.CommitPaths(); len(paths) > 0 {
			fmt.Println(strings.Join(paths, " "))
		}
		return 0
	case ui.OutcomeInterrupt:
		// Terminal state is already restored by the time Run returns.
		return 130
	default:
		return 0
	}
}
