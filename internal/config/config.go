// Package config owns the CLI flag surface. The rest of the program
// consumes the parsed values as plain data.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"fuzzytree/internal/finder"
)

const (
	// MinLines is the smallest usable viewport: query line, info line and
	// at least one tree row.
	MinLines = 3

	defaultCollapse = 10
	fallbackLines   = 20
)

// Config carries the validated CLI values.
type Config struct {
	Cmd         string
	Collapse    int
	Lines       int
	Debug       bool
	ShowVersion bool
}

// Parse reads args (excluding the program name). Every failure is written
// to errOut before it is returned, so callers only map the error to an exit
// code; flag.ErrHelp is passed through for -h.
func Parse(args []string, errOut io.Writer) (Config, error) {
	fs := flag.NewFlagSet("ft", flag.ContinueOnError)
	fs.SetOutput(errOut)

	cfg := Config{}
	fs.StringVar(&cfg.Cmd, "cmd", finder.DefaultCommand(), "command used for finding files")
	fs.IntVar(&cfg.Collapse, "collapse", defaultCollapse, "directories with more than N children start collapsed")
	fs.IntVar(&cfg.Lines, "lines", defaultLines(), "max number of terminal lines to use")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging to stderr")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Collapse < 0 {
		return Config{}, reportf(fs, "option -collapse must be >= 0")
	}
	if cfg.Lines < MinLines {
		return Config{}, reportf(fs, "option -lines must be >= %d", MinLines)
	}

	return cfg, nil
}

// reportf writes a validation failure the same place the flag package writes
// its own parse errors, then returns it.
func reportf(fs *flag.FlagSet, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	fmt.Fprintln(fs.Output(), err)
	return err
}

// defaultLines sizes the viewport to the terminal, leaving one row for the
// shell prompt on exit.
func defaultLines() int {
	_, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || h-1 < MinLines {
		return fallbackLines
	}
	return h - 1
}
