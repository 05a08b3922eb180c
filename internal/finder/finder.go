// Package finder runs the external file-listing command whose output feeds
// the tree builder.
package finder

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommand prefers fd when it is on PATH and falls back to find.
func DefaultCommand() string {
	if _, err := exec.LookPath("fd"); err == nil {
		return "fd"
	}
	return "find ."
}

// Run executes cmdline (first field is the program, the rest are arguments)
// and returns its stdout. Stderr is folded into the error so startup
// failures carry the command's own message.
func Run(cmdline string) ([]byte, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty listing command")
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", fields[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", fields[0], err)
	}

	return stdout.Bytes(), nil
}
