// Package ioreg acquires battery inventory data (capacities, cycle
// count, serial, temperature) by invoking the ioreg system utility and
// scraping its line-oriented output.
package ioreg

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

const (
	ioregPath    = "/usr/sbin/ioreg"
	batteryClass = "AppleSmartBattery"
)

// Command invokes ioreg for the smart battery service and returns its
// raw textual output.
type Command struct {
	path string
	args []string
}

// NewCommand returns a Command querying the AppleSmartBattery service.
func NewCommand() *Command {
	return &Command{
		path: ioregPath,
		args: []string{"-rn", batteryClass},
	}
}

// Dump runs ioreg and returns its stdout. A non-zero exit or empty
// output is an error; callers are expected to keep their previous
// values when that happens.
func (c *Command) Dump(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.path, c.args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "ioreg failed: %s", strings.TrimSpace(stderr.String()))
	}

	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", errors.New("ioreg produced no output")
	}

	return out, nil
}
