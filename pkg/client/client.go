// Package client talks to the privileged wattbar daemon over its unix
// socket. The protocol is textual: one command line out, one response
// line back, connection closed.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultSocketPath is where the daemon listens.
	DefaultSocketPath = "/var/run/wattbar.sock"

	// MinLimit and MaxLimit bound the requestable charge limit.
	MinLimit = 10
	MaxLimit = 99

	defaultRequestTimeout = 5 * time.Second
)

// Client is a struct for communicating with the wattbar daemon.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient is a constructor for creating a new Client.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{
		socketPath: socketPath,
		timeout:    defaultRequestTimeout,
	}
}

// SetLimit asks the daemon to enforce a charge limit. It performs no
// retries; delivery is at most once per call. The daemon may clamp the
// value, in which case the returned Result carries the applied limit
// and a warning is logged.
func (c *Client) SetLimit(percent int) Result {
	if percent < MinLimit || percent > MaxLimit {
		return Result{
			Outcome: Rejected,
			Reason:  fmt.Sprintf("limit must be between %d and %d, got %d", MinLimit, MaxLimit, percent),
		}
	}

	logrus.WithFields(logrus.Fields{
		"limit": percent,
		"unix":  c.socketPath,
	}).Debug("sending charge-limit request")

	line, err := c.roundTrip(fmt.Sprintf("limit %d\n", percent))
	if err != nil {
		return Result{Outcome: TransportFailure, Err: err}
	}

	res := parseResponse(line)
	if res.Outcome == Applied && res.Limit != percent {
		logrus.WithFields(logrus.Fields{
			"requested": percent,
			"applied":   res.Limit,
		}).Warn("daemon clamped the requested charge limit")
	}

	return res
}

// roundTrip writes one command line and reads one response line.
func (c *Client) roundTrip(command string) (string, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return "", classifyDialError(err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.Errorf("failed to close daemon connection: %v", err)
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return "", pkgerrors.Wrap(err, "failed to set socket deadline")
	}

	if _, err := conn.Write([]byte(command)); err != nil {
		return "", pkgerrors.Wrap(err, "failed to write command")
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return "", pkgerrors.Wrap(err, "failed to read daemon response")
	}

	return line, nil
}

// classifyDialError maps socket errors onto the sentinel errors callers
// match with errors.Is: a missing socket means the daemon is not
// running, which is a distinct user-visible condition.
func classifyDialError(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ErrDaemonNotRunning
	case errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	default:
		return pkgerrors.Wrap(err, "failed to connect to daemon socket")
	}
}
