package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wattbar/wattbar/pkg/client"
)

// daemonResponseTimeout bounds the wait for a debounced request to be
// transmitted and answered.
const daemonResponseTimeout = 30 * time.Second

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

func NewLimitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "limit [percentage]",
		Short: "Set upper charge limit",
		Long: fmt.Sprintf(`Set upper charge limit.

This is a percentage from %d to %d, enforced by the wattbar daemon. The daemon may clamp the requested value.`, client.MinLimit, client.MaxLimit),
		RunE: func(_ *cobra.Command, args []string) error {
			limit, err := parseIntArg(args, "limit")
			if err != nil {
				return err
			}

			limiter := client.NewLimiter(client.NewClient(unixSocketPath), conf.DebounceWindow())
			defer limiter.Stop()

			return awaitLimitResult(limiter, limiter.Set(limit), limit)
		},
	}
}

// awaitLimitResult waits for the outcome of the debounced request and
// maps it onto the command's exit status.
func awaitLimitResult(limiter *client.Limiter, seq uint64, limit int) error {
	for {
		select {
		case res := <-limiter.Results():
			if res.Seq != seq {
				continue
			}
			switch res.Outcome {
			case client.Applied:
				if res.Limit != limit {
					logrus.Warnf("daemon clamped the limit to %d%%", res.Limit)
				}
				logrus.Infof("successfully set battery charge limit to %d%%", res.Limit)
				return nil
			case client.Rejected:
				return fmt.Errorf("daemon rejected the request: %s", res.Reason)
			default:
				return fmt.Errorf("failed to reach daemon: %w", res.Err)
			}
		case <-time.After(daemonResponseTimeout):
			return fmt.Errorf("timed out waiting for daemon response")
		}
	}
}
