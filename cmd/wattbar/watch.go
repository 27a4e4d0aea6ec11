package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wattbar/wattbar/pkg/ioreg"
	"github.com/wattbar/wattbar/pkg/smc"
	"github.com/wattbar/wattbar/pkg/telemetry"
	"github.com/wattbar/wattbar/pkg/types"
)

func NewWatchCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously print power telemetry",
		Long:  `Sample on a fixed cadence and print each snapshot until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn := smc.New()
			if err := conn.Open(); err != nil {
				return errors.Wrap(err, "failed to open SMC connection")
			}
			defer func() { _ = conn.Close() }()

			if interval <= 0 {
				interval = conf.SampleInterval()
			}

			sampler := telemetry.NewSampler(conn, ioreg.NewCommand(), telemetry.Options{
				Interval:    interval,
				HistorySize: conf.HistorySize(),
			})
			sampler.SetVisible(true)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sub := sampler.Hub().Subscribe()
			defer sampler.Hub().Unsubscribe(sub)

			go sampler.Run(ctx)

			for {
				select {
				case <-ctx.Done():
					return nil
				case snap := <-sub:
					printWatchLine(cmd, snap, sampler.History().AverageSystemLoad(time.Minute))
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "sampling interval (defaults to the configured value)")

	return cmd
}

func printWatchLine(cmd *cobra.Command, snap types.Snapshot, avgLoad float64) {
	cmd.Printf("%s charge=%3d%% system=%5.1fW (1m avg %5.1fW) adapter=%5.1fW battery=%+6.1fW charging=%s\n",
		time.Now().Format("15:04:05"),
		snap.ChargePercent,
		snap.SystemLoad,
		avgLoad,
		snap.AdapterPower,
		snap.BatteryPower,
		bool2Text(snap.Charging),
	)
}
