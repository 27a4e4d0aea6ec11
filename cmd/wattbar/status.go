package main

import (
	"context"
	"time"

	"github.com/distatus/battery"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wattbar/wattbar/pkg/ioreg"
	"github.com/wattbar/wattbar/pkg/smc"
	"github.com/wattbar/wattbar/pkg/telemetry"
	"github.com/wattbar/wattbar/pkg/types"
)

func bold(format string, a ...any) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func bool2Text(b bool) string {
	if b {
		return color.GreenString("✔")
	}
	return color.RedString("✘")
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print one full telemetry snapshot",
		Long:  `Sample the power registers and battery inventory once and print the result.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn := smc.New()
			if err := conn.Open(); err != nil {
				return errors.Wrap(err, "failed to open SMC connection")
			}
			defer func() { _ = conn.Close() }()

			sampler := telemetry.NewSampler(conn, ioreg.NewCommand(), telemetry.Options{})

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			snap := sampler.SampleOnce(ctx)

			printSnapshot(cmd, snap)
			printOSBatteryReadout(cmd)

			return nil
		},
	}
}

func printSnapshot(cmd *cobra.Command, snap types.Snapshot) {
	cmd.Println(bold("Battery:"))
	cmd.Printf("  Current charge: %s\n", bold("%d%%", snap.ChargePercent))
	if snap.DesignCapacity > 0 {
		cmd.Printf("  Health: %.1f%% (%d/%d mAh)\n", snap.HealthPercent, snap.MaxCapacity, snap.DesignCapacity)
	}
	cmd.Printf("  Cycle count: %d\n", snap.CycleCount)
	cmd.Printf("  Temperature: %.2f °C\n", snap.Temperature)
	cmd.Printf("  Serial: %s\n", snap.Serial)

	cmd.Println()
	cmd.Println(bold("Power flow:"))
	cmd.Printf("  System load: %.1f W\n", snap.SystemLoad)
	cmd.Printf("  Adapter: %.1f V, %.1f W (%.2f A)\n", snap.AdapterVoltage, snap.AdapterPower, snap.AdapterAmperage)
	cmd.Printf("  Battery: %.1f V, %+.2f A (%+.1f W)\n", snap.BatteryVoltage, snap.BatteryAmperage, snap.BatteryPower)
	cmd.Printf("  Charging: %s\n", bool2Text(snap.Charging))
}

// printOSBatteryReadout adds what the OS power service reports, as a
// cross-check against the register-derived numbers.
func printOSBatteryReadout(cmd *cobra.Command) {
	batteries, err := battery.GetAll()
	if err != nil || len(batteries) == 0 {
		return
	}

	bat := batteries[0] // Apple Silicon MacBooks only have one battery.
	if bat.State == battery.Discharging {
		bat.ChargeRate = -bat.ChargeRate
	}

	cmd.Println()
	cmd.Println(bold("OS battery readout:"))
	cmd.Printf("  State: %v\n", bat.State)
	cmd.Printf("  Charge rate: %.0f mW\n", bat.ChargeRate)
	cmd.Printf("  Design voltage: %.2f V\n", bat.DesignVoltage)
}
