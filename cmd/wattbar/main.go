package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wattbar/wattbar/pkg/client"
	"github.com/wattbar/wattbar/pkg/config"
)

var (
	logLevel       = "info"
	unixSocketPath = client.DefaultSocketPath
	configPath     = "/etc/wattbar.json"

	conf config.Config
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: wattbar daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running? Have you installed it?")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or check the permissions of the daemon socket")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wattbar",
		Short:        "wattbar shows live battery/power telemetry and sets charge limits on Apple Silicon MacBooks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupLogger(); err != nil {
				return err
			}

			c, err := config.NewFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}
			conf = c
			logrus.WithFields(c.LogrusFields()).Debug("config loaded")

			// The flag wins over the config file when set explicitly.
			if !cmd.Flags().Changed("daemon-socket") {
				unixSocketPath = conf.SocketPath()
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "wattbar daemon unix socket path")

	cmd.AddCommand(
		NewVersionCommand(),
		NewLimitCommand(),
		NewStatusCommand(),
		NewWatchCommand(),
	)

	return cmd
}
