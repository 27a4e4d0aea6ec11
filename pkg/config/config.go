package config

import "time"

type Config interface {
	SocketPath() string
	SampleInterval() time.Duration
	DebounceWindow() time.Duration
	HistorySize() int

	SetSocketPath(string)
	SetSampleInterval(time.Duration)
	SetDebounceWindow(time.Duration)
	SetHistorySize(int)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
