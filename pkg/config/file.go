package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wattbar/wattbar/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	SocketPath:       ptr.To("/var/run/wattbar.sock"),
	SampleIntervalMS: ptr.To(1000),
	DebounceWindowMS: ptr.To(400),
	HistorySize:      ptr.To(120),
}

var _ Config = &File{}

// File is a JSON-file-backed Config. Fields absent from the file fall
// back to package defaults, so old config files keep working.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// RawFileConfig is the on-disk shape of the configuration.
type RawFileConfig struct {
	SocketPath       *string `json:"socketPath,omitempty"`
	SampleIntervalMS *int    `json:"sampleIntervalMilliseconds,omitempty"`
	DebounceWindowMS *int    `json:"debounceWindowMilliseconds,omitempty"`
	HistorySize      *int    `json:"historySize,omitempty"`
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (f *File) SocketPath() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.SocketPath != nil {
		return *f.c.SocketPath
	}
	return *defaultFileConfig.SocketPath
}

func (f *File) SampleInterval() time.Duration {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ms := *defaultFileConfig.SampleIntervalMS
	if f.c.SampleIntervalMS != nil {
		ms = *f.c.SampleIntervalMS
	}
	return time.Duration(ms) * time.Millisecond
}

func (f *File) DebounceWindow() time.Duration {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ms := *defaultFileConfig.DebounceWindowMS
	if f.c.DebounceWindowMS != nil {
		ms = *f.c.DebounceWindowMS
	}
	return time.Duration(ms) * time.Millisecond
}

func (f *File) HistorySize() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.HistorySize != nil {
		return *f.c.HistorySize
	}
	return *defaultFileConfig.HistorySize
}

func (f *File) SetSocketPath(p string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.SocketPath = &p
}

func (f *File) SetSampleInterval(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.SampleIntervalMS = ptr.To(int(d / time.Millisecond))
}

func (f *File) SetDebounceWindow(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DebounceWindowMS = ptr.To(int(d / time.Millisecond))
}

func (f *File) SetHistorySize(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HistorySize = &n
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		// An empty file also means defaults.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

// LogrusFields renders the effective configuration for startup logging.
func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"socketPath":     f.SocketPath(),
		"sampleInterval": f.SampleInterval().String(),
		"debounceWindow": f.DebounceWindow().String(),
		"historySize":    f.HistorySize(),
	}
}
