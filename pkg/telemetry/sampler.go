// Package telemetry periodically reconciles fast SMC register reads and
// slow ioreg inventory dumps into immutable snapshots.
package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wattbar/wattbar/pkg/ioreg"
	"github.com/wattbar/wattbar/pkg/types"
)

// chargingThreshold is the battery current (A) above which the battery
// is considered charging. Readings hover around zero when the charge
// limit holds, so a small hysteresis keeps the flag from flapping.
const chargingThreshold = 0.05

// DefaultInterval is the sampling cadence.
const DefaultInterval = time.Second

// DefaultHistorySize bounds the snapshot history ring.
const DefaultHistorySize = 120

// RegisterReader reads the power registers the fast path needs. The
// calls are cheap and synchronous; *smc.AppleSMC implements this.
type RegisterReader interface {
	SystemPowerWatts() (float64, error)
	AdapterVoltageVolts() (float64, error)
	AdapterPowerWatts() (float64, error)
	BatteryVoltageVolts() (float64, error)
	BatteryAmperageAmps() (float64, error)
}

// Source produces the raw battery inventory text. It may be slow and
// may fail; *ioreg.Command implements this.
type Source interface {
	Dump(ctx context.Context) (string, error)
}

// Options tunes a Sampler. Zero values select defaults.
type Options struct {
	Interval    time.Duration
	HistorySize int
}

// Sampler owns the published Snapshot. Each active tick reads the five
// power registers synchronously and dispatches at most one concurrent
// inventory refresh; inventory-sourced fields keep their last known
// good values until a refresh succeeds.
type Sampler struct {
	reader   RegisterReader
	source   Source
	interval time.Duration

	// visible is the gate written by the presentation layer. Hidden
	// ticks do no register reads and spawn no subprocess.
	visible atomic.Bool

	// refreshing enforces at most one inventory dump in flight.
	refreshing atomic.Bool

	mu   sync.Mutex // guards slow
	slow slowFields

	snapshot atomic.Pointer[types.Snapshot]
	hub      *Hub
	recorder *Recorder
}

// slowFields is the inventory-sourced state, merged from parse results
// as they complete and copied into every published snapshot.
type slowFields struct {
	designCapacity int
	maxCapacity    int
	healthPercent  float64
	cycleCount     int
	chargePercent  int
	temperature    float64
	serial         string
}

// NewSampler returns a Sampler. It starts hidden; the presentation
// layer calls SetVisible(true) when its window is shown.
func NewSampler(reader RegisterReader, source Source, opts Options) *Sampler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}

	s := &Sampler{
		reader:   reader,
		source:   source,
		interval: opts.Interval,
		hub:      NewHub(),
		recorder: NewRecorder(opts.HistorySize),
	}
	s.slow.serial = types.SerialUnknown
	s.snapshot.Store(&types.Snapshot{Serial: types.SerialUnknown})

	return s
}

// SetVisible pauses or resumes sampling. Stale-by-one-tick transitions
// are acceptable, so no lock is needed beyond the atomic.
func (s *Sampler) SetVisible(visible bool) {
	s.visible.Store(visible)
}

// Visible reports the current gate state.
func (s *Sampler) Visible() bool {
	return s.visible.Load()
}

// Snapshot returns the most recently published snapshot.
func (s *Sampler) Snapshot() types.Snapshot {
	return *s.snapshot.Load()
}

// Hub returns the snapshot fan-out for subscribers.
func (s *Sampler) Hub() *Hub {
	return s.hub
}

// History returns the recorder of recent snapshots.
func (s *Sampler) History() *Recorder {
	return s.recorder
}

// Run drives Tick on the configured cadence until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one sampling cycle. When hidden it is a no-op. The fast
// register fields are derived immediately from readings taken in this
// tick; the inventory refresh completes asynchronously and lands in a
// later snapshot.
func (s *Sampler) Tick(ctx context.Context) {
	if !s.visible.Load() {
		return
	}

	s.publish(s.sampleFast())
	s.refreshInventory(ctx)
}

// SampleOnce performs one full synchronous cycle, inventory included,
// regardless of the visibility gate. Intended for one-shot CLI use.
func (s *Sampler) SampleOnce(ctx context.Context) types.Snapshot {
	out, err := s.source.Dump(ctx)
	if err != nil {
		logrus.WithError(err).Warn("battery inventory read failed, keeping previous values")
	} else {
		s.merge(ioreg.Parse(out))
	}

	snap := s.sampleFast()
	s.publish(snap)
	return snap
}

// sampleFast builds the next snapshot from this tick's register reads
// plus the current inventory state. All derived fields come from the
// same generation of readings.
func (s *Sampler) sampleFast() types.Snapshot {
	prev := s.Snapshot()
	next := prev

	next.SystemLoad = s.readRegister("system power", prev.SystemLoad, s.reader.SystemPowerWatts)
	next.AdapterVoltage = s.readRegister("adapter voltage", prev.AdapterVoltage, s.reader.AdapterVoltageVolts)
	next.AdapterPower = s.readRegister("adapter power", prev.AdapterPower, s.reader.AdapterPowerWatts)
	next.BatteryVoltage = s.readRegister("battery voltage", prev.BatteryVoltage, s.reader.BatteryVoltageVolts)
	next.BatteryAmperage = s.readRegister("battery amperage", prev.BatteryAmperage, s.reader.BatteryAmperageAmps)

	if next.AdapterVoltage > 0.01 {
		next.AdapterAmperage = next.AdapterPower / next.AdapterVoltage
	} else {
		next.AdapterAmperage = 0
	}
	next.BatteryPower = next.BatteryVoltage * next.BatteryAmperage
	next.Charging = next.BatteryAmperage > chargingThreshold

	s.mu.Lock()
	next.DesignCapacity = s.slow.designCapacity
	next.MaxCapacity = s.slow.maxCapacity
	next.HealthPercent = s.slow.healthPercent
	next.CycleCount = s.slow.cycleCount
	next.ChargePercent = s.slow.chargePercent
	next.Temperature = s.slow.temperature
	next.Serial = s.slow.serial
	s.mu.Unlock()

	return next
}

// readRegister reads one register, keeping the previous value on error.
// Register failures are absorbed here and never reach consumers.
func (s *Sampler) readRegister(name string, prev float64, read func() (float64, error)) float64 {
	v, err := read()
	if err != nil {
		logrus.WithError(err).WithField("register", name).Debug("register read failed, keeping previous value")
		return prev
	}
	return v
}

// refreshInventory dispatches one asynchronous inventory dump. If a
// previous dump is still in flight the refresh is simply dropped, so a
// stalled subprocess cannot fan out.
func (s *Sampler) refreshInventory(ctx context.Context) {
	if !s.refreshing.CompareAndSwap(false, true) {
		logrus.Trace("inventory refresh already in flight, skipping")
		return
	}

	go func() {
		defer s.refreshing.Store(false)

		out, err := s.source.Dump(ctx)
		if err != nil {
			logrus.WithError(err).Error("battery inventory read failed, keeping previous values")
			return
		}
		s.merge(ioreg.Parse(out))
	}()
}

// merge applies a parse result to the inventory state. Only fields the
// parser located are touched; everything else keeps its last known
// good value.
func (s *Sampler) merge(r ioreg.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.DesignCapacity != nil {
		s.slow.designCapacity = *r.DesignCapacity
	}
	if r.MaxCapacity != nil {
		s.slow.maxCapacity = *r.MaxCapacity
	}
	// Health needs both capacities. A dump may carry the design value
	// without the max; recomputing then would overwrite a previously
	// valid health with zero.
	if s.slow.designCapacity > 0 && s.slow.maxCapacity > 0 {
		s.slow.healthPercent = 100 * float64(s.slow.maxCapacity) / float64(s.slow.designCapacity)
	}
	if r.CycleCount != nil {
		s.slow.cycleCount = *r.CycleCount
	}
	if r.ChargePercent != nil {
		s.slow.chargePercent = clampPercent(*r.ChargePercent)
	}
	if r.Temperature != nil {
		s.slow.temperature = *r.Temperature
	}
	if r.Serial != nil {
		s.slow.serial = *r.Serial
	}
}

func (s *Sampler) publish(snap types.Snapshot) {
	s.snapshot.Store(&snap)
	s.recorder.Add(time.Now(), snap)
	s.hub.Publish(snap)
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
