package telemetry

import (
	"sync"
	"time"

	"github.com/wattbar/wattbar/pkg/types"
)

// Record is one published snapshot with the time it was published.
type Record struct {
	Time     time.Time
	Snapshot types.Snapshot
}

// Recorder keeps the last N published snapshots so consumers can show
// short-window aggregates (e.g. average system load) without sampling
// on their own.
type Recorder struct {
	maxRecordCount int
	records        []Record
	mu             *sync.Mutex
}

// NewRecorder returns a Recorder holding at most maxRecordCount records.
func NewRecorder(maxRecordCount int) *Recorder {
	return &Recorder{
		maxRecordCount: maxRecordCount,
		records:        make([]Record, 0),
		mu:             &sync.Mutex{},
	}
}

// Add appends a record, evicting the oldest when full.
func (r *Recorder) Add(t time.Time, snap types.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) >= r.maxRecordCount {
		r.records = r.records[1:]
	}
	// Round to strip the monotonic clock reading, so time.Since stays
	// accurate across system sleep.
	r.records = append(r.records, Record{Time: t.Round(0), Snapshot: snap})
}

// Records returns all held records, oldest first.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Last returns the records published within the last duration, newest
// first.
func (r *Recorder) Last(last time.Duration) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Record
	for i := len(r.records) - 1; i >= 0; i-- {
		if time.Since(r.records[i].Time) > last {
			break
		}
		out = append(out, r.records[i])
	}
	return out
}

// AverageSystemLoad returns the mean system power draw over the last
// duration, or 0 when no records fall inside the window.
func (r *Recorder) AverageSystemLoad(last time.Duration) float64 {
	records := r.Last(last)
	if len(records) == 0 {
		return 0
	}

	var sum float64
	for _, rec := range records {
		sum += rec.Snapshot.SystemLoad
	}
	return sum / float64(len(records))
}
