package telemetry

import (
	"testing"
	"time"

	"github.com/wattbar/wattbar/pkg/types"
)

func TestRecorderEviction(t *testing.T) {
	r := NewRecorder(3)

	now := time.Now()
	for i := 0; i < 5; i++ {
		r.Add(now.Add(time.Duration(i)*time.Second), types.Snapshot{CycleCount: i})
	}

	records := r.Records()
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0].Snapshot.CycleCount != 2 || records[2].Snapshot.CycleCount != 4 {
		t.Errorf("unexpected eviction order: %+v", records)
	}
}

func TestRecorderAverageSystemLoad(t *testing.T) {
	r := NewRecorder(10)

	now := time.Now()
	// Outside the window.
	r.Add(now.Add(-2*time.Minute), types.Snapshot{SystemLoad: 100})
	// Inside the window.
	r.Add(now.Add(-30*time.Second), types.Snapshot{SystemLoad: 10})
	r.Add(now.Add(-10*time.Second), types.Snapshot{SystemLoad: 20})

	if got := r.AverageSystemLoad(time.Minute); got != 15 {
		t.Errorf("AverageSystemLoad = %v, want 15", got)
	}
}

func TestRecorderAverageEmptyWindow(t *testing.T) {
	r := NewRecorder(10)
	if got := r.AverageSystemLoad(time.Minute); got != 0 {
		t.Errorf("AverageSystemLoad on empty recorder = %v, want 0", got)
	}
}
