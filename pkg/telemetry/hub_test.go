package telemetry

import (
	"testing"

	"github.com/wattbar/wattbar/pkg/types"
)

func TestHubDeliversToSubscribers(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	h.Publish(types.Snapshot{ChargePercent: 80})

	select {
	case snap := <-ch:
		if snap.ChargePercent != 80 {
			t.Errorf("ChargePercent = %d, want 80", snap.ChargePercent)
		}
	default:
		t.Fatal("no snapshot delivered")
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	// Overfill the buffer; Publish must never block.
	for i := 0; i < 64; i++ {
		h.Publish(types.Snapshot{CycleCount: i})
	}

	if len(ch) != cap(ch) {
		t.Errorf("len(ch) = %d, want full buffer %d", len(ch), cap(ch))
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	h.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel still open after Unsubscribe")
	}

	// A second Unsubscribe must not panic on the closed channel.
	h.Unsubscribe(ch)
}
