package telemetry

import (
	"sync"

	"github.com/wattbar/wattbar/pkg/types"
)

// Hub fans published snapshots out to subscribers. Sends never block:
// a subscriber that falls behind misses intermediate snapshots, which
// is fine because every snapshot is complete on its own.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan types.Snapshot]struct{}
}

func NewHub() *Hub { return &Hub{subs: make(map[chan types.Snapshot]struct{})} }

func (h *Hub) Subscribe() chan types.Snapshot {
	ch := make(chan types.Snapshot, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan types.Snapshot) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(snap types.Snapshot) {
	if h == nil {
		return
	}
	h.mu.RLock()
	for ch := range h.subs {
		// Non-blocking send; drop if subscriber is slow
		select {
		case ch <- snap:
		default:
		}
	}
	h.mu.RUnlock()
}
