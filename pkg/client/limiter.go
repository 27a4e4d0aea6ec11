package client

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultDebounceWindow is how long the Limiter waits after the last
// Set before transmitting, mirroring the slider's on-editing-change
// boundary.
const DefaultDebounceWindow = 400 * time.Millisecond

// Limiter debounces charge-limit requests from rapid slider movement so
// only the settled final value is transmitted. Every request carries a
// monotonically increasing sequence number; a send already in flight is
// never cancelled mid-transport, its result is simply dropped when a
// newer request has been issued since.
type Limiter struct {
	client  *Client
	window  time.Duration
	results chan Result

	mu      sync.Mutex
	seq     uint64
	pending int
	timer   *time.Timer
}

// NewLimiter returns a Limiter transmitting through client after the
// debounce window elapses without a newer Set.
func NewLimiter(client *Client, window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Limiter{
		client:  client,
		window:  window,
		results: make(chan Result, 8),
	}
}

// Results delivers the outcome of transmitted requests. Results
// superseded by a newer Set are dropped before delivery. The channel is
// buffered and never blocks the transport.
func (l *Limiter) Results() <-chan Result {
	return l.results
}

// Set records a new desired limit and restarts the debounce timer. It
// returns the request's sequence number; only the result carrying the
// highest issued sequence is ever delivered.
func (l *Limiter) Set(percent int) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	seq := l.seq
	l.pending = percent

	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.window, func() { l.send(seq) })

	logrus.WithFields(logrus.Fields{
		"limit": percent,
		"seq":   seq,
	}).Debug("charge-limit change queued")

	return seq
}

// Stop cancels a not-yet-transmitted pending request, if any.
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *Limiter) send(seq uint64) {
	l.mu.Lock()
	if seq != l.seq {
		// Superseded while the timer callback was firing.
		l.mu.Unlock()
		return
	}
	percent := l.pending
	l.mu.Unlock()

	res := l.client.SetLimit(percent)
	res.Seq = seq

	l.mu.Lock()
	stale := seq != l.seq
	l.mu.Unlock()
	if stale {
		logrus.WithField("seq", seq).Debug("dropping stale charge-limit result")
		return
	}

	select {
	case l.results <- res:
	default:
		logrus.Warn("charge-limit result dropped, consumer not keeping up")
	}
}
