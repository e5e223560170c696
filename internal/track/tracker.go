package track

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/megambeast/fincompare/internal/models"
)

// Forwarder sends events to the external tracking collaborator.
type Forwarder interface {
	Track(ctx context.Context, ev *models.Event) error
}

// Journal records events locally.
type Journal interface {
	SaveInteraction(ctx context.Context, ev *models.Event) error
}

// Tracker fans tracked interactions out to the journal, the external
// collaborator and live subscribers. Recording is fire-and-forget: it never
// blocks the caller and never reports an error; failures are logged and
// swallowed.
type Tracker struct {
	journal   Journal
	forwarder Forwarder
	timeout   time.Duration

	mu   sync.RWMutex
	subs map[chan *models.Event]struct{}
}

// NewTracker creates a tracker. Journal and forwarder may be nil.
func NewTracker(journal Journal, forwarder Forwarder, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Tracker{
		journal:   journal,
		forwarder: forwarder,
		timeout:   timeout,
		subs:      make(map[chan *models.Event]struct{}),
	}
}

// Record accepts an event, broadcasts it to subscribers and delivers it to
// the journal and the collaborator in the background.
func (t *Tracker) Record(ev *models.Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	t.broadcast(ev)
	go t.deliver(ev)
}

// deliver journals and forwards the event, best effort.
func (t *Tracker) deliver(ev *models.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if t.journal != nil {
		if err := t.journal.SaveInteraction(ctx, ev); err != nil {
			slog.Warn("failed to journal interaction",
				"event_type", ev.Type,
				"error", err,
			)
		}
	}

	if t.forwarder != nil {
		if err := t.forwarder.Track(ctx, ev); err != nil {
			slog.Warn("failed to forward interaction",
				"event_type", ev.Type,
				"error", err,
			)
		}
	}
}

// Subscribe returns a channel receiving every recorded event. Slow
// subscribers drop events instead of blocking recording.
func (t *Tracker) Subscribe() chan *models.Event {
	ch := make(chan *models.Event, 16)
	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (t *Tracker) Unsubscribe(ch chan *models.Event) {
	t.mu.Lock()
	if _, ok := t.subs[ch]; ok {
		delete(t.subs, ch)
		close(ch)
	}
	t.mu.Unlock()
}

func (t *Tracker) broadcast(ev *models.Event) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for ch := range t.subs {
		select {
		case ch <- ev:
		default:
			// subscriber is behind, drop
		}
	}
}
