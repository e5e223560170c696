package track

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/megambeast/fincompare/internal/models"
)

type fakeJournal struct {
	mu     sync.Mutex
	events []*models.Event
	err    error
	done   chan struct{}
}

func (j *fakeJournal) SaveInteraction(ctx context.Context, ev *models.Event) error {
	j.mu.Lock()
	j.events = append(j.events, ev)
	j.mu.Unlock()
	if j.done != nil {
		close(j.done)
	}
	return j.err
}

func (j *fakeJournal) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.events)
}

type fakeForwarder struct {
	mu    sync.Mutex
	calls int
	err   error
	done  chan struct{}
}

func (f *fakeForwarder) Track(ctx context.Context, ev *models.Event) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return f.err
}

func waitFor(t *testing.T, done chan struct{}, what string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestRecordDeliversToJournalAndForwarder(t *testing.T) {
	journal := &fakeJournal{}
	forwarder := &fakeForwarder{done: make(chan struct{})}
	tracker := NewTracker(journal, forwarder, time.Second)

	tracker.Record(&models.Event{UserID: "u1", Type: "product_view"})

	waitFor(t, forwarder.done, "forwarder")
	if journal.count() != 1 {
		t.Errorf("expected 1 journaled event, got %d", journal.count())
	}
}

func TestRecordStampsOccurredAt(t *testing.T) {
	journal := &fakeJournal{done: make(chan struct{})}
	tracker := NewTracker(journal, nil, time.Second)

	ev := &models.Event{UserID: "u1", Type: "product_view"}
	tracker.Record(ev)

	waitFor(t, journal.done, "journal")
	if ev.OccurredAt.IsZero() {
		t.Error("expected OccurredAt stamped on record")
	}
}

func TestRecordSwallowsFailures(t *testing.T) {
	journal := &fakeJournal{err: errors.New("db down")}
	forwarder := &fakeForwarder{err: errors.New("collaborator down"), done: make(chan struct{})}
	tracker := NewTracker(journal, forwarder, time.Second)

	// Must not panic or surface errors to the caller
	tracker.Record(&models.Event{UserID: "u1", Type: "comparison"})
	waitFor(t, forwarder.done, "forwarder")
}

func TestSubscribersReceiveEvents(t *testing.T) {
	tracker := NewTracker(nil, nil, time.Second)
	sub := tracker.Subscribe()
	defer tracker.Unsubscribe(sub)

	tracker.Record(&models.Event{UserID: "u1", Type: "filter_change"})

	select {
	case ev := <-sub:
		if ev.Type != "filter_change" {
			t.Errorf("expected filter_change, got %s", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the event")
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	tracker := NewTracker(nil, nil, time.Second)
	sub := tracker.Subscribe()
	defer tracker.Unsubscribe(sub)

	// Overrun the buffer; Record must never block
	for i := 0; i < 100; i++ {
		tracker.Record(&models.Event{UserID: "u1", Type: "spam"})
	}

	received := 0
	for {
		select {
		case <-sub:
			received++
			continue
		default:
		}
		break
	}
	if received == 0 || received > 16 {
		t.Errorf("expected between 1 and 16 buffered events, got %d", received)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	tracker := NewTracker(nil, nil, time.Second)
	sub := tracker.Subscribe()
	tracker.Unsubscribe(sub)

	if _, ok := <-sub; ok {
		t.Error("expected channel closed after unsubscribe")
	}

	// Double unsubscribe must be safe
	tracker.Unsubscribe(sub)
}
