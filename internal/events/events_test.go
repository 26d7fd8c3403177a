package events_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"plenario/internal/events"
)

func newTestBus() *events.Bus {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return events.NewBus(prometheus.NewRegistry(), logger)
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := newTestBus()
	defer bus.Stop()

	_, ch := bus.Subscribe(events.TypeCaseJudged)

	payload := events.CaseJudged{
		CaseID:        uuid.New(),
		SessionCaseID: uuid.New(),
		JudgedAt:      time.Now(),
	}
	bus.Publish(events.New(events.TypeCaseJudged, payload))

	select {
	case evt := <-ch:
		got, ok := evt.Data.(events.CaseJudged)
		if !ok {
			t.Fatalf("payload type = %T, want CaseJudged", evt.Data)
		}
		if got.CaseID != payload.CaseID {
			t.Errorf("CaseID = %s, want %s", got.CaseID, payload.CaseID)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestPublishIgnoresOtherTypes(t *testing.T) {
	bus := newTestBus()
	defer bus.Stop()

	_, ch := bus.Subscribe(events.TypeDecisionPublished)

	bus.Publish(events.New(events.TypeCaseJudged, events.CaseJudged{}))

	select {
	case evt := <-ch:
		t.Fatalf("unexpected delivery: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeFunc(t *testing.T) {
	bus := newTestBus()
	defer bus.Stop()

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	received := make([]events.Event, 0, 2)

	bus.SubscribeFunc(events.TypeDecisionPublished, func(evt events.Event) {
		mu.Lock()
		received = append(received, evt)
		mu.Unlock()
		wg.Done()
	})

	bus.Publish(events.New(events.TypeDecisionPublished, events.DecisionPublished{DecisionNumber: "1/2026"}))
	bus.Publish(events.New(events.TypeDecisionPublished, events.DecisionPublished{DecisionNumber: "2/2026"}))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callbacks not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Fatalf("received %d events, want 2", len(received))
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := newTestBus()
	defer bus.Stop()

	id, ch := bus.Subscribe(events.TypeCaseJudged)
	bus.Unsubscribe(events.TypeCaseJudged, id)

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}

	// Publishing after unsubscribe must not panic.
	bus.Publish(events.New(events.TypeCaseJudged, events.CaseJudged{}))
}

// Publishing while the bus is stopping must drop events instead of sending
// on a closed channel. Stop during a real shutdown races with in-flight
// requests that still publish.
func TestPublishDuringStopDoesNotPanic(t *testing.T) {
	for range 50 {
		bus := newTestBus()
		bus.Subscribe(events.TypeDecisionPublished)

		var wg sync.WaitGroup
		start := make(chan struct{})

		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			for range 100 {
				bus.Publish(events.New(events.TypeDecisionPublished, events.DecisionPublished{}))
			}
		}()
		go func() {
			defer wg.Done()
			<-start
			bus.Stop()
		}()

		close(start)
		wg.Wait()
	}
}

func TestStopClosesAllSubscribers(t *testing.T) {
	bus := newTestBus()

	_, ch1 := bus.Subscribe(events.TypeCaseJudged)
	_, ch2 := bus.Subscribe(events.TypeDecisionPublished)

	bus.Stop()

	for _, ch := range []<-chan events.Event{ch1, ch2} {
		select {
		case _, ok := <-ch:
			if ok {
				t.Fatal("expected closed channel, got event")
			}
		case <-time.After(time.Second):
			t.Fatal("channel not closed after Stop")
		}
	}
}
