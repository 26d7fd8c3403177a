package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const subscriberQueueSize = 32

// Type identifies a category of domain event.
type Type string

const (
	TypeCaseJudged        Type = "case.judged"
	TypeDecisionPublished Type = "decision.published"
)

// Event carries a typed domain payload with its emission time.
type Event struct {
	Timestamp time.Time
	Data      any
	Type      Type
}

// CaseJudged is emitted when a case appearance reaches its final judged state.
type CaseJudged struct {
	CaseID        uuid.UUID `json:"case_id"`
	SessionCaseID uuid.UUID `json:"session_case_id"`
	JudgedAt      time.Time `json:"judged_at"`
}

// DecisionPublished is emitted when a decision receives a publication entry.
type DecisionPublished struct {
	CaseID         uuid.UUID `json:"case_id"`
	DecisionID     uuid.UUID `json:"decision_id"`
	DecisionNumber string    `json:"decision_number"`
	PublishedAt    time.Time `json:"published_at"`
}

// New wraps a payload in an Event stamped with the current time.
func New(t Type, data any) Event {
	return Event{
		Type:      t,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// HandlerFunc consumes delivered events.
type HandlerFunc func(Event)

// SubscriberID identifies a registration for later removal.
type SubscriberID int

// subscriber pairs a delivery channel with a close guard so a concurrent
// publish can never send on a channel that Unsubscribe or Stop has closed.
type subscriber struct {
	ch     chan Event
	mu     sync.RWMutex
	closed bool
}

func newSubscriber() *subscriber {
	return &subscriber{ch: make(chan Event, subscriberQueueSize)}
}

// deliver attempts a non-blocking send. It reports false when the event was
// dropped, either because the queue is full or the subscriber is closed.
func (s *subscriber) deliver(evt Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- evt:
		return true
	default:
		return false
	}
}

// stop closes the channel once, waiting out any in-flight deliver.
func (s *subscriber) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// Bus fans domain events out to subscribers. Delivery runs on a
// per-subscriber goroutine so publishers never block on slow consumers
// beyond the subscriber queue capacity.
type Bus struct {
	subscribers map[Type]map[SubscriberID]*subscriber
	metrics     *busMetrics
	lastID      SubscriberID
	mu          sync.RWMutex
	logger      *slog.Logger
}

// NewBus creates a Bus. A nil registry disables metrics.
func NewBus(registry prometheus.Registerer, logger *slog.Logger) *Bus {
	b := &Bus{
		subscribers: make(map[Type]map[SubscriberID]*subscriber),
		logger:      logger.With("system", "events"),
	}
	if registry != nil {
		b.metrics = newBusMetrics(registry)
	}
	return b
}

// Subscribe registers a channel consumer for an event type.
func (b *Bus) Subscribe(t Type) (SubscriberID, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastID++
	id := b.lastID

	if _, ok := b.subscribers[t]; !ok {
		b.subscribers[t] = make(map[SubscriberID]*subscriber)
	}

	sub := newSubscriber()
	b.subscribers[t][id] = sub

	if b.metrics != nil {
		b.metrics.subscribers.WithLabelValues(string(t)).Inc()
	}

	return id, sub.ch
}

// SubscribeFunc registers a callback consumer for an event type. The
// callback runs on a dedicated goroutine that exits when the bus stops
// or the subscriber is removed.
func (b *Bus) SubscribeFunc(t Type, fn HandlerFunc) SubscriberID {
	id, ch := b.Subscribe(t)
	go func() {
		for evt := range ch {
			fn(evt)
		}
	}()
	return id
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(t Type, id SubscriberID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subscribers[t]
	if !ok {
		return
	}

	sub, ok := subs[id]
	if !ok {
		return
	}

	delete(subs, id)
	if len(subs) == 0 {
		delete(b.subscribers, t)
	}

	sub.stop()

	if b.metrics != nil {
		b.metrics.subscribers.WithLabelValues(string(t)).Dec()
	}
}

// Publish delivers an event to every subscriber of its type. Events
// for subscribers whose queue is full are dropped and counted.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	targets := make([]*subscriber, 0, len(b.subscribers[evt.Type]))
	for _, sub := range b.subscribers[evt.Type] {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		if !sub.deliver(evt) {
			b.logger.Warn("dropping event for full or stopped subscriber", "type", evt.Type)
			if b.metrics != nil {
				b.metrics.dropped.WithLabelValues(string(evt.Type)).Inc()
			}
		}
	}

	if b.metrics != nil {
		b.metrics.published.WithLabelValues(string(evt.Type)).Inc()
	}
}

// Stop closes every subscriber channel so SubscribeFunc goroutines
// exit. The bus accepts new subscriptions afterward.
func (b *Bus) Stop() {
	b.mu.Lock()
	subs := b.subscribers
	b.subscribers = make(map[Type]map[SubscriberID]*subscriber)
	b.mu.Unlock()

	for _, typeSubs := range subs {
		for _, sub := range typeSubs {
			sub.stop()
		}
	}

	if b.metrics != nil {
		b.metrics.subscribers.Reset()
	}
}
