package notify

import (
	"context"
	"sync"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// Event kinds emitted by the replenishment service.
const (
	EventRecommendationCreated  = "recommendation.created"
	EventRecommendationApproved = "recommendation.approved"
	EventRecommendationRejected = "recommendation.rejected"
	EventOrderSent              = "order.sent"
)

// Event is one observable side effect of the engine.
type Event struct {
	Kind           string                        `json:"kind"`
	At             time.Time                     `json:"at"`
	Recommendation *domain.ReorderRecommendation `json:"recommendation,omitempty"`
	Order          *domain.PurchaseOrder         `json:"order,omitempty"`
	Reason         string                        `json:"reason,omitempty"`
}

// Sink receives engine events. Implementations must not block the
// analysis cycle; publish failures are the sink's problem to log.
type Sink interface {
	Publish(ctx context.Context, event Event)
}

// LogSink writes events to the structured log. It is the default sink.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (LogSink) Publish(ctx context.Context, event Event) {
	entry := log.Info().Str("kind", event.Kind)
	if event.Recommendation != nil {
		entry = entry.
			Str("recommendation_id", event.Recommendation.ID).
			Str("product_id", event.Recommendation.ProductID).
			Str("urgency", event.Recommendation.Urgency)
	}
	if event.Order != nil {
		entry = entry.Str("order_number", event.Order.OrderNumber)
	}
	if event.Reason != "" {
		entry = entry.Str("reason", event.Reason)
	}
	entry.Msg("replenishment event")
}

// MemorySink records events for inspection in tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{events: make([]Event, 0)}
}

func (s *MemorySink) Publish(ctx context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns a copy of everything published so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// EventsOfKind filters the recorded events by kind.
func (s *MemorySink) EventsOfKind(kind string) []Event {
	var out []Event
	for _, e := range s.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
