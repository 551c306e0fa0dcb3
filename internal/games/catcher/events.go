package catcher

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// EventKind identifies a session event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventCollect           // Fruit caught
	EventHazard            // Hazard caught; EventEnded follows
	EventLevelUp
	EventEnded // Carries the summary
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventCollect:
		return "collect"
	case EventHazard:
		return "hazard"
	case EventLevelUp:
		return "level_up"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is emitted by a session. Fields not relevant to the kind are zero.
type Event struct {
	Kind      EventKind
	SessionID uuid.UUID
	Score     int
	Level     int
	TimeLeft  int
	Item      Kind    // Collect, Hazard
	Points    int     // Collect
	Summary   Summary // Ended
}

// Subscriber receives session events. Errors and panics are logged by the
// bus and never reach the session.
type Subscriber interface {
	HandleEvent(e Event) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(e Event) error

// HandleEvent calls f(e).
func (f SubscriberFunc) HandleEvent(e Event) error {
	return f(e)
}

// Bus delivers events synchronously to subscribers in subscription order.
type Bus struct {
	logger *log.Logger
	subs   []Subscriber
}

// NewBus creates a bus. A nil logger uses the default logger.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe adds a subscriber.
func (b *Bus) Subscribe(s Subscriber) {
	b.subs = append(b.subs, s)
}

// Emit delivers e to every subscriber. A failing subscriber does not
// prevent delivery to the others.
func (b *Bus) Emit(e Event) {
	for _, s := range b.subs {
		if err := b.deliver(s, e); err != nil {
			b.logger.Warn("event subscriber failed", "event", e.Kind, "err", err)
		}
	}
}

func (b *Bus) deliver(s Subscriber, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.HandleEvent(e)
}
