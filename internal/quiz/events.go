package quiz

import (
	"reflect"
	"sync"
	"time"
)

// EventType identifies a quiz event.
type EventType string

const (
	EventTypeStateChanged EventType = "state_changed"
	EventTypeGameFinished EventType = "game_finished"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything published on the EventBus.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// StateChangedEvent is published after every intent that changed state.
type StateChangedEvent struct {
	Intent    string
	Snapshot  Snapshot
	timestamp time.Time
}

func (e StateChangedEvent) EventType() EventType { return EventTypeStateChanged }
func (e StateChangedEvent) Timestamp() time.Time { return e.timestamp }

// NewStateChangedEvent creates a state change event for intent.
func NewStateChangedEvent(intent string, snapshot Snapshot) StateChangedEvent {
	return StateChangedEvent{
		Intent:    intent,
		Snapshot:  snapshot,
		timestamp: time.Now(),
	}
}

// GameFinishedEvent is published once when a game moves to PhaseFinished.
type GameFinishedEvent struct {
	SessionID string
	Score     Score
	timestamp time.Time
}

func (e GameFinishedEvent) EventType() EventType { return EventTypeGameFinished }
func (e GameFinishedEvent) Timestamp() time.Time { return e.timestamp }

// NewGameFinishedEvent creates a finish event.
func NewGameFinishedEvent(sessionID string, score Score) GameFinishedEvent {
	return GameFinishedEvent{
		SessionID: sessionID,
		Score:     score,
		timestamp: time.Now(),
	}
}

// EventSubscriber receives events from an EventBus.
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Subscribers whose
// type is not comparable, such as SubscriberFunc, cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sameSubscriber(sub, subscriber) {
			bus.subscribers = append(bus.subscribers[:i:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

func sameSubscriber(a, b EventSubscriber) bool {
	t := reflect.TypeOf(a)
	if t == nil || t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subscribers := append([]EventSubscriber(nil), bus.subscribers...)
	bus.mu.RUnlock()

	for _, subscriber := range subscribers {
		subscriber.OnEvent(event)
	}
}
