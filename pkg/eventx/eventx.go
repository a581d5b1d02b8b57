// Package eventx is a small in-process publish/subscribe bus with a closed
// set of events. Publishing is synchronous: every handler subscribed at the
// moment of Publish has returned by the time Publish does.
package eventx

import (
	"fmt"
	"log/slog"
	"sync"
)

// Event identifies something that happened to the process as a whole.
type Event uint8

const (
	// EventAuthenticationExpired is published when the API rejects the
	// current bearer token. It carries no payload.
	EventAuthenticationExpired Event = iota + 1
)

var eventNames = map[Event]string{
	EventAuthenticationExpired: "authenticationExpired",
}

// String returns the wire name of the event.
func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", uint8(e))
}

// ParseEvent maps a wire name back to its Event.
func ParseEvent(name string) (Event, error) {
	for ev, n := range eventNames {
		if n == name {
			return ev, nil
		}
	}
	return 0, fmt.Errorf("eventx: unknown event %q", name)
}

// Handler reacts to a published event.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans events out to subscribers. The zero value is ready to use.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Event][]subscription
	logger *slog.Logger
}

// NewBus returns a bus that logs recovered handler panics to logger.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers h for ev. The returned function removes it and may be
// called any number of times.
func (b *Bus) Subscribe(ev Event, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[Event][]subscription)
	}
	b.nextID++
	id := b.nextID
	b.subs[ev] = append(b.subs[ev], subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(ev, id) })
	}
}

func (b *Bus) remove(ev Event, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[ev]
	for i, s := range subs {
		if s.id == id {
			// Copy so a Publish iterating the old slice is not disturbed.
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.subs[ev] = next
			return
		}
	}
}

// Publish calls every handler currently subscribed to ev, in subscription
// order. Handlers subscribed during the publish are not called. A panicking
// handler is logged and skipped.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	snapshot := b.subs[ev]
	b.mu.Unlock()

	for _, s := range snapshot {
		b.call(ev, s.handler)
	}
}

func (b *Bus) call(ev Event, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.log().Error("event handler panicked", "event", ev.String(), "panic", r)
		}
	}()
	h(ev)
}

// Subscribers returns how many handlers are registered for ev.
func (b *Bus) Subscribers(ev Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[ev])
}

func (b *Bus) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return slog.Default()
}
