// Package bus is a small synchronous publish/subscribe hub connecting the
// controller (TUI and CLI), the organizer that owns state, and the renderer.
package bus

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Handler receives a published payload. A returned error is reported back to the publisher.
type Handler func(topic Topic, payload any) error

// Bus delivers payloads to subscribers in subscription order, on the publisher's goroutine.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic][]*Subscription
	logger *log.Logger
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	bus     *Bus
	id      int
	topic   Topic
	handler Handler
	once    sync.Once
}

func New(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bus{subs: map[Topic][]*Subscription{}, logger: logger}
}

func (b *Bus) Subscribe(topic Topic, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	s := &Subscription{bus: b, id: b.nextID, topic: topic, handler: h}
	b.subs[topic] = append(b.subs[topic], s)
	return s
}

// Unsubscribe removes the handler. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.once.Do(func() {
		b := s.bus
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[s.topic]
		for i, it := range list {
			if it == s {
				b.subs[s.topic] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	})
}

// Subscribers returns the number of live handlers for topic.
func (b *Bus) Subscribers(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

// Publish calls every subscriber of topic and joins their errors.
// Handlers may publish or (un)subscribe re-entrantly.
func (b *Bus) Publish(topic Topic, payload any) error {
	b.mu.Lock()
	list := append([]*Subscription(nil), b.subs[topic]...)
	b.mu.Unlock()

	b.logger.Debug("publish", "topic", topic, "subscribers", len(list))

	var errs []error
	for _, s := range list {
		if err := s.handler(topic, payload); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", topic, err))
		}
	}
	return errors.Join(errs...)
}
