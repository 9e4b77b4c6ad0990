package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/models"
)

type notifier struct {
	mu     sync.RWMutex
	next   int
	subs   map[int]func(models.Event)
	logger *logger.Logger
}

// NewNotifier returns a [Notifier] that calls subscribers synchronously, in
// no particular order. A panicking subscriber is logged and skipped.
func NewNotifier(logger *logger.Logger) Notifier {
	return &notifier{
		subs:   make(map[int]func(models.Event)),
		logger: logger,
	}
}

func (n *notifier) Subscribe(fn func(models.Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

func (n *notifier) Publish(ctx context.Context, events ...models.Event) {
	n.mu.RLock()
	subs := make([]func(models.Event), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.RUnlock()

	for _, ev := range events {
		for _, fn := range subs {
			n.deliver(ctx, fn, ev)
		}
	}
}

func (n *notifier) deliver(ctx context.Context, fn func(models.Event), ev models.Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error().
				Str("func", "notifier.deliver").
				Str("event", string(ev.Type)).
				Any("panic", r).
				Msg("event subscriber panicked")
		}
	}()
	fn(ev)
}
