package testutil

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/samber/lo"
)

// InMemoryPubSub records every published message per topic and fans it out
// to live subscribers. Delivery is best effort: a full subscriber drops.
type InMemoryPubSub struct {
	mu        sync.RWMutex
	published map[string][]*message.Message
	subs      map[string][]chan *message.Message
}

func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		published: map[string][]*message.Message{},
		subs:      map[string][]chan *message.Message{},
	}
}

func (ps *InMemoryPubSub) Publish(_ context.Context, topic string, msg *message.Message) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.published[topic] = append(ps.published[topic], msg)
	for _, ch := range ps.subs[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

func (ps *InMemoryPubSub) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message, 64)

	ps.mu.Lock()
	ps.subs[topic] = append(ps.subs[topic], ch)
	ps.mu.Unlock()
	return ch, nil
}

// Messages returns a copy of what was published on topic
func (ps *InMemoryPubSub) Messages(topic string) []*message.Message {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return append([]*message.Message(nil), ps.published[topic]...)
}

func (ps *InMemoryPubSub) Close() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	lo.ForEach(lo.Flatten(lo.Values(ps.subs)), func(ch chan *message.Message, _ int) {
		close(ch)
	})
	clear(ps.subs)
	return nil
}

func (ps *InMemoryPubSub) Clear() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	clear(ps.published)
}
