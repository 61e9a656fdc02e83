// Package live fans out view-state changes to connected dashboards.
package live

import (
	"sync"

	"frontdesk/internal/domain"
)

type subscriber struct {
	ch     chan domain.Topic
	topics map[domain.Topic]bool
}

// Broker рассылает топики изменённых данных подписчикам. Доставка
// неблокирующая: медленный подписчик теряет уведомления.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
	buffer int
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 8
	}
	return &Broker{subs: make(map[int]*subscriber), buffer: buffer}
}

// Subscribe registers for the given topics, or every topic when none are
// given. The returned cancel func closes the channel.
func (b *Broker) Subscribe(topics ...domain.Topic) (<-chan domain.Topic, func()) {
	s := &subscriber{ch: make(chan domain.Topic, b.buffer)}
	if len(topics) > 0 {
		s.topics = make(map[domain.Topic]bool, len(topics))
		for _, t := range topics {
			s.topics[t] = true
		}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = s
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(s.ch)
		})
	}
	return s.ch, cancel
}

// Notify implements repository.Notifier.
func (b *Broker) Notify(topic domain.Topic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.topics != nil && !s.topics[topic] {
			continue
		}
		select {
		case s.ch <- topic:
		default:
		}
	}
}

// Len returns the number of live subscribers.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
