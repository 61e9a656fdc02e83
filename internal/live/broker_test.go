package live

import (
	"testing"

	"frontdesk/internal/domain"
)

func TestBroker_TopicFiltering(t *testing.T) {
	b := NewBroker(4)
	all, cancelAll := b.Subscribe()
	kitchen, cancelKitchen := b.Subscribe(domain.TopicOrderItems)
	defer cancelAll()
	defer cancelKitchen()

	b.Notify(domain.TopicTables)
	b.Notify(domain.TopicOrderItems)

	if got := <-all; got != domain.TopicTables {
		t.Fatalf("expected tables first, got %s", got)
	}
	if got := <-all; got != domain.TopicOrderItems {
		t.Fatalf("expected order-items second, got %s", got)
	}
	if got := <-kitchen; got != domain.TopicOrderItems {
		t.Fatalf("kitchen should only see order-items, got %s", got)
	}
	select {
	case got := <-kitchen:
		t.Fatalf("unexpected extra notification %s", got)
	default:
	}
}

func TestBroker_SlowSubscriberDrops(t *testing.T) {
	b := NewBroker(1)
	ch, cancel := b.Subscribe()
	b.Notify(domain.TopicMenu)
	b.Notify(domain.TopicMenu) // dropped, buffer full
	<-ch
	select {
	case <-ch:
		t.Fatalf("second notification should have been dropped")
	default:
	}
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("channel should be closed after cancel")
	}
	if b.Len() != 0 {
		t.Fatalf("subscriber not removed")
	}
	b.Notify(domain.TopicMenu) // must not panic on closed channel
}
