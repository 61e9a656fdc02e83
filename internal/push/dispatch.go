// Package push subscribes to the API's topic channel and applies change
// events to the local view state.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

// Handler получает тело сообщения из топика
type Handler func(topic domain.Topic, payload []byte)

// Subscriber транспорт push-канала. Subscribe блокируется до отмены ctx
// или обрыва соединения; переподключения нет.
type Subscriber interface {
	Subscribe(ctx context.Context, topics []domain.Topic, h Handler) error
}

var ErrMalformedEvent = errors.New("malformed event")

type idOnly struct {
	ID int64 `json:"id"`
}

// Apply decodes an event envelope and writes it into the store.
// created and updated events upsert; deleted events remove by id.
func Apply(store *repository.Store, topic domain.Topic, payload []byte) error {
	var ev domain.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if len(ev.Data) == 0 {
		return fmt.Errorf("%w: empty data", ErrMalformedEvent)
	}

	if ev.Kind == domain.EventDeleted {
		var ref idOnly
		if err := json.Unmarshal(ev.Data, &ref); err != nil || ref.ID == 0 {
			return fmt.Errorf("%w: deleted event without id", ErrMalformedEvent)
		}
		switch topic {
		case domain.TopicTables:
			store.DeleteTable(ref.ID)
		case domain.TopicMenu:
			store.DeleteMenuItem(ref.ID)
		case domain.TopicOrders:
			store.DeleteOrder(ref.ID)
		case domain.TopicOrderItems:
			store.DeleteOrderItem(ref.ID)
		default:
			return fmt.Errorf("%w: unknown topic %q", ErrMalformedEvent, topic)
		}
		return nil
	}
	if ev.Kind != domain.EventCreated && ev.Kind != domain.EventUpdated {
		return fmt.Errorf("%w: unknown event %q", ErrMalformedEvent, ev.Kind)
	}

	switch topic {
	case domain.TopicTables:
		var t domain.Table
		if err := decode(ev.Data, &t); err != nil {
			return err
		}
		store.UpsertTable(t)
	case domain.TopicMenu:
		var m domain.MenuItem
		if err := decode(ev.Data, &m); err != nil {
			return err
		}
		store.UpsertMenuItem(m)
	case domain.TopicOrders:
		var o domain.Order
		if err := decode(ev.Data, &o); err != nil {
			return err
		}
		store.UpsertOrder(o)
	case domain.TopicOrderItems:
		var it domain.OrderItem
		if err := decode(ev.Data, &it); err != nil {
			return err
		}
		store.UpsertOrderItem(it)
	default:
		return fmt.Errorf("%w: unknown topic %q", ErrMalformedEvent, topic)
	}
	return nil
}

// decode unmarshals one entity and rejects payloads without an id.
func decode(data json.RawMessage, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	var ref idOnly
	_ = json.Unmarshal(data, &ref)
	if ref.ID == 0 {
		return fmt.Errorf("%w: entity without id", ErrMalformedEvent)
	}
	return nil
}

// Dispatcher связывает транспорт со store
type Dispatcher struct {
	sub   Subscriber
	store *repository.Store
	log   *slog.Logger
}

func NewDispatcher(sub Subscriber, store *repository.Store, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{sub: sub, store: store, log: log.With("component", "push")}
}

// Run subscribes to every topic and blocks until the subscription ends.
// Polling keeps dashboards current after the channel drops.
func (d *Dispatcher) Run(ctx context.Context) error {
	err := d.sub.Subscribe(ctx, domain.AllTopics, func(topic domain.Topic, payload []byte) {
		if err := Apply(d.store, topic, payload); err != nil {
			d.log.Warn("event dropped", "topic", topic, "error", err)
			return
		}
		d.log.Debug("event applied", "topic", topic)
	})
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		d.log.Error("push channel closed, relying on polling", "error", err)
	}
	return nil
}
