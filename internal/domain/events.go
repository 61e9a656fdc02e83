package domain

import "encoding/json"

// Topic канал push-уведомлений
type Topic string

const (
	TopicTables     Topic = "tables"
	TopicMenu       Topic = "menu"
	TopicOrders     Topic = "orders"
	TopicOrderItems Topic = "order-items"
)

// AllTopics lists every topic the dashboards listen on.
var AllTopics = []Topic{TopicTables, TopicMenu, TopicOrders, TopicOrderItems}

func ParseTopic(s string) (Topic, bool) {
	for _, t := range AllTopics {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// EventKind тип изменения сущности
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// Event конверт push-сообщения. Data содержит одну сущность топика.
type Event struct {
	Kind EventKind       `json:"event"`
	Data json.RawMessage `json:"data"`
}
