package push

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/go-stomp/stomp/v3"

	"frontdesk/internal/domain"
)

// STOMPConfig параметры STOMP поверх WebSocket
type STOMPConfig struct {
	URL         string // ws://host/ws
	Host        string // STOMP virtual host header
	Token       string
	TopicPrefix string // "/topic/"
}

// STOMPSubscriber subscribes to /topic/<name> destinations over a single
// WebSocket connection.
type STOMPSubscriber struct {
	cfg STOMPConfig
}

func NewSTOMPSubscriber(cfg STOMPConfig) *STOMPSubscriber {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "/topic/"
	}
	if cfg.Host == "" {
		cfg.Host = "/"
	}
	return &STOMPSubscriber{cfg: cfg}
}

// Destination maps a topic to its STOMP destination.
func (s *STOMPSubscriber) Destination(t domain.Topic) string {
	return s.cfg.TopicPrefix + string(t)
}

func (s *STOMPSubscriber) topicOf(dest string) (domain.Topic, bool) {
	return domain.ParseTopic(strings.TrimPrefix(dest, s.cfg.TopicPrefix))
}

// Subscribe returns ctx.Err() once ctx is done, even when cancellation
// first shows up as a broken connection.
func (s *STOMPSubscriber) Subscribe(ctx context.Context, topics []domain.Topic, h Handler) error {
	err := s.subscribe(ctx, topics, h)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *STOMPSubscriber) subscribe(ctx context.Context, topics []domain.Topic, h Handler) error {
	hdr := http.Header{}
	if s.cfg.Token != "" {
		hdr.Set("Authorization", "Bearer "+s.cfg.Token)
	}
	ws, _, err := websocket.Dial(ctx, s.cfg.URL, &websocket.DialOptions{
		HTTPHeader:   hdr,
		Subprotocols: []string{"v12.stomp"},
	})
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.cfg.URL, err)
	}
	netConn := websocket.NetConn(ctx, ws, websocket.MessageText)

	opts := []func(*stomp.Conn) error{
		stomp.ConnOpt.Host(s.cfg.Host),
		stomp.ConnOpt.HeartBeat(0, 0),
	}
	if s.cfg.Token != "" {
		opts = append(opts, stomp.ConnOpt.Header("Authorization", "Bearer "+s.cfg.Token))
	}
	conn, err := stomp.Connect(netConn, opts...)
	if err != nil {
		_ = netConn.Close()
		return fmt.Errorf("stomp connect: %w", err)
	}
	defer conn.MustDisconnect()

	msgs := make(chan *stomp.Message)
	done := make(chan struct{})
	defer close(done)
	for _, t := range topics {
		sub, err := conn.Subscribe(s.Destination(t), stomp.AckAuto)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", t, err)
		}
		go forward(done, sub, msgs)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-msgs:
			if m.Err != nil {
				return fmt.Errorf("stomp: %w", m.Err)
			}
			topic, ok := s.topicOf(m.Destination)
			if !ok {
				continue
			}
			h(topic, m.Body)
		}
	}
}

var errSubscriptionClosed = errors.New("subscription closed")

// forward copies one subscription's messages into the shared channel until
// done is closed. A subscription that ends is reported as an error message.
func forward(done <-chan struct{}, sub *stomp.Subscription, out chan<- *stomp.Message) {
	for m := range sub.C {
		select {
		case out <- m:
		case <-done:
			return
		}
		if m.Err != nil {
			return
		}
	}
	select {
	case out <- &stomp.Message{Err: errSubscriptionClosed}:
	case <-done:
	}
}
