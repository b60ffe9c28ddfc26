package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"jobsight/internal/core/domain"
)

// SelectionEvent is the consumer-side view of a selection-applied event.
type SelectionEvent struct {
	Selection domain.Selection `json:"selection"`
	Total     int              `json:"total"`
	At        time.Time        `json:"at"`
}

// DatasetEvent is the consumer-side view of a dataset-loaded event.
type DatasetEvent struct {
	Rows int       `json:"rows"`
	At   time.Time `json:"at"`
}

// Subscriber consumes the dashboard event stream with durable JetStream
// consumers, so a restarted consumer picks up where it left off.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber connects to NATS for consuming dashboard events.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeSelections delivers every selection-applied event to handler.
func (s *Subscriber) SubscribeSelections(ctx context.Context, durable string, handler func(ctx context.Context, ev *SelectionEvent) error) error {
	sub, err := s.js.Subscribe(SubjectSelectionApplied, func(msg *nats.Msg) {
		var ev SelectionEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &ev); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribeDatasetLoads delivers every dataset-loaded event to handler.
func (s *Subscriber) SubscribeDatasetLoads(ctx context.Context, durable string, handler func(ctx context.Context, ev *DatasetEvent) error) error {
	sub, err := s.js.Subscribe(SubjectDatasetLoaded, func(msg *nats.Msg) {
		var ev DatasetEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &ev); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
