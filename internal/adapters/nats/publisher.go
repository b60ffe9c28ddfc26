package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"jobsight/internal/core/domain"
)

// Subjects carried on the dashboard event stream.
const (
	SubjectSelectionApplied = "dashboard.selections.applied"
	SubjectDatasetLoaded    = "dashboard.dataset.loaded"
)

// Publisher implements ports.EventPublisher using NATS JetStream. Events
// let other dashboard sessions observe filter activity in real time via
// the WebSocket relay.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// selectionEvent is the wire form of a selection-applied event.
type selectionEvent struct {
	Selection domain.Selection `json:"selection"`
	Total     int              `json:"total"`
	At        time.Time        `json:"at"`
}

// datasetEvent is the wire form of a dataset-loaded event.
type datasetEvent struct {
	Rows int       `json:"rows"`
	At   time.Time `json:"at"`
}

// NewPublisher connects to NATS and ensures the dashboard stream exists.
func NewPublisher(url string) (*Publisher, error) {
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

	cfg := nats.StreamConfig{
		Name:      "DASHBOARD_EVENTS",
		Subjects:  []string{"dashboard.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    1 * time.Hour,
		Storage:   nats.MemoryStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishSelectionApplied announces that a filter selection was applied
// and how many rows it matched.
func (p *Publisher) PublishSelectionApplied(ctx context.Context, sel domain.Selection, total int) error {
	data, err := json.Marshal(selectionEvent{Selection: sel, Total: total, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectSelectionApplied, data)
	return err
}

// PublishDatasetLoaded announces the one-time startup load of the base table.
func (p *Publisher) PublishDatasetLoaded(ctx context.Context, rows int) error {
	data, err := json.Marshal(datasetEvent{Rows: rows, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectDatasetLoaded, data)
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. the
// WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
