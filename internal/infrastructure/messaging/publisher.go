package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
)

// conn is the subset of *nats.Conn the publisher needs
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATSPublisher sends reload events to a NATS subject
type NATSPublisher struct {
	nc      conn
	subject string
}

// NewNATSPublisher connects to NATS
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("meeting-archive"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

// PublishReloaded publishes the event as JSON and waits for the server to acknowledge the flush
func (p *NATSPublisher) PublishReloaded(ctx context.Context, event entities.ReloadedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", p.subject, err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush event to subject %s: %w", p.subject, err)
	}
	return nil
}

// Close closes the NATS connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) PublishReloaded(context.Context, entities.ReloadedEvent) error { return nil }

func (NopPublisher) Close() {}
