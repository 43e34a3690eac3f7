package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"pyrolysis_sim/internal/logger"
	"pyrolysis_sim/internal/models"
)

// Publisher sends security events to an outbound sink. Publishing never
// feeds anything back into the simulation.
type Publisher interface {
	PublishSecurityEvent(ctx context.Context, ev models.SecurityEvent) error
	Close()
}

// Config holds NATS configuration. An empty URL disables publishing.
type Config struct {
	URL            string
	Name           string
	Subject        string
	ReconnectWait  time.Duration
	MaxReconnects  int
	ConnectTimeout time.Duration
}

// NATSPublisher wraps a NATS connection.
type NATSPublisher struct {
	conn      *nats.Conn
	subject   string
	log       *logger.Logger
	connected atomic.Bool
}

// New returns a NATS publisher, or a no-op one when cfg.URL is empty.
func New(cfg Config, log *logger.Logger) (Publisher, error) {
	if cfg.URL == "" {
		return Nop{}, nil
	}
	return NewNATSPublisher(cfg, log)
}

func NewNATSPublisher(cfg Config, log *logger.Logger) (*NATSPublisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	p := &NATSPublisher{subject: cfg.Subject, log: log}
	if p.subject == "" {
		p.subject = "pyrolysis.security"
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.Timeout(cfg.ConnectTimeout),
		nats.ReconnectHandler(func(*nats.Conn) {
			p.connected.Store(true)
			log.Infow("nats_reconnected", "url", cfg.URL)
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			p.connected.Store(false)
			log.Warnw("nats_disconnected", "error", err)
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	p.conn = conn
	p.connected.Store(true)
	return p, nil
}

// Subject returns the subject of an event: <base>.<category>.
func Subject(base string, ev models.SecurityEvent) string {
	return base + "." + ev.Category
}

func (p *NATSPublisher) PublishSecurityEvent(_ context.Context, ev models.SecurityEvent) error {
	if p.conn == nil || !p.connected.Load() {
		return fmt.Errorf("not connected")
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", ev.ID, err)
	}
	if err := p.conn.Publish(Subject(p.subject, ev), payload); err != nil {
		return fmt.Errorf("publish event %s: %w", ev.ID, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.log.Warnw("nats_drain_failed", "error", err)
		p.conn.Close()
	}
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishSecurityEvent(context.Context, models.SecurityEvent) error { return nil }

func (Nop) Close() {}
