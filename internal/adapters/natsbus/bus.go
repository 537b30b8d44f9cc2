package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pet-welfare-dashboard/internal/mutation"
	"pet-welfare-dashboard/internal/platform/logger"

	"github.com/nats-io/nats.go"
)

// Bus publica y escucha mutaciones entre instancias del dashboard.
// Implementa mutation.Notifier.
type Bus struct {
	conn    *nats.Conn
	subject string
	origin  string
	log     logger.Logger
}

type Config struct {
	URL     string
	Subject string
	// Origin identifica a esta instancia; sus propios eventos se ignoran al recibir.
	Origin string

	MaxReconnect  int
	ReconnectWait time.Duration
}

func Connect(cfg Config, log logger.Logger) (*Bus, error) {
	if log == nil {
		log = logger.Nop()
	}
	wait := cfg.ReconnectWait
	if wait <= 0 {
		wait = 2 * time.Second
	}
	maxReconnect := cfg.MaxReconnect
	if maxReconnect == 0 {
		maxReconnect = -1 // sin límite
	}

	opts := []nats.Option{
		nats.Name("pet-welfare-dashboard"),
		nats.MaxReconnects(maxReconnect),
		nats.ReconnectWait(wait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", map[string]any{"error": err.Error()})
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", map[string]any{"url": nc.ConnectedUrl()})
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Warn("nats connection closed", nil)
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("connected to nats", map[string]any{"url": cfg.URL, "subject": cfg.Subject})

	return &Bus{
		conn:    conn,
		subject: cfg.Subject,
		origin:  cfg.Origin,
		log:     log,
	}, nil
}

func (b *Bus) Publish(ctx context.Context, ev mutation.Event) error {
	if ev.Origin == "" {
		ev.Origin = b.origin
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.conn.Publish(b.subject, data); err != nil {
		return fmt.Errorf("failed to publish to NATS: %w", err)
	}
	b.log.Debug("published mutation event", map[string]any{"kind": ev.Kind, "animal_id": ev.AnimalID})
	return nil
}

// Subscribe entrega eventos de otras instancias a fn.
func (b *Bus) Subscribe(fn func(mutation.Event)) (*nats.Subscription, error) {
	return b.conn.Subscribe(b.subject, b.handler(fn))
}

func (b *Bus) handler(fn func(mutation.Event)) nats.MsgHandler {
	return func(msg *nats.Msg) {
		var ev mutation.Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			b.log.Warn("dropping malformed mutation event", map[string]any{"error": err.Error()})
			return
		}
		if b.origin != "" && ev.Origin == b.origin {
			return
		}
		fn(ev)
	}
}

func (b *Bus) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}
