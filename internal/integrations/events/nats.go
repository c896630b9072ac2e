package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

var (
	ErrConnect = errors.New("events.nats: failed to connect")
	ErrPublish = errors.New("events.nats: failed to publish")
)

// NATSConfig параметры подключения к NATS
type NATSConfig struct {
	URL           string
	SubjectPrefix string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
	Timeout       time.Duration
}

// DefaultNATSConfig настройки подключения по умолчанию
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "interviews",
		Name:          "interview-slots",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		Timeout:       5 * time.Second,
	}
}

type natsConn interface {
	Publish(subject string, data []byte) error
	Close()
}

// NATSPublisher публикует события в subject "<prefix>.slot.<type>"
type NATSPublisher struct {
	conn   natsConn
	prefix string
	now    func() time.Time
}

// NewNATSPublisher подключается к NATS
func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, cfg.URL, err)
	}
	return newNATSPublisher(conn, cfg.SubjectPrefix), nil
}

func newNATSPublisher(conn natsConn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix, now: time.Now}
}

// Subject subject для типа события
func (p *NATSPublisher) Subject(t Type) string {
	return fmt.Sprintf("%s.slot.%s", p.prefix, t)
}

// Publish заполняет ID и время события, если они не заданы, и отправляет его
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}
	if err := p.conn.Publish(p.Subject(event.Type), data); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает соединение
func (p *NATSPublisher) Close() {
	p.conn.Close()
}
