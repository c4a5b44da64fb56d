package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/collections_app/internal/core/domain"
	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/platform/metrics"
	"github.com/rabbitmq/amqp091-go"
)

// RoutingKeyAccountsImported is used for events emitted after a CSV import commits.
const RoutingKeyAccountsImported = "accounts.imported"

// channel is the subset of *amqp091.Channel the producer uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// EventProducer publishes JSON domain events to a durable topic exchange.
type EventProducer struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
}

var _ portssvc.EventPublisher = (*EventProducer)(nil)

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewEventProducer dials RabbitMQ, opens a channel and declares exchange.
func NewEventProducer(amqpURL, exchange string) (*EventProducer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	p, err := newEventProducer(ch, exchange)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newEventProducer(ch channel, exchange string) (*EventProducer, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &EventProducer{channel: ch, exchange: exchange}, nil
}

// Publish sends body as JSON with the given routing key. Failures are returned, not retried.
func (p *EventProducer) Publish(ctx context.Context, routingKey string, body any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		metrics.RecordEventPublished(routingKey, "error")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         jsonBody,
	})
	if err != nil {
		metrics.RecordEventPublished(routingKey, "error")
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	metrics.RecordEventPublished(routingKey, "success")
	return nil
}

// PublishAccountsImported publishes the summary of a committed import.
func (p *EventProducer) PublishAccountsImported(ctx context.Context, event domain.AccountsImportedEvent) error {
	return p.Publish(ctx, RoutingKeyAccountsImported, event)
}

// Close closes the channel and the connection.
func (p *EventProducer) Close() error {
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

var _ portssvc.EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishAccountsImported(ctx context.Context, event domain.AccountsImportedEvent) error {
	slog.Debug("Event publishing disabled, dropping event",
		slog.String("routing_key", RoutingKeyAccountsImported), slog.String("import_id", event.ImportID))
	return nil
}

func (NoopPublisher) Close() error { return nil }
