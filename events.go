package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadolammi/hrassist/internal/analytics"
	"github.com/streadway/amqp"
)

const analyticsExchange = "analytics_updates"

type analyticsUpdate struct {
	Kind      analytics.EventKind `json:"kind"`
	Timestamp time.Time           `json:"timestamp"`
}

type amqpPublisher struct {
	conn *amqp.Connection
}

// newAmqpPublisher dials RabbitMQ and declares the analytics topic exchange.
func newAmqpPublisher(url string) (*amqpPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		analyticsExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error declaring exchange %s: %w", analyticsExchange, err)
	}
	return &amqpPublisher{conn: conn}, nil
}

func (p *amqpPublisher) PublishAnalyticsUpdate(kind analytics.EventKind) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, _ := json.Marshal(analyticsUpdate{Kind: kind, Timestamp: time.Now().UTC()})
	routingKey := fmt.Sprintf("analytics.%s", kind)

	return ch.Publish(
		analyticsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *amqpPublisher) Close() error {
	return p.conn.Close()
}

// recordEvent writes an analytics event. Failures are logged and counted but
// never reach the client.
func (cfg *apiConfig) recordEvent(ctx context.Context, kind analytics.EventKind, payload any) {
	if err := cfg.Analytics.Record(kind, payload); err != nil {
		cfg.Metrics.IncrementAnalyticsWriteFailure()
		cfg.Logger.ErrorContext(ctx, "failed to record analytics event",
			"kind", kind,
			"error", err,
		)
		return
	}
	cfg.Metrics.IncrementAnalyticsEvent(kind.String())

	if cfg.Publisher == nil {
		return
	}
	if err := cfg.Publisher.PublishAnalyticsUpdate(kind); err != nil {
		cfg.Logger.WarnContext(ctx, "failed to publish analytics update",
			"kind", kind,
			"error", err,
		)
	}
}
