package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Routing keys per event kind. Consumers bind with patterns like
// "replenishment.recommendation.*".
const (
	routingPrefix = "replenishment"
)

// RabbitConfig holds the connection settings for the event exchange.
type RabbitConfig struct {
	URL      string
	Exchange string
}

// RabbitSink publishes engine events to a RabbitMQ topic exchange.
type RabbitSink struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewRabbitSink connects with retry and declares the topic exchange.
func NewRabbitSink(cfg RabbitConfig) (*RabbitSink, error) {
	if cfg.Exchange == "" {
		return nil, fmt.Errorf("exchange name cannot be empty")
	}

	var conn *amqp.Connection
	var err error
	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		retryIn := time.Duration(i*i)*time.Second + time.Second
		log.Warn().Err(err).Dur("retry_in", retryIn).Msg("rabbitmq connect failed, retrying")
		time.Sleep(retryIn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq after retries: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &RabbitSink{conn: conn, channel: channel, exchange: cfg.Exchange}, nil
}

// Verify interface compliance
var _ Sink = (*RabbitSink)(nil)

// Publish sends the event as JSON with routing key
// "replenishment.<kind>". Failures are logged, never propagated into
// the analysis cycle.
func (s *RabbitSink) Publish(ctx context.Context, event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("kind", event.Kind).Msg("failed to encode event")
		return
	}

	err = s.channel.PublishWithContext(ctx,
		s.exchange,
		fmt.Sprintf("%s.%s", routingPrefix, event.Kind),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    event.At,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		log.Error().Err(err).Str("kind", event.Kind).Msg("failed to publish event")
	}
}

// Close shuts down the channel and connection.
func (s *RabbitSink) Close() error {
	if err := s.channel.Close(); err != nil {
		return err
	}
	return s.conn.Close()
}
