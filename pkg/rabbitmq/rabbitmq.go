package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"

	"tienda/internal/models"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     zerolog.Logger
	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the product
// event queue.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log = log.With().Str("component", "rabbitmq").Str("queue", cfg.Queue).Logger()
	log.Info().Msg("RabbitMQ client connected and queue declared")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		log:     log,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors while closing RabbitMQ client: %v", errs)
	}
	return nil
}

// PublishProductEvent publishes a product event to the queue as persistent JSON.
func (c *Client) PublishProductEvent(event models.ProductEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := NewPublishing(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		msg,
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.Debug().Str("event", string(event.Type)).Uint("product_id", event.Product.ID).Msg("product event sent")
	return nil
}

// NewPublishing encodes a product event as an AMQP message.
func NewPublishing(event models.ProductEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal product event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         string(event.Type),
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	}, nil
}

// DecodeProductEvent parses the body of a delivered product event.
func DecodeProductEvent(body []byte) (models.ProductEvent, error) {
	var event models.ProductEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return models.ProductEvent{}, fmt.Errorf("failed to decode product event: %w", err)
	}
	return event, nil
}

// ConsumeProductEvents starts a goroutine delivering queued product events to
// handler. Messages are acked when handler returns nil and requeued otherwise.
func (c *Client) ConsumeProductEvents(handler func(event models.ProductEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			c.handleDelivery(msg, handler)
		}
		c.log.Info().Msg("product event consumer stopped")
	}()
	return nil
}

func (c *Client) handleDelivery(msg amqp.Delivery, handler func(event models.ProductEvent) error) {
	event, err := DecodeProductEvent(msg.Body)
	if err != nil {
		// A message that cannot be decoded will never succeed; drop it.
		c.log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("discarding malformed product event")
		if nackErr := msg.Nack(false, false); nackErr != nil {
			c.log.Error().Err(nackErr).Msg("failed to nack message")
		}
		return
	}

	if err := handler(event); err != nil {
		c.log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to process product event")
		if nackErr := msg.Nack(false, true); nackErr != nil {
			c.log.Error().Err(nackErr).Msg("failed to nack message")
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		c.log.Error().Err(ackErr).Msg("failed to ack message")
	}
}

// LogProductEvent is a consumer handler that records each event in the log.
func LogProductEvent(log zerolog.Logger) func(event models.ProductEvent) error {
	return func(event models.ProductEvent) error {
		log.Info().
			Str("event", string(event.Type)).
			Uint("product_id", event.Product.ID).
			Str("product", event.Product.Name).
			Time("occurred_at", event.OccurredAt).
			Msg("product event received")
		return nil
	}
}
