package messaging

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"foodcourier/internal/config"
	"foodcourier/internal/logger"
)

const (
	// EventsExchange is the fanout exchange all domain events are published
	// to after a unit of work commits.
	EventsExchange = "order_events"

	// NotificationsQueue feeds the notification subscriber.
	NotificationsQueue = "notifications_queue"
)

// Connection wraps an AMQP connection and channel with retrying connect
// and topology setup.
type Connection struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	config  *config.Config
	logger  *logger.Logger
	url     string
}

// New connects to RabbitMQ and declares the event topology.
func New(cfg *config.Config, log *logger.Logger) (*Connection, error) {
	url := cfg.RabbitMQURL()

	conn := &Connection{
		config: cfg,
		logger: log,
		url:    url,
	}

	err := conn.connect()
	if err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}

	return conn, nil
}

func (c *Connection) connect() error {
	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		c.conn, err = amqp091.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				if setupErr := c.setupTopology(); setupErr != nil {
					c.logger.Error("rabbitmq_setup_failed", "Failed to set up topology", "startup", setupErr, nil)
					c.close()
					err = setupErr
				} else {
					return nil
				}
			} else {
				c.conn.Close()
			}
		}

		if i < maxRetries-1 {
			waitTime := time.Duration(i+1) * 2 * time.Second
			c.logger.Error("rabbitmq_connection_failed",
				fmt.Sprintf("Failed to connect to RabbitMQ, retrying in %v", waitTime),
				"startup", err, nil)
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// setupTopology declares the events exchange, the notifications queue, and
// the binding between them. Declarations are idempotent, so every process
// can declare what it uses regardless of start order.
func (c *Connection) setupTopology() error {
	err := c.channel.ExchangeDeclare(
		EventsExchange, // name
		"fanout",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", EventsExchange, err)
	}

	_, err = c.channel.QueueDeclare(
		NotificationsQueue, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare notifications queue: %w", err)
	}

	err = c.channel.QueueBind(
		NotificationsQueue, // queue name
		"",                 // routing key (ignored for fanout)
		EventsExchange,     // exchange
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind notifications queue: %w", err)
	}

	return nil
}

// Channel returns the current channel.
func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

// Close closes the channel and connection.
func (c *Connection) Close() error {
	return c.close()
}

func (c *Connection) close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsClosed reports whether the connection is gone.
func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect tears down and re-establishes the connection and topology.
func (c *Connection) Reconnect() error {
	c.close()
	return c.connect()
}
