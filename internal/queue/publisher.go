package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultSalesQueue is the queue sale events are routed to when none is
// configured.
const DefaultSalesQueue = "sales.committed"

// Publisher delivers sale events to interested consumers.
type Publisher interface {
	PublishSaleCommitted(ctx context.Context, ev SaleCommittedEvent) error
}

// NopPublisher drops every event.  It is used when sale events are disabled.
type NopPublisher struct{}

// PublishSaleCommitted does nothing.
func (NopPublisher) PublishSaleCommitted(context.Context, SaleCommittedEvent) error { return nil }

// AMQPPublisher publishes sale events to a durable RabbitMQ queue.  Each
// publish opens its own connection, so a broker outage never leaves the
// publisher in a broken state.
type AMQPPublisher struct {
	URL         string
	Queue       string
	DialTimeout time.Duration
	Logger      *log.Logger
}

// NewAMQPPublisher returns a publisher for the given broker URL and queue.
// An empty queue name selects DefaultSalesQueue.
func NewAMQPPublisher(url, queue string, logger *log.Logger) *AMQPPublisher {
	if queue == "" {
		queue = DefaultSalesQueue
	}
	if logger == nil {
		logger = log.Default()
	}
	return &AMQPPublisher{URL: url, Queue: queue, DialTimeout: 3 * time.Second, Logger: logger}
}

// PublishSaleCommitted publishes ev as a persistent JSON message.  Errors are
// logged and returned so the caller can choose to ignore them.
func (p *AMQPPublisher) PublishSaleCommitted(ctx context.Context, ev SaleCommittedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.Logger.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.DialTimeout)})
	if err != nil {
		p.Logger.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		p.Logger.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.TransactionID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		p.Logger.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
