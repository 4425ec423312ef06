package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ConsumerConfig tells the audit consumer where to read from and write to.
type ConsumerConfig struct {
	URL     string
	Queue   string
	LogPath string
	Logger  *log.Logger
}

// StartAuditConsumer connects to RabbitMQ, declares the sales queue
// (durable) and appends one line per sale event to cfg.LogPath.  It
// reconnects with backoff whenever the broker goes away and only returns
// once ctx is cancelled.  Messages that cannot be handled are rejected
// without requeue so a poison message cannot stall the consumer.
func StartAuditConsumer(ctx context.Context, cfg ConsumerConfig) error {
	if cfg.Queue == "" {
		cfg.Queue = DefaultSalesQueue
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(cfg.URL)
		if err != nil {
			cfg.Logger.Printf("sales-audit: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, cfg)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cfg.Logger.Printf("sales-audit: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, cfg ConsumerConfig) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		cfg.Logger.Printf("sales-audit: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(d.Body, cfg.LogPath); err != nil {
				cfg.Logger.Printf("sales-audit: handle message failed: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(body []byte, path string) error {
	var ev SaleCommittedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.TransactionID == "" {
		return errors.New("event without transaction id")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatAuditLine(ev)); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func formatAuditLine(ev SaleCommittedEvent) string {
	seats := "[]"
	if len(ev.Seats) > 0 {
		seats = fmt.Sprintf("[%s]", strings.Join(ev.Seats, ","))
	}
	line := fmt.Sprintf("[%s] Sale committed | txn=%s | showtime=%q | movie=%q | tickets=%d | seats=%s | total=%s | paid=%s | change=%s",
		ev.CommittedAt, ev.TransactionID, ev.ShowtimeLabel, ev.MovieTitle, ev.Tickets, seats,
		model.Cents(ev.TotalCents).Display(), model.Cents(ev.PaidCents).Display(), model.Cents(ev.ChangeCents).Display())
	if ev.Pending {
		line += " | ledger=pending"
	}
	return line + "\n"
}
