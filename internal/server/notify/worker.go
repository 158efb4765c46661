package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventportal/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPoisonMessage marks a delivery that can never be processed.
var ErrPoisonMessage = errors.New("undecodable notification")

// Worker mails queued messages. A message that cannot be mailed is logged
// with its code and acknowledged; there are no retries.
type Worker struct {
	sender Sender
	logger logging.Logger
}

func NewWorker(s Sender, l logging.Logger) *Worker {
	return &Worker{sender: s, logger: l.With("module", "notify_worker")}
}

// Handle processes one message body.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPoisonMessage, err)
	}
	if msg.To == "" {
		return fmt.Errorf("%w: empty recipient", ErrPoisonMessage)
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		w.logger.Warn(ctx, "otp delivery failed", "email", msg.To, "otp", msg.Code, "error", err.Error())
		return nil
	}
	w.logger.Info(ctx, "notification sent", "email", msg.To)
	return nil
}

// Run consumes deliveries until ctx is done or the channel closes.
// Undecodable messages are rejected without requeue.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			if err := w.Handle(ctx, d.Body); err != nil {
				w.logger.Error(ctx, "dropping notification", "message_id", d.MessageId, "error", err.Error())
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Consumer owns the AMQP connection the worker reads from.
type Consumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func DialConsumer(url, exchange, queue string, prefetch int) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	fail := func(step string, err error) (*Consumer, error) {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", step, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange", err)
	}
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue", err)
	}
	if err := ch.QueueBind(q.Name, RoutingKeyOTPIssued, exchange, false, nil); err != nil {
		return fail("bind queue", err)
	}
	if prefetch <= 0 {
		prefetch = 8
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fail("set qos", err)
	}
	return &Consumer{conn: conn, ch: ch, queue: q.Name}, nil
}

func (c *Consumer) Deliveries(ctx context.Context) (<-chan amqp.Delivery, error) {
	return c.ch.ConsumeWithContext(ctx, c.queue, "notifier", false, false, false, false, nil)
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
