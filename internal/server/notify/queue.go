package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QueueSender publishes messages to a RabbitMQ topic exchange. The
// notification worker consumes and mails them.
type QueueSender struct {
	conn     *amqp.Connection
	ch       publisher
	exchange string
}

func DialQueueSender(url, exchange string) (*QueueSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &QueueSender{conn: conn, ch: ch, exchange: exchange}, nil
}

func newQueueSender(ch publisher, exchange string) *QueueSender {
	return &QueueSender{ch: ch, exchange: exchange}
}

func (q *QueueSender) Send(ctx context.Context, msg Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}

	id, err := common.MakeRandHexString(16)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}

	err = q.ch.PublishWithContext(ctx, q.exchange, RoutingKeyOTPIssued, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    id,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}
	return nil
}

func (q *QueueSender) Close() error {
	if c, ok := q.ch.(*amqp.Channel); ok && c != nil {
		_ = c.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}
