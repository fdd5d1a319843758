// Package kitchen delivers sent orders to the kitchen display over RabbitMQ.
package kitchen

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xiaer6289/Food-Ordering-System/internal/order"
)

const Queue = "kitchen_queue"

type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *Publisher) PublishOrderSent(ctx context.Context, evt order.SentEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(ctx, "", Queue, false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent, // persist to disk
		ContentType:   "application/json",
		CorrelationId: evt.OrderID,
		Timestamp:     time.Now().UTC(),
		Body:          body,
	})
}
