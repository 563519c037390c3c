package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/streadway/amqp"
)

const retryHeader = "x-retry-count"

// AMQPQueue publishes JSON messages to durable RabbitMQ queues named after the topic.
type AMQPQueue struct {
	conn *amqp.Connection

	mu sync.Mutex
	ch *amqp.Channel

	MaxRetries int
}

func DialAMQP(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch, MaxRetries: 3}, nil
}

func (q *AMQPQueue) declare(ch *amqp.Channel, topic string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return q.publish(topic, body, 0)
}

func (q *AMQPQueue) publish(topic string, body []byte, retries int32) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, err := q.declare(q.ch, topic); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	return q.ch.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{retryHeader: retries},
			Body:         body,
		},
	)
}

// Subscribe consumes topic on a dedicated channel. The handler receives the
// raw message body. Failed messages are republished until MaxRetries is hit.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	ch, err := q.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel: %w", err)
	}

	if _, err := q.declare(ch, topic); err != nil {
		ch.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		defer ch.Close()
		for d := range msgs {
			q.deliver(topic, d, handler)
		}
	}()

	return nil
}

func (q *AMQPQueue) deliver(topic string, d amqp.Delivery, handler func(payload any) error) {
	err := handler(d.Body)
	if err == nil {
		d.Ack(false)
		return
	}

	retries := retryCount(d.Headers)
	if int(retries) >= q.MaxRetries {
		log.Printf("❌ Dropping message on %s after %d retries: %v\n", topic, retries, err)
		d.Ack(false)
		return
	}

	log.Printf("⚠️ Message on %s failed (retry %d): %v\n", topic, retries+1, err)
	if pubErr := q.publish(topic, d.Body, retries+1); pubErr != nil {
		log.Println("⚠️ Failed to requeue message:", pubErr)
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}

func retryCount(h amqp.Table) int32 {
	switch v := h[retryHeader].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	}
	return 0
}

func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

var (
	_ Queue = (*InMemoryQueue)(nil)
	_ Queue = (*AMQPQueue)(nil)
)
