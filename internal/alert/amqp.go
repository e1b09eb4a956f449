package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// AMQPForwarder publishes alerts as JSON messages to a durable queue
type AMQPForwarder struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *slog.Logger
}

type amqpMessage struct {
	Key   Key       `json:"key"`
	RunID string    `json:"runId,omitempty"`
	Error string    `json:"error,omitempty"`
	Time  time.Time `json:"time"`
}

// NewAMQPForwarder connects to the broker and declares the queue
func NewAMQPForwarder(url, queue string, logger *slog.Logger) (*AMQPForwarder, error) {
	if queue == "" {
		queue = "lenslate.alerts"
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPForwarder{conn: conn, ch: ch, queue: queue, logger: logger}, nil
}

// Listen is a Listener forwarding each alert to the queue. Publish errors
// are logged, never returned to the pipeline.
func (f *AMQPForwarder) Listen(a Alert) {
	body, err := encodeAlert(a)
	if err != nil {
		f.logger.Warn("failed to encode alert", "key", a.Key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = f.ch.PublishWithContext(ctx, "", f.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   a.Time,
		Body:        body,
	})
	if err != nil {
		f.logger.Warn("failed to forward alert", "key", a.Key, "queue", f.queue, "error", err)
	}
}

// Close closes the channel and connection
func (f *AMQPForwarder) Close() error {
	if f.ch != nil {
		if err := f.ch.Close(); err != nil {
			return err
		}
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

func encodeAlert(a Alert) ([]byte, error) {
	msg := amqpMessage{Key: a.Key, RunID: a.RunID, Time: a.Time}
	if a.Err != nil {
		msg.Error = a.Err.Error()
	}
	return json.Marshal(msg)
}
