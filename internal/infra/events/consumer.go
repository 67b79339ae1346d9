package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultHandleAttempts = 3
	defaultRetryDelay     = 2 * time.Second
)

// Consumer читает события уведомлений из Kafka в составе группы.
// Offset фиксируется только после обработки события, поэтому упавший воркер получит его повторно.
type Consumer struct {
	reader      messageReader
	log         Logger
	maxAttempts int
	retryDelay  time.Duration
}

// NewConsumer создает консьюмера группы groupID
func NewConsumer(brokers []string, groupID, topic string, log Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log:         log,
		maxAttempts: defaultHandleAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// Consume обрабатывает события до отмены контекста.
// Ошибка обработчика повторяется до maxAttempts раз, затем событие пропускается.
// Некорректные сообщения пропускаются сразу.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, NotificationEvent) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if isCanceled(ctx, err) {
				return nil
			}
			return err
		}

		var event NotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.log.Warn("Consume: skip malformed event offset=%d: %v", msg.Offset, err)
		} else if err := c.handle(ctx, handler, event); err != nil {
			if isCanceled(ctx, err) {
				// Без коммита: событие будет доставлено повторно
				return nil
			}
			c.log.Error("Consume: dropping event id=%s user_id=%d after %d attempts: %v", event.ID, event.UserID, c.attempts(), err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if isCanceled(ctx, err) {
				return nil
			}
			return err
		}
	}
}

func (c *Consumer) handle(ctx context.Context, handler func(context.Context, NotificationEvent) error, event NotificationEvent) error {
	var err error
	for attempt := 1; attempt <= c.attempts(); attempt++ {
		if err = handler(ctx, event); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("Consume: attempt %d failed for event id=%s: %v", attempt, event.ID, err)

		if attempt < c.attempts() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return err
}

func (c *Consumer) attempts() int {
	if c.maxAttempts < 1 {
		return 1
	}
	return c.maxAttempts
}

func isCanceled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}

// Close закрывает reader
func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
