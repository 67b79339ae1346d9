package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer публикует события уведомлений в Kafka
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer создает продюсера для топика уведомлений
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{writer: writer, topic: topic}
}

// Publish отправляет событие. Ключ сообщения - идентификатор события.
func (p *Producer) Publish(ctx context.Context, event NotificationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: Publish - marshal event id=%s: %w", event.ID, err)
	}

	message := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.ID),
		Value: data,
		Time:  event.CreatedAt,
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("events: Publish - write message id=%s: %w", event.ID, err)
	}

	return nil
}

// Close закрывает соединения продюсера
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
