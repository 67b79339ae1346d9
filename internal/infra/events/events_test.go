package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeWriter struct {
	messages []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	messages  []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(_ context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		return kafka.Message{}, context.Canceled
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := &Producer{writer: writer, topic: "salon.notifications"}

	event := NewNotificationEvent(&domain.Notification{
		UserID:  3,
		Type:    domain.NotificationBookingCreated,
		Title:   "t",
		Message: "m",
	})
	require.NotEmpty(t, event.ID)

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "salon.notifications", msg.Topic)
	assert.Equal(t, event.ID, string(msg.Key))

	var decoded NotificationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(3), decoded.UserID)
	assert.Equal(t, domain.NotificationBookingCreated, decoded.Type)
}

func TestConsumer_CommitsAfterHandling(t *testing.T) {
	good, _ := json.Marshal(NotificationEvent{ID: "a", UserID: 1, CreatedAt: time.Now()})
	other, _ := json.Marshal(NotificationEvent{ID: "b", UserID: 2, CreatedAt: time.Now()})

	reader := &fakeReader{messages: []kafka.Message{
		{Offset: 1, Value: []byte("not json")},
		{Offset: 2, Value: good},
		{Offset: 3, Value: other},
	}}
	c := &Consumer{reader: reader, log: nopLogger{}, maxAttempts: 3}

	calls := map[string]int{}
	err := c.Consume(context.Background(), func(_ context.Context, e NotificationEvent) error {
		calls[e.ID]++
		if e.ID == "a" && calls[e.ID] < 2 {
			return errors.New("sms down")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, calls)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}

func TestConsumer_GivesUpAfterMaxAttempts(t *testing.T) {
	payload, _ := json.Marshal(NotificationEvent{ID: "a", UserID: 1, CreatedAt: time.Now()})
	reader := &fakeReader{messages: []kafka.Message{{Offset: 5, Value: payload}}}
	c := &Consumer{reader: reader, log: nopLogger{}, maxAttempts: 3}

	attempts := 0
	err := c.Consume(context.Background(), func(context.Context, NotificationEvent) error {
		attempts++
		return errors.New("sms down")
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int64{5}, reader.committed)
}

func TestConsumer_NoCommitWhenStoppedMidHandling(t *testing.T) {
	payload, _ := json.Marshal(NotificationEvent{ID: "a", UserID: 1, CreatedAt: time.Now()})
	reader := &fakeReader{messages: []kafka.Message{{Offset: 9, Value: payload}}}
	c := &Consumer{reader: reader, log: nopLogger{}, maxAttempts: 3, retryDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	err := c.Consume(ctx, func(context.Context, NotificationEvent) error {
		cancel()
		return errors.New("sms down")
	})

	require.NoError(t, err)
	assert.Empty(t, reader.committed)
}
