package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sentMarker = "sent"

// setNXer подмножество redis.Cmdable, нужное хранилищу
type setNXer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store хранит отметки об отправленных напоминаниях.
// Отметка ставится атомарно (SETNX), поэтому напоминание уходит не более одного раза
// даже при нескольких экземплярах планировщика.
type Store struct {
	client setNXer
	ttl    time.Duration
}

// NewClient создает клиент Redis
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// NewStore создает хранилище отметок поверх клиента Redis
func NewStore(client setNXer, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// MarkBookingReminded ставит отметку для бронирования.
// Возвращает true, если отметки ещё не было и напоминание нужно отправить.
func (s *Store) MarkBookingReminded(ctx context.Context, bookingID int64) (bool, error) {
	ok, err := s.client.SetNX(ctx, bookingKey(bookingID), sentMarker, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reminders: MarkBookingReminded - setnx booking_id=%d: %w", bookingID, err)
	}
	return ok, nil
}

// MarkCommissionReminded ставит отметку о напоминании владельцу за указанный день
func (s *Store) MarkCommissionReminded(ctx context.Context, ownerID int64, day time.Time) (bool, error) {
	ok, err := s.client.SetNX(ctx, commissionKey(ownerID, day), sentMarker, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reminders: MarkCommissionReminded - setnx owner_id=%d: %w", ownerID, err)
	}
	return ok, nil
}

// UnmarkBooking снимает отметку, если отправка не удалась
func (s *Store) UnmarkBooking(ctx context.Context, bookingID int64) error {
	return s.client.Del(ctx, bookingKey(bookingID)).Err()
}

func bookingKey(bookingID int64) string {
	return fmt.Sprintf("reminder:booking:%d", bookingID)
}

func commissionKey(ownerID int64, day time.Time) string {
	return fmt.Sprintf("reminder:commission:%d:%s", ownerID, day.Format("2006-01-02"))
}
