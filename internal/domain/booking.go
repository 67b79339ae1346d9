package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusRejected  BookingStatus = "REJECTED"
)

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusRejected:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking represents a customer's appointment request at a salon
type Booking struct {
	ID         int64
	UserID     int64
	SalonID    int64
	ServiceIDs []int64 // ordered as selected by the customer
	Date       time.Time
	TimeLabel  types.TimeLabel
	Status     BookingStatus

	// Sum of service prices at submission time, never recomputed
	TotalPrice decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the booking holds its (salon, date, time) slot.
// Only REJECTED bookings release the slot.
func (b *Booking) OccupiesSlot() bool {
	return b.Status != StatusRejected
}

// IsTerminal returns true for statuses no transition can leave
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusRejected || b.Status == StatusCompleted
}

// StartsAt returns the slot start on the booking date in loc
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	y, m, d := b.Date.Date()
	return b.TimeLabel.On(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64           // Обязательный параметр
	StartDate       *time.Time      // Начало периода (опционально)
	EndDate         *time.Time      // Конец периода (опционально)
	Statuses        []BookingStatus // Фильтр по статусам (опционально)
	IncludeRejected bool            // Включать ли отклонённые бронирования
}

// IsSingleDate returns true if the filter targets exactly one calendar date
func (f SalonBookingsFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDate(*f.StartDate, *f.EndDate)
}

// AdmissionOutcome is the tagged result of an atomic slot insert
type AdmissionOutcome int

const (
	OutcomeAdmitted AdmissionOutcome = iota + 1
	OutcomeDuplicate
)

func (o AdmissionOutcome) String() string {
	switch o {
	case OutcomeAdmitted:
		return "admitted"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// AdmissionResult is returned by the store when inserting a booking.
// Booking is set only when Outcome is OutcomeAdmitted.
type AdmissionResult struct {
	Outcome AdmissionOutcome
	Booking *Booking
}

// Admitted builds a successful admission result
func Admitted(b *Booking) AdmissionResult {
	return AdmissionResult{Outcome: OutcomeAdmitted, Booking: b}
}

// Duplicate builds a lost-race admission result
func Duplicate() AdmissionResult {
	return AdmissionResult{Outcome: OutcomeDuplicate}
}
