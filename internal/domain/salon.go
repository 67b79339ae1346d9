package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalonStatus is the admin moderation state of a salon
type SalonStatus string

const (
	SalonApproved SalonStatus = "approved"
	SalonPending  SalonStatus = "pending"
	SalonRejected SalonStatus = "rejected"
)

// ParseSalonStatus validates a raw moderation status
func ParseSalonStatus(s string) (SalonStatus, bool) {
	switch SalonStatus(s) {
	case SalonApproved, SalonPending, SalonRejected:
		return SalonStatus(s), true
	}
	return "", false
}

// Salon represents a salon listing owned by exactly one owner
type Salon struct {
	ID          int64
	OwnerID     int64
	Name        string
	Location    string
	Description string
	Image       *string
	IsActive    bool // owner-controlled visibility
	Status      SalonStatus
	Rating      float64
	ReviewCount int
	Priority    *int // admin-assigned rank, lower is shown first
	Services    []Service
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpenForListing returns true if the owner and admin allow the salon to be shown.
// Payment suspension is a separate gate evaluated by the commission evaluator.
func (s *Salon) IsOpenForListing() bool {
	return s.IsActive && s.Status == SalonApproved
}

// IsBookable combines listing flags with the derived suspension state
func (s *Salon) IsBookable(commission CommissionStatus) bool {
	return s.IsOpenForListing() && !commission.IsSuspended
}

// EffectivePriority returns the sort rank, DefaultSalonPriority when unset
func (s *Salon) EffectivePriority() int {
	if s.Priority == nil {
		return DefaultSalonPriority
	}
	return *s.Priority
}

// Service is a priced offering of a single salon
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
	Image           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SalonFilter фильтр публичного списка салонов
type SalonFilter struct {
	Search       string // по названию и адресу, без учёта регистра
	OnlyListable bool   // только активные и одобренные
}
