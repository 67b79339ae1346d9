package domain

import "time"

// NotificationType classifies why a notification was fired
type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "booking_created"
	NotificationBookingStatus    NotificationType = "booking_status"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationBookingReminder  NotificationType = "booking_reminder"
	NotificationNewReview        NotificationType = "new_review"
	NotificationPaymentConfirmed NotificationType = "payment_confirmed"
	NotificationSalonStatus      NotificationType = "salon_status"
	NotificationCommissionDue    NotificationType = "commission_due"
)

// Notification is an in-app inbox entry
type Notification struct {
	ID        int64
	UserID    int64
	Type      NotificationType
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
