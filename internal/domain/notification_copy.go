package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NotificationContent is a rendered notification ready for the notifier
type NotificationContent struct {
	Type    NotificationType
	Title   string
	Message string
}

const (
	fallbackCustomerName = "কাস্টমার"
	fallbackSalonName    = "সেলুন"
)

// BookingCreatedNotice goes to the owner when a customer submits a booking
func BookingCreatedNotice(customerName string) NotificationContent {
	if customerName == "" {
		customerName = fallbackCustomerName
	}
	return NotificationContent{
		Type:    NotificationBookingCreated,
		Title:   "নতুন বুকিং!",
		Message: fmt.Sprintf("%s একটি বুকিং পাঠিয়েছেন।", customerName),
	}
}

// BookingStatusNotice goes to the customer when the owner changes the status
func BookingStatusNotice(salonName string, status BookingStatus) NotificationContent {
	if salonName == "" {
		salonName = fallbackSalonName
	}
	verb := "🎉 সম্পন্ন"
	switch status {
	case StatusConfirmed:
		verb = "✅ গ্রহণ"
	case StatusRejected:
		verb = "❌ বাতিল"
	}
	return NotificationContent{
		Type:    NotificationBookingStatus,
		Title:   "বুকিং আপডেট",
		Message: fmt.Sprintf("%s আপনার বুকিংটি %s করেছে।", salonName, verb),
	}
}

// BookingCancelledNotice goes to the owner when the customer cancels
func BookingCancelledNotice(customerName string) NotificationContent {
	if customerName == "" {
		customerName = fallbackCustomerName
	}
	return NotificationContent{
		Type:    NotificationBookingCancelled,
		Title:   "বুকিং বাতিল",
		Message: fmt.Sprintf("কাস্টমার %s তার বুকিং বাতিল করেছেন।", customerName),
	}
}

// BookingReminderNotice goes to the owner shortly before an appointment
func BookingReminderNotice(customerName string) NotificationContent {
	if customerName == "" {
		customerName = fallbackCustomerName
	}
	return NotificationContent{
		Type:    NotificationBookingReminder,
		Title:   "বুকিং রিমাইন্ডার!",
		Message: fmt.Sprintf("কাস্টমার %s এর অ্যাপয়েন্টমেন্ট ১ ঘণ্টার মধ্যে।", customerName),
	}
}

// NewReviewNotice goes to the owner when a review is posted
func NewReviewNotice(userName string, rating int) NotificationContent {
	if userName == "" {
		userName = fallbackCustomerName
	}
	return NotificationContent{
		Type:    NotificationNewReview,
		Title:   "নতুন রিভিউ",
		Message: fmt.Sprintf("%s আপনার সেলুনে %d স্টার দিয়েছেন।", userName, rating),
	}
}

// PaymentConfirmedNotice goes to the owner when the admin confirms a remittance
func PaymentConfirmedNotice() NotificationContent {
	return NotificationContent{
		Type:    NotificationPaymentConfirmed,
		Title:   "পেমেন্ট কনফার্ম",
		Message: "আপনার কমিশন পেমেন্ট গ্রহণ করা হয়েছে।",
	}
}

// SalonStatusNotice goes to the owner when the admin moderates the listing
func SalonStatusNotice(status SalonStatus) NotificationContent {
	verdict := "❌ প্রত্যাখ্যাত"
	switch status {
	case SalonApproved:
		verdict = "✅ অনুমোদিত"
	case SalonPending:
		verdict = "⏳ পর্যালোচনাধীন"
	}
	return NotificationContent{
		Type:    NotificationSalonStatus,
		Title:   "সেলুন স্ট্যাটাস",
		Message: fmt.Sprintf("আপনার লিস্টিংটি %s হয়েছে।", verdict),
	}
}

// CommissionDueNotice goes to the owner during the grace window
func CommissionDueNotice(debt decimal.Decimal) NotificationContent {
	return NotificationContent{
		Type:    NotificationCommissionDue,
		Title:   "কমিশন বকেয়া",
		Message: fmt.Sprintf("আপনার বকেয়া কমিশন %s টাকা। %d তারিখের মধ্যে পরিশোধ করুন।", debt.StringFixed(0), GraceWindowEndDay),
	}
}
