package domain

// Booking policy constants
const (
	// Slots on today's date closer than this to the current time are not selectable
	BookingBufferMinutes = 60

	// A customer may cancel their own PENDING booking while it is younger than this
	CustomerCancelWindowMinutes = 60

	// Owner reminder lead time before an appointment
	DefaultReminderLeadMinutes = 60

	// Priority used when sorting salons without an admin-assigned rank
	DefaultSalonPriority = 99
)

// Validation constants
const (
	MaxServicesPerBooking = 20
	MinReviewRating       = 1
	MaxReviewRating       = 5
	MaxReviewCommentLen   = 1000
	MaxSalonNameLen       = 200
	MaxTrxIDLen           = 64
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// StalePendingPolicy decides what happens to PENDING bookings whose slot time has passed
type StalePendingPolicy string

const (
	// StalePendingNone keeps stale PENDING bookings untouched
	StalePendingNone StalePendingPolicy = "none"
	// StalePendingReject rejects PENDING bookings once their slot start has passed
	StalePendingReject StalePendingPolicy = "reject"
)

// OccupyingStatuses статусы бронирований, занимающих слот
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// UpcomingStatuses статусы бронирований, по которым отправляются напоминания
var UpcomingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
