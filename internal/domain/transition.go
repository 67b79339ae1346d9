package domain

import "time"

// Actor is the role of whoever requests a booking status change
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorOwner    Actor = "owner"
)

// TransitionVerdict explains why a status change is or is not allowed
type TransitionVerdict int

const (
	TransitionAllowed       TransitionVerdict = iota
	TransitionInvalid                         // no such edge in the lifecycle
	TransitionForbidden                       // edge exists but not for this actor
	TransitionWindowExpired                   // customer cancellation window is over
)

// ownerTransitions edges available to the salon owner
var ownerTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusCompleted},
}

// CheckTransition evaluates moving b to next on behalf of actor at time now
func CheckTransition(b *Booking, next BookingStatus, actor Actor, now time.Time) TransitionVerdict {
	if b.IsTerminal() || !isLifecycleEdge(b.Status, next) {
		return TransitionInvalid
	}

	switch actor {
	case ActorOwner:
		return TransitionAllowed
	case ActorCustomer:
		if b.Status != StatusPending || next != StatusRejected {
			return TransitionForbidden
		}
		if !WithinCancelWindow(b.CreatedAt, now) {
			return TransitionWindowExpired
		}
		return TransitionAllowed
	default:
		return TransitionForbidden
	}
}

// WithinCancelWindow reports whether now - createdAt is strictly less than the customer window
func WithinCancelWindow(createdAt, now time.Time) bool {
	return now.Sub(createdAt) < CustomerCancelWindowMinutes*time.Minute
}

func isLifecycleEdge(from, to BookingStatus) bool {
	for _, s := range ownerTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
