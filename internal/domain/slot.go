package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// DaySegment is a named part of the salon day
type DaySegment string

const (
	SegmentMorning   DaySegment = "morning"
	SegmentAfternoon DaySegment = "afternoon"
	SegmentEvening   DaySegment = "evening"
)

const slotStepMinutes = 30

// segmentBounds first and last slot of every segment, inclusive
var segmentBounds = []struct {
	segment     DaySegment
	first, last string
}{
	{SegmentMorning, "09:00 AM", "11:30 AM"},
	{SegmentAfternoon, "12:00 PM", "05:30 PM"},
	{SegmentEvening, "06:00 PM", "10:30 PM"},
}

// ScheduledLabel is one entry of the fixed slot enumeration
type ScheduledLabel struct {
	Label   types.TimeLabel
	Segment DaySegment
}

var schedule = buildSchedule()

func buildSchedule() []ScheduledLabel {
	out := make([]ScheduledLabel, 0, 28)
	for _, b := range segmentBounds {
		last := types.MustTimeLabel(b.last)
		for l := types.MustTimeLabel(b.first); !l.IsAfter(last); {
			out = append(out, ScheduledLabel{Label: l, Segment: b.segment})
			next, err := l.AddMinutes(slotStepMinutes)
			if err != nil {
				break
			}
			l = next
		}
	}
	return out
}

// Schedule returns the ordered half-hour labels of a salon day
func Schedule() []ScheduledLabel {
	out := make([]ScheduledLabel, len(schedule))
	copy(out, schedule)
	return out
}

// IsScheduledLabel reports whether l belongs to the slot enumeration
func IsScheduledLabel(l types.TimeLabel) bool {
	for _, s := range schedule {
		if s.Label.Equal(l) {
			return true
		}
	}
	return false
}

// AvailableSlot represents one time label on a date with its availability
type AvailableSlot struct {
	TimeLabel types.TimeLabel
	Segment   DaySegment
	IsBooked  bool // occupied by a non-REJECTED booking
	IsTooSoon bool // inside the buffer before now on today's date
}

// IsSelectable returns true if the customer may pick this slot
func (s *AvailableSlot) IsSelectable() bool {
	return !s.IsBooked && !s.IsTooSoon
}

// IsTooSoon applies the time-buffer rule: on today's date a label starting
// earlier than now + BookingBufferMinutes is not selectable. Future dates are never affected.
func IsTooSoon(date time.Time, label types.TimeLabel, now time.Time) bool {
	if !SameDate(date, now) {
		return false
	}
	slotStart := label.On(now)
	return slotStart.Before(now.Add(BookingBufferMinutes * time.Minute))
}

// SameDate compares calendar dates ignoring time and location
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast reports whether date is an earlier calendar date than today
func IsDateInPast(date, now time.Time) bool {
	y, m, d := date.Date()
	dateOnly := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ny, nm, nd := now.Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(today)
}
