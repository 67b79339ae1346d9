package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestSchedule(t *testing.T) {
	s := Schedule()

	assert.Len(t, s, 28)
	assert.Equal(t, "09:00 AM", s[0].Label.String())
	assert.Equal(t, SegmentMorning, s[0].Segment)
	assert.Equal(t, "11:30 AM", s[5].Label.String())
	assert.Equal(t, "12:00 PM", s[6].Label.String())
	assert.Equal(t, SegmentAfternoon, s[6].Segment)
	assert.Equal(t, "05:30 PM", s[17].Label.String())
	assert.Equal(t, "06:00 PM", s[18].Label.String())
	assert.Equal(t, SegmentEvening, s[18].Segment)
	assert.Equal(t, "10:30 PM", s[27].Label.String())

	for i := 1; i < len(s); i++ {
		assert.True(t, s[i-1].Label.IsBefore(s[i].Label), "labels must be ordered")
	}
}

func TestIsScheduledLabel(t *testing.T) {
	assert.True(t, IsScheduledLabel(types.MustTimeLabel("02:30 PM")))
	assert.False(t, IsScheduledLabel(types.MustTimeLabel("08:30 AM")))
	assert.False(t, IsScheduledLabel(types.MustTimeLabel("02:15 PM")))
	assert.False(t, IsScheduledLabel(types.MustTimeLabel("11:00 PM")))
}

func TestIsTooSoon(t *testing.T) {
	loc := time.FixedZone("BDT", 6*60*60)
	now := time.Date(2025, 3, 14, 14, 10, 0, 0, loc)
	today := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	assert.True(t, IsTooSoon(today, types.MustTimeLabel("02:30 PM"), now))
	assert.True(t, IsTooSoon(today, types.MustTimeLabel("03:00 PM"), now))
	assert.False(t, IsTooSoon(today, types.MustTimeLabel("03:30 PM"), now))
	assert.False(t, IsTooSoon(tomorrow, types.MustTimeLabel("09:00 AM"), now))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateInPast(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateInPast(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), now))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(0, 0))
	assert.Equal(t, 4.3, AverageRating(13, 3))
	assert.Equal(t, 4.5, AverageRating(9, 2))
}
