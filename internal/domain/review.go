package domain

import (
	"math"
	"time"
)

// Review is a customer's rating of a salon
type Review struct {
	ID        int64
	SalonID   int64
	UserID    int64
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// AverageRating rounds the mean of the given ratings to one decimal place
func AverageRating(sum int64, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
