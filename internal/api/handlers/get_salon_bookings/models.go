package get_salon_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задаёт один день и имеет приоритет над startDate/endDate.
func ToServiceRequest(salonID int64, caller domain.Identity, query url.Values) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{
		Caller:  caller,
		SalonID: salonID,
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		start, err := parseOptionalDate(query.Get("startDate"))
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		end, err := parseOptionalDate(query.Get("endDate"))
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.StartDate = start
		req.EndDate = end
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeRejected"); raw != "" {
		includeRejected, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeRejected value: %w", err)
		}
		req.IncludeRejected = includeRejected
	}

	return req, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
