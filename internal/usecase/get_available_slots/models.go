package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	SalonID int64     // ID салона
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со всеми слотами дня
type Response struct {
	Date    time.Time
	SalonID int64
	Slots   []Slot
}

// Slot слот дня с признаками доступности
type Slot struct {
	TimeLabel    types.TimeLabel
	Segment      domain.DaySegment
	IsBooked     bool // занят живым бронированием
	IsTooSoon    bool // сегодня и начинается раньше, чем через час
	IsSelectable bool
}
