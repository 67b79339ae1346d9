package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLabelLayout формат метки времени слота ("09:00 AM", "05:30 PM")
const TimeLabelLayout = "03:04 PM"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeLabel возвращается при некорректном формате метки времени
	ErrInvalidTimeLabel = errors.New("invalid time label format")

	// ErrTimeLabelOverflow возвращается, если сдвиг выходит за пределы суток
	ErrTimeLabelOverflow = errors.New("time label overflows the day")
)

// TimeLabel время начала слота внутри дня с точностью до минуты.
// Нулевое значение означает "не задано".
type TimeLabel struct {
	minutes int
	set     bool
}

// NewTimeLabel создает метку из часов (0-23) и минут
func NewTimeLabel(hour, minute int) (TimeLabel, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeLabel{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeLabel, hour, minute)
	}
	return TimeLabel{minutes: hour*60 + minute, set: true}, nil
}

// MustTimeLabel как ParseTimeLabel, но паникует при ошибке. Только для констант и тестов.
func MustTimeLabel(s string) TimeLabel {
	tl, err := ParseTimeLabel(s)
	if err != nil {
		panic(err)
	}
	return tl
}

// ParseTimeLabel разбирает строку вида "09:30 AM"
func ParseTimeLabel(s string) (TimeLabel, error) {
	t, err := time.Parse(TimeLabelLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return TimeLabel{}, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}
	return TimeLabel{minutes: t.Hour()*60 + t.Minute(), set: true}, nil
}

// TimeLabelFromTime возвращает метку для часов и минут момента t
func TimeLabelFromTime(t time.Time) TimeLabel {
	return TimeLabel{minutes: t.Hour()*60 + t.Minute(), set: true}
}

// Minutes количество минут от полуночи
func (t TimeLabel) Minutes() int {
	return t.minutes
}

// IsZero возвращает true, если метка не задана
func (t TimeLabel) IsZero() bool {
	return !t.set
}

// AddMinutes сдвигает метку на n минут в пределах суток
func (t TimeLabel) AddMinutes(n int) (TimeLabel, error) {
	m := t.minutes + n
	if m < 0 || m >= minutesPerDay {
		return TimeLabel{}, ErrTimeLabelOverflow
	}
	return TimeLabel{minutes: m, set: true}, nil
}

func (t TimeLabel) IsBefore(other TimeLabel) bool {
	return t.minutes < other.minutes
}

func (t TimeLabel) IsAfter(other TimeLabel) bool {
	return t.minutes > other.minutes
}

func (t TimeLabel) Equal(other TimeLabel) bool {
	return t.set == other.set && t.minutes == other.minutes
}

// On возвращает момент начала слота в указанную календарную дату (в локации date)
func (t TimeLabel) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.minutes/60, t.minutes%60, 0, 0, date.Location())
}

// String форматирует метку в виде "09:30 AM"
func (t TimeLabel) String() string {
	if !t.set {
		return ""
	}
	return time.Date(2000, 1, 1, t.minutes/60, t.minutes%60, 0, 0, time.UTC).Format(TimeLabelLayout)
}

func (t TimeLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeLabel(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer, в БД метка хранится текстом
func (t TimeLabel) Value() (driver.Value, error) {
	if !t.set {
		return nil, nil
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner
func (t *TimeLabel) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeLabel{}
		return nil
	case string:
		parsed, err := ParseTimeLabel(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeLabel, src)
	}
}
