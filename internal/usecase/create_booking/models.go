package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64           // ID клиента
	SalonID    int64           // ID салона
	ServiceIDs []int64         // Выбранные услуги салона
	Date       time.Time       // Дата бронирования (без времени)
	TimeLabel  types.TimeLabel // Метка слота, например "02:30 PM"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	UserID     int64
	SalonID    int64
	ServiceIDs []int64
	Date       time.Time
	TimeLabel  types.TimeLabel
	Status     string
	TotalPrice decimal.Decimal // Сумма цен услуг на момент бронирования
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
