package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

// CreateBookingUseCase допускает бронирование слота салона.
// Ошибки: дубликат слота, салон не принимает бронирования, слишком поздно, неизвестные услуги.
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger логирование в формате "METHOD /path - Event: key=value"
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
