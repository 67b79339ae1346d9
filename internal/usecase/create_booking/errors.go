package create_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_booking: salon not found")

	// ErrSalonNotBookable возвращается, когда салон не принимает бронирования
	// (не одобрен, скрыт владельцем или приостановлен за неуплату комиссии)
	ErrSalonNotBookable = errors.New("create_booking: salon is not bookable")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается, когда слот сегодня начинается раньше, чем через час
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrDuplicateBooking возвращается, когда слот уже занят
	ErrDuplicateBooking = errors.New("create_booking: slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
