package commission

import "errors"

var (
	// ErrAccessDenied возвращается, когда статус запрашивает не владелец и не администратор
	ErrAccessDenied = errors.New("commission: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commission: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("commission: internal error")
)
