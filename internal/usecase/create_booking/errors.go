package create_booking

import "errors"

var (
	// ErrVendorNotFound возвращается, когда вендор не найден
	ErrVendorNotFound = errors.New("create_booking: vendor not found")

	// ErrVendorClosed возвращается, когда вендор не принимает бронирования
	ErrVendorClosed = errors.New("create_booking: vendor is not accepting bookings")

	// ErrServiceNotFound возвращается, когда услуга не найдена у вендора
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается при времени, уже прошедшем сегодня
	ErrTooLateToBook = errors.New("create_booking: too late to book this time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
