package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается при попытке менять чужое бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrTokenInUse возвращается, когда запрошенный талон уже занят
	ErrTokenInUse = errors.New("token already in use for this date")

	// ErrBookingCancelled возвращается при изменении отмененного бронирования
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrNotInQueue возвращается для бронирований, уже покинувших очередь
	ErrNotInQueue = errors.New("booking is not waiting in the queue")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
