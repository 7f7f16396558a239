package available_slots

import "errors"

var (
	// ErrVendorNotFound возвращается, когда вендор не найден
	ErrVendorNotFound = errors.New("available_slots: vendor not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("available_slots: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("available_slots: internal error")
)
