package available_slots

import (
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// Request модель запроса свободных времен визита
type Request struct {
	VendorID int64     // ID вендора
	Date     time.Time // Дата визита (без времени)
}

// Response модель ответа со свободными временами
type Response struct {
	VendorID int64              // ID вендора
	Date     time.Time          // Дата визита
	IsOpen   bool               // Принимает ли вендор бронирования
	Slots    []types.TimeString // Свободные времена, по получасовой сетке
}
