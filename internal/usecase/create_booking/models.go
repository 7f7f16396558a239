package create_booking

import (
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	VendorID      int64            // ID вендора
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента ("+" и 10-14 цифр)
	CustomerEmail string           // Email клиента (опционально)
	ServiceName   string           // Название услуги из списка вендора
	Date          time.Time        // Дата визита (без времени)
	StartTime     types.TimeString // Время визита (например, "10:30")
	Notes         string           // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	VendorID      int64            // ID вендора
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	ServiceName   string           // Название услуги
	BookingDate   time.Time        // Дата визита
	StartTime     types.TimeString // Время визита
	Status        string           // Статус бронирования

	// Позиция в очереди на момент создания
	Token                int // Выданный талон
	QueuePosition        int // Позиция в очереди (с 1)
	BookingsAhead        int // Активных бронирований впереди
	EstimatedWaitMinutes int // Прогноз ожидания в минутах

	CreatedAt time.Time // Время создания
}
