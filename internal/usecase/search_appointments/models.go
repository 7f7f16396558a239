package search_appointments

import "time"

// Request модель запроса поиска бронирований по телефону
type Request struct {
	Phone string // Телефон клиента в любом написании
}

// Appointment одно найденное бронирование с позицией в очереди
type Appointment struct {
	BookingID   int64     // ID бронирования
	VendorID    int64     // ID вендора
	ServiceName string    // Название услуги
	BookingDate time.Time // Дата визита
	StartTime   string    // Время визита
	Token       int       // Талон
	Status      string    // Статус бронирования

	// Position nil для бронирований вне очереди
	Position             *int // Позиция в очереди (с 1)
	EstimatedWaitMinutes int  // Прогноз ожидания в минутах
}

// Response модель ответа со списком предстоящих бронирований
type Response struct {
	Appointments []Appointment
}
