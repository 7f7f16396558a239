package queue_status

import "time"

// Request модель запроса статуса очереди.
// Бронирование находится по первому подошедшему признаку:
// BookingID, затем Token+Phone, затем Email (последнее бронирование).
type Request struct {
	BookingID *int64     // ID бронирования (опционально)
	Token     *int       // Талон (опционально, вместе с Phone)
	Phone     string     // Телефон клиента (для поиска по талону)
	Date      *time.Time // Дата визита (опционально, сужает поиск по талону)
	Email     string     // Email клиента (последнее бронирование)
}

// Response модель ответа со статусом очереди.
// Позиция и прогноз пересчитываются на каждый запрос и нигде не хранятся.
type Response struct {
	BookingID   int64     // ID бронирования
	VendorID    int64     // ID вендора
	Token       int       // Талон
	Status      string    // Статус бронирования
	Completed   bool      // Отмечено ли обслуживание
	BookingDate time.Time // Дата визита
	StartTime   string    // Время визита

	// Position nil для бронирований вне очереди (отмена, обслужено)
	Position             *int // Позиция в очереди (с 1)
	BookingsAhead        int  // Активных бронирований впереди
	EstimatedWaitMinutes int  // Прогноз ожидания в минутах
}
