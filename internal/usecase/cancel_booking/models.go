package cancel_booking

import "time"

// Request модель запроса на отмену бронирования.
// Бронирование находится либо по BookingID, либо по паре Token+Phone
// (опционально суженной датой). BookingID имеет приоритет.
type Request struct {
	BookingID *int64     // ID бронирования (опционально)
	Token     *int       // Талон (опционально, вместе с Phone)
	Phone     string     // Телефон клиента (для поиска по талону)
	Date      *time.Time // Дата визита (опционально, сужает поиск по талону)
}

// Response модель ответа на отмену
type Response struct {
	ID          int64     // ID отмененного бронирования
	VendorID    int64     // ID вендора
	Token       int       // Талон
	Status      string    // Новый статус (cancelled)
	CancelledAt time.Time // Время отмены

	// CancellationFeePercent информационный процент штрафа: поздние
	// отмены (ближе окна к началу визита) помечаются штрафом, деньги
	// не списываются
	CancellationFeePercent int
}
