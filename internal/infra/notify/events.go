package notify

import "time"

// Типы событий, публикуемых в очередь уведомлений
const (
	EventBookingCreated     = "booking.created"
	EventBookingCancelled   = "booking.cancelled"
	EventBookingRescheduled = "booking.rescheduled"
	EventQueuePosition      = "queue.position"
)

// BookingEvent событие жизненного цикла бронирования. Консьюмер очереди
// (SMS/email рассыльщик) живет в отдельном сервисе.
type BookingEvent struct {
	Event         string    `json:"event"`
	BookingID     int64     `json:"bookingId"`
	VendorID      int64     `json:"vendorId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	BookingDate   string    `json:"bookingDate"` // YYYY-MM-DD
	StartTime     string    `json:"startTime"`   // HH:MM
	Token         int       `json:"token"`
	OccurredAt    time.Time `json:"occurredAt"`

	// Заполняются только для queue.position
	Position             int `json:"position,omitempty"`
	EstimatedWaitMinutes int `json:"estimatedWaitMinutes,omitempty"`
}
