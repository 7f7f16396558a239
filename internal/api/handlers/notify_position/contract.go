package notify_position

import (
	"context"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings/models"
)

type BookingService interface {
	NotifyPosition(ctx context.Context, bookingID int64, vendorID int64) (*models.NotifyPositionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
