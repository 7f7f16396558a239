package edit_wait_time

import (
	"context"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings/models"
)

type BookingService interface {
	EditWaitTime(ctx context.Context, bookingID int64, req *models.EditWaitTimeRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
