package edit_token

import (
	"context"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings/models"
)

type BookingService interface {
	EditToken(ctx context.Context, bookingID int64, req *models.EditTokenRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
