package list_vendors

import (
	"context"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/vendors/models"
)

type VendorService interface {
	ListOpen(ctx context.Context) (*models.VendorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
