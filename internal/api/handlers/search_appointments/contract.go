package search_appointments

import (
	"context"

	searchAppointments "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/search_appointments"
)

type SearchAppointmentsUseCase interface {
	Execute(ctx context.Context, req *searchAppointments.Request) (*searchAppointments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
