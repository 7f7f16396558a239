package available_slots

import (
	"context"

	availableSlots "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/available_slots"
)

type AvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *availableSlots.Request) (*availableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
