package queue_status

import (
	"context"

	queueStatus "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/queue_status"
)

type QueueStatusUseCase interface {
	Execute(ctx context.Context, req *queueStatus.Request) (*queueStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
