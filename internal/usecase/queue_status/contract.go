package queue_status

import (
	"context"
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindByTokenAndPhone(ctx context.Context, token int, phone string, date *time.Time) (*domain.Booking, error)
	LatestByEmail(ctx context.Context, email string) (*domain.Booking, error)
	CountAhead(ctx context.Context, vendorID int64, date time.Time, token int) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
