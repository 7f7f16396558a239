package bookings

import (
	"context"
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/notify"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) ([]*domain.Booking, error)
	CountByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) (int, error)
	SetCompleted(ctx context.Context, id int64, completed bool, completedBy *string) error
	Reschedule(ctx context.Context, id int64, newDate time.Time, newTime types.TimeString) error
	UpdateToken(ctx context.Context, id int64, token int) error
	UpdateWaitTime(ctx context.Context, id int64, minutes int) error
	TokenInUse(ctx context.Context, vendorID int64, date time.Time, token int, excludeID int64) (bool, error)
	MaxTokenForDate(ctx context.Context, vendorID int64, date time.Time) (int, error)
	CountAhead(ctx context.Context, vendorID int64, date time.Time, token int) (int, error)
}

// VendorRepository интерфейс репозитория вендоров (счетчик талонов)
type VendorRepository interface {
	NextToken(ctx context.Context, vendorID int64, date time.Time, floor int) (int, error)
	RaiseTokenCounter(ctx context.Context, vendorID int64, date time.Time, token int) error
}

// Publisher интерфейс публикации событий бронирований
type Publisher interface {
	BookingRescheduled(ctx context.Context, event notify.BookingEvent)
	QueuePositionNotified(ctx context.Context, event notify.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
