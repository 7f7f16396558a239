package vendors

import (
	"context"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
)

// VendorRepository интерфейс репозитория вендоров
type VendorRepository interface {
	Create(ctx context.Context, v *domain.Vendor) (*domain.Vendor, error)
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Vendor, error)
	ListOpen(ctx context.Context) ([]*domain.Vendor, error)
	ToggleOpen(ctx context.Context, id int64) (bool, error)
}

// VendorCache кеш публичного справочника открытых вендоров
type VendorCache interface {
	GetOpenVendors(ctx context.Context) ([]domain.Vendor, bool)
	SetOpenVendors(ctx context.Context, vendors []domain.Vendor)
	Invalidate(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
