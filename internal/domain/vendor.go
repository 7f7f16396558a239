package domain

import (
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// Vendor represents a service provider (salon, barber, clinic).
type Vendor struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Category     string
	Location     string
	Description  string
	Phone        string

	// IsOpen gates acceptance of new bookings.
	IsOpen bool

	WorkingHours WorkingHours
	Services     []VendorService

	Subscription Subscription

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkingHours are advisory opening hours, used for slot generation only.
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// VendorService is a single service offered by a vendor.
type VendorService struct {
	Name            string
	DurationMinutes int
	Price           float64
}

// Subscription holds the stubbed billing state of a vendor account.
type Subscription struct {
	PlanType     string
	BillingCycle string
	Status       string
	ExpiresAt    *time.Time
}

// FindService returns the vendor's service with the given name.
func (v *Vendor) FindService(name string) (VendorService, bool) {
	for _, s := range v.Services {
		if s.Name == name {
			return s, true
		}
	}
	return VendorService{}, false
}

// TokenCounter is the cached per-date high-water mark of issued tokens.
// It is authoritative only when no bookings exist for the date; the
// allocator always reconciles it against the live maximum.
type TokenCounter struct {
	VendorID  int64
	Date      time.Time
	LastToken int
}
