package domain

import (
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusCancelled BookingStatus = "cancelled"
	StatusDone      BookingStatus = "done"
)

// Booking represents a queued appointment at a vendor.
//
// Status and Completed are deliberately separate fields: the status endpoint
// and the completion toggle mutate them independently, and the dashboard
// reads both. InQueue and IsServed centralize the combined interpretation.
type Booking struct {
	ID       int64
	VendorID int64

	CustomerPhone string
	CustomerName  string
	CustomerEmail string
	ServiceName   string
	Notes         string

	BookingDate time.Time        // calendar date, midnight local
	StartTime   types.TimeString // "HH:MM", naive local time

	// Token is the queue number, unique per (vendor, date) across all
	// statuses. Assigned once at creation, changed only by an explicit
	// vendor edit.
	Token int

	Status      BookingStatus
	Completed   bool
	CompletedBy *string

	// EstimatedWaitMinutes is the vendor-tuned per-visit estimate used as
	// the multiplier for queue wait projections.
	EstimatedWaitMinutes int

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InQueue returns true while the booking still occupies a queue position.
func (b *Booking) InQueue() bool {
	return b.Status == StatusBooked && !b.Completed
}

// IsServed returns true once the booking has been completed by staff.
func (b *Booking) IsServed() bool {
	return b.Status == StatusDone || b.Completed
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsActive returns true if the booking is neither cancelled nor done.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusDone
}

// WaitPerVisit returns the per-booking wait estimate, falling back to the
// system default when the vendor never tuned it.
func (b *Booking) WaitPerVisit() int {
	if b.EstimatedWaitMinutes > 0 {
		return b.EstimatedWaitMinutes
	}
	return DefaultWaitMinutes
}

// AppointmentAt combines BookingDate and StartTime into the appointment
// instant in local time. Used by the late-cancellation fee policy.
func (b *Booking) AppointmentAt() (time.Time, error) {
	return b.StartTime.At(b.BookingDate)
}

// VendorBookingsFilter фильтр для выборки бронирований вендора
type VendorBookingsFilter struct {
	VendorID int64          // Обязательный параметр
	Status   *BookingStatus // Фильтр по статусу (опционально)
	Date     *time.Time     // Фильтр по дате (опционально)
	Page     int            // Номер страницы, с 1
	Limit    int            // Размер страницы
}

// Offset returns the pagination offset for the filter.
func (f VendorBookingsFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}
