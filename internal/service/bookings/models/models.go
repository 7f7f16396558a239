package models

import (
	"errors"
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на выборку бронирований вендора
type ListBookingsRequest struct {
	VendorID int64
	Status   *string
	Date     *time.Time
	Page     int
	Limit    int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.VendorBookingsFilter, error) {
	filter := domain.VendorBookingsFilter{
		VendorID: r.VendorID,
		Date:     r.Date,
		Page:     r.Page,
		Limit:    r.Limit,
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultPageLimit
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// SetCompletedRequest запрос на отметку обслуживания
type SetCompletedRequest struct {
	VendorID    int64
	Completed   bool
	CompletedBy string
}

// RescheduleRequest запрос на перенос бронирования
type RescheduleRequest struct {
	VendorID  int64
	Date      string `json:"date"`      // "2026-09-14"
	StartTime string `json:"startTime"` // "10:30"
}

// EditTokenRequest запрос на ручное изменение талона
type EditTokenRequest struct {
	VendorID int64
	Token    int `json:"token"`
}

// EditWaitTimeRequest запрос на изменение оценки времени обслуживания
type EditWaitTimeRequest struct {
	VendorID int64
	Minutes  int `json:"estimatedWaitMinutes"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	VendorID      int64  `json:"vendorId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	ServiceName   string `json:"serviceName"`
	Notes         string `json:"notes,omitempty"`

	BookingDate string `json:"bookingDate"` // "2026-09-14"
	StartTime   string `json:"startTime"`   // "10:30"

	Token                int     `json:"token"`
	Status               string  `json:"status"`
	Completed            bool    `json:"completed"`
	CompletedBy          *string `json:"completedBy,omitempty"`
	EstimatedWaitMinutes int     `json:"estimatedWaitMinutes"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NotifyPositionResponse результат отправки позиции в очереди клиенту
type NotifyPositionResponse struct {
	BookingID            int64  `json:"bookingId"`
	Token                int    `json:"token"`
	Position             int    `json:"position"`
	BookingsAhead        int    `json:"bookingsAhead"`
	EstimatedWaitMinutes int    `json:"estimatedWaitMinutes"`
	CustomerPhone        string `json:"customerPhone"`
}

// BookingListResponse страница бронирований вендора
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                   b.ID,
		VendorID:             b.VendorID,
		CustomerName:         b.CustomerName,
		CustomerPhone:        b.CustomerPhone,
		CustomerEmail:        b.CustomerEmail,
		ServiceName:          b.ServiceName,
		Notes:                b.Notes,
		BookingDate:          b.BookingDate.Format(domain.DateFormat),
		StartTime:            b.StartTime.String(),
		Token:                b.Token,
		Status:               string(b.Status),
		Completed:            b.Completed,
		CompletedBy:          b.CompletedBy,
		EstimatedWaitMinutes: b.WaitPerVisit(),
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует страницу domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, page, limit, total int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Page:     page,
		Limit:    limit,
		Total:    total,
	}

	for _, b := range bookings {
		if br := FromDomainBooking(b); br != nil {
			resp.Bookings = append(resp.Bookings, *br)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
