package create_booking

import (
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	createBooking "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/create_booking"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VendorID      int64  `json:"vendorId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	ServiceName   string `json:"serviceName"`
	BookingDate   string `json:"bookingDate"` // "2026-09-14"
	StartTime     string `json:"startTime"`   // "10:30"
	Notes         string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	VendorID      int64  `json:"vendorId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	ServiceName   string `json:"serviceName"`
	BookingDate   string `json:"bookingDate"`
	StartTime     string `json:"startTime"`
	Status        string `json:"status"`

	Token                int `json:"token"`
	QueuePosition        int `json:"queuePosition"`
	BookingsAhead        int `json:"bookingsAhead"`
	EstimatedWaitMinutes int `json:"estimatedWaitMinutes"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		VendorID:      r.VendorID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		ServiceName:   r.ServiceName,
		Date:          bookingDate,
		StartTime:     startTime,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                   resp.ID,
		VendorID:             resp.VendorID,
		CustomerName:         resp.CustomerName,
		CustomerPhone:        resp.CustomerPhone,
		ServiceName:          resp.ServiceName,
		BookingDate:          resp.BookingDate.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		Status:               resp.Status,
		Token:                resp.Token,
		QueuePosition:        resp.QueuePosition,
		BookingsAhead:        resp.BookingsAhead,
		EstimatedWaitMinutes: resp.EstimatedWaitMinutes,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
	}
}
