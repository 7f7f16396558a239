package cancel_booking

import (
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	cancelBooking "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model.
// Указывается либо bookingId, либо token с phone.
type CancelBookingRequest struct {
	BookingID *int64 `json:"bookingId,omitempty"`
	Token     *int   `json:"token,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Date      string `json:"date,omitempty"` // "2026-09-14", сужает поиск по талону
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID                     int64  `json:"id"`
	VendorID               int64  `json:"vendorId"`
	Token                  int    `json:"token"`
	Status                 string `json:"status"`
	CancelledAt            string `json:"cancelledAt"`
	CancellationFeePercent int    `json:"cancellationFeePercent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest() (*cancelBooking.Request, error) {
	req := &cancelBooking.Request{
		BookingID: r.BookingID,
		Token:     r.Token,
		Phone:     r.Phone,
	}

	if r.Date != "" {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:                     resp.ID,
		VendorID:               resp.VendorID,
		Token:                  resp.Token,
		Status:                 resp.Status,
		CancelledAt:            resp.CancelledAt.Format(time.RFC3339),
		CancellationFeePercent: resp.CancellationFeePercent,
	}
}
