package queue_status

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	queueStatus "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/queue_status"
)

// QueueStatusResponse HTTP response model
type QueueStatusResponse struct {
	BookingID   int64  `json:"bookingId"`
	VendorID    int64  `json:"vendorId"`
	Token       int    `json:"token"`
	Status      string `json:"status"`
	Completed   bool   `json:"completed"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`

	Position             *int `json:"position"` // null вне очереди
	BookingsAhead        int  `json:"bookingsAhead"`
	EstimatedWaitMinutes int  `json:"estimatedWaitMinutes"`
}

// ParseQuery собирает модель use case из query-параметров:
// bookingId | token+phone[+date] | email
func ParseQuery(values url.Values) (*queueStatus.Request, error) {
	req := &queueStatus.Request{
		Phone: values.Get("phone"),
		Email: values.Get("email"),
	}

	if raw := values.Get("bookingId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.BookingID = &id
	}

	if raw := values.Get("token"); raw != "" {
		token, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Token = &token
	}

	if raw := values.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *queueStatus.Response) *QueueStatusResponse {
	return &QueueStatusResponse{
		BookingID:            resp.BookingID,
		VendorID:             resp.VendorID,
		Token:                resp.Token,
		Status:               resp.Status,
		Completed:            resp.Completed,
		BookingDate:          resp.BookingDate.Format(domain.DateFormat),
		StartTime:            resp.StartTime,
		Position:             resp.Position,
		BookingsAhead:        resp.BookingsAhead,
		EstimatedWaitMinutes: resp.EstimatedWaitMinutes,
	}
}
