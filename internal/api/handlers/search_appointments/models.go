package search_appointments

import (
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	searchAppointments "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/search_appointments"
)

// AppointmentResponse одно найденное бронирование
type AppointmentResponse struct {
	BookingID   int64  `json:"bookingId"`
	VendorID    int64  `json:"vendorId"`
	ServiceName string `json:"serviceName"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	Token       int    `json:"token"`
	Status      string `json:"status"`

	Position             *int `json:"position"` // null вне очереди
	EstimatedWaitMinutes int  `json:"estimatedWaitMinutes"`
}

// SearchResponse HTTP response model
type SearchResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchAppointments.Response) *SearchResponse {
	out := &SearchResponse{
		Appointments: make([]AppointmentResponse, 0, len(resp.Appointments)),
	}

	for _, a := range resp.Appointments {
		out.Appointments = append(out.Appointments, AppointmentResponse{
			BookingID:            a.BookingID,
			VendorID:             a.VendorID,
			ServiceName:          a.ServiceName,
			BookingDate:          a.BookingDate.Format(domain.DateFormat),
			StartTime:            a.StartTime,
			Token:                a.Token,
			Status:               a.Status,
			Position:             a.Position,
			EstimatedWaitMinutes: a.EstimatedWaitMinutes,
		})
	}

	return out
}
