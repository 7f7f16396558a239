package available_slots

import (
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	availableSlots "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	VendorID int64    `json:"vendorId"`
	Date     string   `json:"date"`
	IsOpen   bool     `json:"isOpen"`
	Slots    []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *availableSlots.Response) *SlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	return &SlotsResponse{
		VendorID: resp.VendorID,
		Date:     resp.Date.Format(domain.DateFormat),
		IsOpen:   resp.IsOpen,
		Slots:    slots,
	}
}
