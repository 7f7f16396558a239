package update_booking_status

import (
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings/models"
)

// UpdateStatusRequest тело запроса отметки обслуживания
type UpdateStatusRequest struct {
	Completed   bool   `json:"completed"`
	CompletedBy string `json:"completedBy"`
}

func (r *UpdateStatusRequest) ToServiceRequest(vendorID int64) *models.SetCompletedRequest {
	return &models.SetCompletedRequest{
		VendorID:    vendorID,
		Completed:   r.Completed,
		CompletedBy: r.CompletedBy,
	}
}
