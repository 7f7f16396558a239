package notify_position

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/middleware"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidBookingID = "некорректный ID брони"
	msgBookingNotFound  = "бронь не найдена"
	msgAccessDenied     = "доступ запрещён"
	msgBookingCancelled = "бронь отменена"
	msgNotInQueue       = "бронь уже обслужена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/vendor/bookings/{id}/notify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.VendorIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /vendor/bookings/{id}/notify - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.NotifyPosition(r.Context(), bookingID, vendorID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /vendor/bookings/{id}/notify - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /vendor/bookings/{id}/notify - Access denied: booking_id=%d, vendor_id=%d", bookingID, vendorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrBookingCancelled):
			h.logger.Warn("POST /vendor/bookings/{id}/notify - Booking cancelled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)

		case errors.Is(err, bookings.ErrNotInQueue):
			h.logger.Warn("POST /vendor/bookings/{id}/notify - Not in queue: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotInQueue)

		default:
			h.logger.Error("POST /vendor/bookings/{id}/notify - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendor/bookings/{id}/notify - booking_id=%d, position=%d", bookingID, result.Position)
	handlers.RespondJSON(w, http.StatusOK, result)
}
