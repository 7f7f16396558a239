package edit_token

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/middleware"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidBookingID   = "некорректный ID брони"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронь не найдена"
	msgAccessDenied       = "доступ запрещён"
	msgBookingCancelled   = "бронь отменена"
	msgTokenInUse         = "талон уже занят"
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

// Handle PATCH /api/v1/vendor/bookings/{id}/token
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.VendorIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /vendor/bookings/{id}/token - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.EditTokenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /vendor/bookings/{id}/token - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.VendorID = vendorID

	result, err := h.service.EditToken(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /vendor/bookings/{id}/token - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /vendor/bookings/{id}/token - Access denied: booking_id=%d, vendor_id=%d", bookingID, vendorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrBookingCancelled):
			h.logger.Warn("PATCH /vendor/bookings/{id}/token - Booking cancelled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)

		case errors.Is(err, bookings.ErrTokenInUse):
			h.logger.Warn("PATCH /vendor/bookings/{id}/token - Token in use: booking_id=%d, token=%d", bookingID, req.Token)
			handlers.RespondError(w, http.StatusConflict, msgTokenInUse)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /vendor/bookings/{id}/token - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /vendor/bookings/{id}/token - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /vendor/bookings/{id}/token - booking_id=%d, token=%d", bookingID, result.Token)
	handlers.RespondJSON(w, http.StatusOK, result)
}
