package create_booking

import (
	"errors"
	"net/http"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	createBooking "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVendorNotFound     = "вендор не найден"
	msgVendorClosed       = "вендор не принимает бронирования"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgTooLateToBook      = "выбранное время уже прошло"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrVendorNotFound):
			h.logger.Warn("POST /bookings - Vendor not found: vendor_id=%d", req.VendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, createBooking.ErrVendorClosed):
			h.logger.Warn("POST /bookings - Vendor closed: vendor_id=%d", req.VendorID)
			handlers.RespondError(w, http.StatusConflict, msgVendorClosed)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: vendor_id=%d, service=%s", req.VendorID, req.ServiceName)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: vendor_id=%d", req.VendorID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: vendor_id=%d", req.VendorID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: vendor_id=%d, error=%v", req.VendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, token=%d, vendor_id=%d",
		result.ID, result.Token, req.VendorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
