package process_payment

import (
	"errors"
	"net/http"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/middleware"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/payments"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/payments/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgVendorNotFound     = "вендор не найден"
	msgTokenUsed          = "платежный токен уже использован"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/vendor/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.VendorIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.ProcessPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendor/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.VendorID = vendorID

	result, err := h.service.Process(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrVendorNotFound):
			h.logger.Warn("POST /vendor/payments - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, payments.ErrTokenUsed):
			h.logger.Warn("POST /vendor/payments - Token used: vendor_id=%d", vendorID)
			handlers.RespondError(w, http.StatusConflict, msgTokenUsed)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /vendor/payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /vendor/payments - Failed: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendor/payments - Payment processed: vendor_id=%d, reference=%s", vendorID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
