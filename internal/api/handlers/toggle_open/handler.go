package toggle_open

import (
	"errors"
	"net/http"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/middleware"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/vendors"
)

const (
	msgUnauthorized   = "требуется авторизация"
	msgVendorNotFound = "вендор не найден"
)

type Handler struct {
	service VendorService
	logger  Logger
}

func NewHandler(service VendorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/vendor/toggle-open
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.VendorIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.ToggleOpen(r.Context(), vendorID)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrVendorNotFound):
			h.logger.Warn("POST /vendor/toggle-open - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		default:
			h.logger.Error("POST /vendor/toggle-open - Failed: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendor/toggle-open - vendor_id=%d, is_open=%t", vendorID, result.IsOpen)
	handlers.RespondJSON(w, http.StatusOK, result)
}
