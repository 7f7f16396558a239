package available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	availableSlots "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/available_slots"
)

const (
	msgInvalidVendorID = "некорректный ID вендора"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVendorNotFound  = "вендор не найден"
	msgPastDate        = "дата в прошлом"
)

type Handler struct {
	useCase AvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase AvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendors/{id}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vendorID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/slots - Invalid vendor id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &availableSlots.Request{
		VendorID: vendorID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, availableSlots.ErrVendorNotFound):
			h.logger.Warn("GET /vendors/{id}/slots - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, availableSlots.ErrInvalidDate):
			h.logger.Warn("GET /vendors/{id}/slots - Past date: vendor_id=%d", vendorID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, availableSlots.ErrInvalidInput):
			h.logger.Warn("GET /vendors/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /vendors/{id}/slots - Failed: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vendors/{id}/slots - %d slots for vendor_id=%d", len(result.Slots), vendorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
