package search_appointments

import (
	"errors"
	"net/http"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	searchAppointments "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/search_appointments"
)

const msgInvalidPhone = "некорректный номер телефона"

type Handler struct {
	useCase SearchAppointmentsUseCase
	logger  Logger
}

func NewHandler(useCase SearchAppointmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/search?phone=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")

	result, err := h.useCase.Execute(r.Context(), &searchAppointments.Request{Phone: phone})
	if err != nil {
		switch {
		case errors.Is(err, searchAppointments.ErrInvalidInput):
			h.logger.Warn("GET /bookings/search - Invalid phone: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		default:
			h.logger.Error("GET /bookings/search - Search failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/search - Found %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
