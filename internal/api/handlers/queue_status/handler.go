package queue_status

import (
	"errors"
	"net/http"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/api/handlers"
	queueStatus "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/usecase/queue_status"
)

const (
	msgInvalidQuery    = "некорректные параметры запроса"
	msgBookingNotFound = "бронирование не найдено"
)

type Handler struct {
	useCase QueueStatusUseCase
	logger  Logger
}

func NewHandler(useCase QueueStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings/status - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, queueStatus.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/status - Booking not found")
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, queueStatus.ErrInvalidInput):
			h.logger.Warn("GET /bookings/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /bookings/status - Failed to get status: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/status - Status served: booking_id=%d", result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
