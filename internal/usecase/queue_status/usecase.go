package queue_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	bookingRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/booking"
)

// UseCase use case запроса позиции в очереди
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute возвращает позицию бронирования в очереди и прогноз ожидания.
// Позиция считается по активным бронированиям с меньшим талоном на ту же
// дату; бронирования вне очереди получают позицию nil.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QueueStatus: validation failed: %v", err)
		return nil, err
	}

	var booking *domain.Booking
	var ahead int

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		found, err := uc.findBooking(txCtx, req)
		if err != nil {
			return err
		}

		if found.InQueue() {
			ahead, err = uc.bookingRepo.CountAhead(txCtx, found.VendorID, found.BookingDate, found.Token)
			if err != nil {
				return fmt.Errorf("%w: failed to count queue: %w", ErrInternal, err)
			}
		}

		booking = found
		return nil
	})

	if err != nil {
		return nil, err
	}

	queue := domain.ComputeQueueStatus(booking, ahead)

	uc.logger.Info("QueueStatus: booking id=%d token=%d ahead=%d", booking.ID, booking.Token, queue.BookingsAhead)

	return &Response{
		BookingID:            booking.ID,
		VendorID:             booking.VendorID,
		Token:                booking.Token,
		Status:               string(booking.Status),
		Completed:            booking.Completed,
		BookingDate:          booking.BookingDate,
		StartTime:            booking.StartTime.String(),
		Position:             queue.Position,
		BookingsAhead:        queue.BookingsAhead,
		EstimatedWaitMinutes: queue.EstimatedWaitMinutes,
	}, nil
}

// findBooking находит бронирование по ID, талону с телефоном или email
func (uc *UseCase) findBooking(ctx context.Context, req *Request) (*domain.Booking, error) {
	var booking *domain.Booking
	var err error

	switch {
	case req.BookingID != nil:
		booking, err = uc.bookingRepo.GetByID(ctx, *req.BookingID)
	case req.Token != nil:
		booking, err = uc.bookingRepo.FindByTokenAndPhone(ctx, *req.Token, req.Phone, req.Date)
	default:
		booking, err = uc.bookingRepo.LatestByEmail(ctx, req.Email)
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("QueueStatus: booking not found")
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to find booking: %w", ErrInternal, err)
	}

	return booking, nil
}

// validateRequest проверяет, что указан хотя бы один признак поиска
func validateRequest(req *Request) error {
	if req.BookingID != nil {
		if *req.BookingID <= 0 {
			return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
		}
		return nil
	}

	if req.Token != nil {
		if *req.Token < domain.MinToken {
			return fmt.Errorf("%w: token must be positive", ErrInvalidInput)
		}
		if req.Phone == "" {
			return fmt.Errorf("%w: phone is required with token", ErrInvalidInput)
		}
		return nil
	}

	if req.Email == "" {
		return fmt.Errorf("%w: bookingId, token with phone, or email is required", ErrInvalidInput)
	}

	return nil
}
