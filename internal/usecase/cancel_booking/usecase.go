package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/notify"
	bookingRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    Publisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	// Политика позднего штрафа (информационная)
	lateCancelWindow time.Duration
	lateFeePercent   int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	publisher Publisher,
	txManager TransactionManager,
	logger Logger,
	lateCancelWindow time.Duration,
	lateFeePercent int,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		publisher:        publisher,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		lateCancelWindow: lateCancelWindow,
		lateFeePercent:   lateFeePercent,
	}
}

// Execute отменяет бронирование. Повторная отмена отклоняется, прошедшее
// обслуживание отменить нельзя. Отмена ближе установленного окна к началу
// визита помечается процентом штрафа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var cancelled *domain.Booking
	var feePercent int

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.findBooking(txCtx, req)
		if err != nil {
			return err
		}

		if booking.IsCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d already cancelled", booking.ID)
			return ErrAlreadyCancelled
		}
		if booking.IsServed() {
			uc.logger.Warn("CancelBooking: booking id=%d already served", booking.ID)
			return ErrAlreadyServed
		}

		appointmentAt, err := booking.AppointmentAt()
		if err != nil {
			return fmt.Errorf("%w: failed to resolve appointment time: %w", ErrInternal, err)
		}
		feePercent = domain.CancellationFeePercent(appointmentAt, now, uc.lateCancelWindow, uc.lateFeePercent)

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.publisher.BookingCancelled(ctx, notify.BookingEvent{
		BookingID:     cancelled.ID,
		VendorID:      cancelled.VendorID,
		CustomerName:  cancelled.CustomerName,
		CustomerPhone: cancelled.CustomerPhone,
		BookingDate:   cancelled.BookingDate.Format(domain.DateFormat),
		StartTime:     cancelled.StartTime.String(),
		Token:         cancelled.Token,
	})

	uc.logger.Info("CancelBooking: cancelled booking id=%d, fee=%d%%", cancelled.ID, feePercent)

	return &Response{
		ID:                     cancelled.ID,
		VendorID:               cancelled.VendorID,
		Token:                  cancelled.Token,
		Status:                 string(domain.StatusCancelled),
		CancelledAt:            now,
		CancellationFeePercent: feePercent,
	}, nil
}

// findBooking находит бронирование: сперва по ID, иначе по талону и телефону
func (uc *UseCase) findBooking(ctx context.Context, req *Request) (*domain.Booking, error) {
	if req.BookingID != nil {
		booking, err := uc.bookingRepo.GetByID(ctx, *req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", *req.BookingID)
				return nil, ErrBookingNotFound
			}
			return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		return booking, nil
	}

	booking, err := uc.bookingRepo.FindByTokenAndPhone(ctx, *req.Token, req.Phone, req.Date)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking token=%d not found for phone", *req.Token)
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to find booking: %w", ErrInternal, err)
	}
	return booking, nil
}

// validateRequest проверяет, что указан либо ID, либо пара талон+телефон
func validateRequest(req *Request) error {
	if req.BookingID != nil {
		if *req.BookingID <= 0 {
			return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
		}
		return nil
	}

	if req.Token == nil || req.Phone == "" {
		return fmt.Errorf("%w: either bookingId or token with phone is required", ErrInvalidInput)
	}
	if *req.Token < domain.MinToken {
		return fmt.Errorf("%w: token must be positive", ErrInvalidInput)
	}

	return nil
}
