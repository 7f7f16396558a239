package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/notify"
	bookingRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/booking"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings/models"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// Service сервис панели вендора: просмотр очереди, отметка обслуживания,
// перенос, ручное изменение талона и оценки ожидания
type Service struct {
	bookingRepo BookingRepository
	vendorRepo  VendorRepository
	publisher   Publisher
	txManager   TransactionManager
	logger      Logger

	// reassignToken выдавать ли новый талон при переносе на другую дату
	reassignToken bool

	now func() time.Time
}

// NewService создает новый экземпляр сервиса панели вендора
func NewService(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	publisher Publisher,
	txManager TransactionManager,
	logger Logger,
	reassignTokenOnReschedule bool,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		vendorRepo:    vendorRepo,
		publisher:     publisher,
		txManager:     txManager,
		logger:        logger,
		reassignToken: reassignTokenOnReschedule,
		now:           time.Now,
	}
}

// GetByID возвращает бронирование вендора
func (s *Service) GetByID(ctx context.Context, id int64, vendorID int64) (*models.BookingResponse, error) {
	booking, err := s.getOwned(ctx, "GetByID", id, vendorID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает страницу бронирований вендора с фильтрацией по статусу
// и дате. Общее количество считается под тем же фильтром.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: vendor=%d, page=%d, limit=%d", req.VendorID, req.Page, req.Limit)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var bookings []*domain.Booking
	var total int

	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		bookings, err = s.bookingRepo.GetByVendorWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
		}

		total, err = s.bookingRepo.CountByVendorWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: List - count error: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("List: failed for vendor=%d: %v", req.VendorID, err)
		return nil, err
	}

	s.logger.Info("List: fetched %d of %d bookings for vendor=%d", len(bookings), total, req.VendorID)
	return models.FromDomainBookingList(bookings, filter.Page, filter.Limit, total), nil
}

// SetCompleted отмечает бронирование обслуженным или возвращает его в
// очередь. Завершение выставляет статус done, возврат вернет booked.
func (s *Service) SetCompleted(ctx context.Context, bookingID int64, req *models.SetCompletedRequest) (*models.BookingResponse, error) {
	s.logger.Info("SetCompleted: booking=%d, completed=%v by vendor=%d", bookingID, req.Completed, req.VendorID)

	booking, err := s.getOwned(ctx, "SetCompleted", bookingID, req.VendorID)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("SetCompleted: booking=%d is cancelled", bookingID)
		return nil, ErrBookingCancelled
	}

	var completedBy *string
	if req.Completed && req.CompletedBy != "" {
		completedBy = &req.CompletedBy
	}

	if err := s.bookingRepo.SetCompleted(ctx, bookingID, req.Completed, completedBy); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("SetCompleted: repository error for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: SetCompleted - repository error: %w", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("SetCompleted: failed to reload booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: SetCompleted - failed to reload booking: %w", ErrInternal, err)
	}

	s.logger.Info("SetCompleted: booking=%d now status=%s completed=%v", bookingID, updated.Status, updated.Completed)
	return models.FromDomainBooking(updated), nil
}

// Reschedule переносит бронирование на новые дату и время.
// По умолчанию талон сохраняется; при включенном reassignToken на новую
// дату выдается следующий свободный номер.
func (s *Service) Reschedule(ctx context.Context, bookingID int64, req *models.RescheduleRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking=%d to %s %s by vendor=%d", bookingID, req.Date, req.StartTime, req.VendorID)

	newDate, newTime, err := s.parseSchedule(req.Date, req.StartTime)
	if err != nil {
		s.logger.Warn("Reschedule: validation failed for booking=%d: %v", bookingID, err)
		return nil, err
	}

	booking, err := s.getOwned(ctx, "Reschedule", bookingID, req.VendorID)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("Reschedule: booking=%d is cancelled", bookingID)
		return nil, ErrBookingCancelled
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if s.reassignToken && !newDate.Equal(booking.BookingDate) {
			floor, err := s.bookingRepo.MaxTokenForDate(txCtx, booking.VendorID, newDate)
			if err != nil {
				return fmt.Errorf("%w: Reschedule - failed to get max token: %w", ErrInternal, err)
			}

			token, err := s.vendorRepo.NextToken(txCtx, booking.VendorID, newDate, floor)
			if err != nil {
				return fmt.Errorf("%w: Reschedule - failed to allocate token: %w", ErrInternal, err)
			}

			if err := s.bookingRepo.UpdateToken(txCtx, bookingID, token); err != nil {
				return fmt.Errorf("%w: Reschedule - failed to update token: %w", ErrInternal, err)
			}
		}

		if err := s.bookingRepo.Reschedule(txCtx, bookingID, newDate, newTime); err != nil {
			if errors.Is(err, bookingRepo.ErrTokenTaken) {
				return ErrTokenInUse
			}
			return fmt.Errorf("%w: Reschedule - repository error: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Reschedule: failed for booking=%d: %v", bookingID, err)
		return nil, err
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Reschedule: failed to reload booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Reschedule - failed to reload booking: %w", ErrInternal, err)
	}

	s.publisher.BookingRescheduled(ctx, notify.BookingEvent{
		BookingID:     updated.ID,
		VendorID:      updated.VendorID,
		CustomerName:  updated.CustomerName,
		CustomerPhone: updated.CustomerPhone,
		BookingDate:   updated.BookingDate.Format(domain.DateFormat),
		StartTime:     updated.StartTime.String(),
		Token:         updated.Token,
	})

	s.logger.Info("Reschedule: booking=%d moved to %s %s token=%d",
		bookingID, updated.BookingDate.Format(domain.DateFormat), updated.StartTime, updated.Token)
	return models.FromDomainBooking(updated), nil
}

// EditToken вручную задает бронированию новый талон. Занятый номер
// отклоняется; счетчик талонов поднимается, чтобы автоматическая выдача
// не выдала этот номер повторно.
func (s *Service) EditToken(ctx context.Context, bookingID int64, req *models.EditTokenRequest) (*models.BookingResponse, error) {
	s.logger.Info("EditToken: booking=%d to token=%d by vendor=%d", bookingID, req.Token, req.VendorID)

	if req.Token < domain.MinToken {
		s.logger.Warn("EditToken: invalid token=%d for booking=%d", req.Token, bookingID)
		return nil, fmt.Errorf("%w: token must be at least %d", ErrInvalidInput, domain.MinToken)
	}

	booking, err := s.getOwned(ctx, "EditToken", bookingID, req.VendorID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		inUse, err := s.bookingRepo.TokenInUse(txCtx, booking.VendorID, booking.BookingDate, req.Token, bookingID)
		if err != nil {
			return fmt.Errorf("%w: EditToken - failed to check token: %w", ErrInternal, err)
		}
		if inUse {
			return ErrTokenInUse
		}

		if err := s.bookingRepo.UpdateToken(txCtx, bookingID, req.Token); err != nil {
			if errors.Is(err, bookingRepo.ErrTokenTaken) {
				return ErrTokenInUse
			}
			return fmt.Errorf("%w: EditToken - repository error: %w", ErrInternal, err)
		}

		// Поднимаем счетчик, чтобы следующая автоматическая выдача
		// перескочила вручную назначенный номер
		if err := s.vendorRepo.RaiseTokenCounter(txCtx, booking.VendorID, booking.BookingDate, req.Token); err != nil {
			return fmt.Errorf("%w: EditToken - failed to raise counter: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrTokenInUse) {
			s.logger.Warn("EditToken: token=%d already in use for booking=%d", req.Token, bookingID)
		} else {
			s.logger.Error("EditToken: failed for booking=%d: %v", bookingID, err)
		}
		return nil, err
	}

	booking.Token = req.Token

	s.logger.Info("EditToken: booking=%d now has token=%d", bookingID, req.Token)
	return models.FromDomainBooking(booking), nil
}

// EditWaitTime задает оценку времени обслуживания в минутах
func (s *Service) EditWaitTime(ctx context.Context, bookingID int64, req *models.EditWaitTimeRequest) (*models.BookingResponse, error) {
	s.logger.Info("EditWaitTime: booking=%d to %d minutes by vendor=%d", bookingID, req.Minutes, req.VendorID)

	if req.Minutes <= 0 {
		s.logger.Warn("EditWaitTime: invalid minutes=%d for booking=%d", req.Minutes, bookingID)
		return nil, fmt.Errorf("%w: estimatedWaitMinutes must be positive", ErrInvalidInput)
	}

	booking, err := s.getOwned(ctx, "EditWaitTime", bookingID, req.VendorID)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateWaitTime(ctx, bookingID, req.Minutes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("EditWaitTime: repository error for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: EditWaitTime - repository error: %w", ErrInternal, err)
	}

	booking.EstimatedWaitMinutes = req.Minutes

	s.logger.Info("EditWaitTime: booking=%d wait set to %d minutes", bookingID, req.Minutes)
	return models.FromDomainBooking(booking), nil
}

// NotifyPosition отправляет клиенту его текущую позицию в очереди через
// брокер уведомлений. Позиция пересчитывается на момент вызова.
func (s *Service) NotifyPosition(ctx context.Context, bookingID int64, vendorID int64) (*models.NotifyPositionResponse, error) {
	s.logger.Info("NotifyPosition: booking=%d by vendor=%d", bookingID, vendorID)

	booking, err := s.getOwned(ctx, "NotifyPosition", bookingID, vendorID)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("NotifyPosition: booking=%d is cancelled", bookingID)
		return nil, ErrBookingCancelled
	}
	if !booking.InQueue() {
		s.logger.Warn("NotifyPosition: booking=%d already served", bookingID)
		return nil, ErrNotInQueue
	}

	ahead, err := s.bookingRepo.CountAhead(ctx, booking.VendorID, booking.BookingDate, booking.Token)
	if err != nil {
		s.logger.Error("NotifyPosition: failed to count queue for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: NotifyPosition - failed to count queue: %w", ErrInternal, err)
	}

	queue := domain.ComputeQueueStatus(booking, ahead)

	s.publisher.QueuePositionNotified(ctx, notify.BookingEvent{
		BookingID:            booking.ID,
		VendorID:             booking.VendorID,
		CustomerName:         booking.CustomerName,
		CustomerPhone:        booking.CustomerPhone,
		BookingDate:          booking.BookingDate.Format(domain.DateFormat),
		StartTime:            booking.StartTime.String(),
		Token:                booking.Token,
		Position:             *queue.Position,
		EstimatedWaitMinutes: queue.EstimatedWaitMinutes,
	})

	s.logger.Info("NotifyPosition: booking=%d position=%d wait=%d", bookingID, *queue.Position, queue.EstimatedWaitMinutes)
	return &models.NotifyPositionResponse{
		BookingID:            booking.ID,
		Token:                booking.Token,
		Position:             *queue.Position,
		BookingsAhead:        queue.BookingsAhead,
		EstimatedWaitMinutes: queue.EstimatedWaitMinutes,
		CustomerPhone:        booking.CustomerPhone,
	}, nil
}

// Вспомогательные методы

// getOwned получает бронирование и проверяет, что оно принадлежит вендору
func (s *Service) getOwned(ctx context.Context, method string, bookingID, vendorID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking=%d not found", method, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking=%d: %v", method, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, method, err)
	}

	if booking.VendorID != vendorID {
		s.logger.Warn("%s: vendor=%d has no access to booking=%d", method, vendorID, bookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// parseSchedule валидирует дату и время переноса
func (s *Service) parseSchedule(dateStr, timeStr string) (time.Time, types.TimeString, error) {
	newDate, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid date, expected YYYY-MM-DD", ErrInvalidInput)
	}

	newTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid startTime, expected HH:MM", ErrInvalidInput)
	}

	appointmentAt, err := newTime.At(newDate)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid startTime", ErrInvalidInput)
	}
	if appointmentAt.Before(s.now()) {
		return time.Time{}, "", fmt.Errorf("%w: cannot reschedule into the past", ErrInvalidInput)
	}

	return newDate, newTime, nil
}
