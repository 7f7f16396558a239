package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/notify"
	vendorRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/vendor"
)

// UseCase use case создания бронирования с выдачей талона
type UseCase struct {
	bookingRepo  BookingRepository
	vendorRepo   VendorRepository
	publisher    Publisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	publisher Publisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vendorRepo:   vendorRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Выдача талона идет в сериализуемой транзакции с блокировкой строки
// вендора: номер строго больше и максимума среди бронирований даты, и
// кешированного счетчика, поэтому талоны монотонны и не переиспользуются
// даже после отмен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: vendor=%d, phone=%s, date=%s, time=%s",
		req.VendorID, req.CustomerPhone, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Валидация даты и времени
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: time %s already passed today", req.StartTime)
		return nil, err
	}

	// 3. Быстрая проверка вендора до открытия транзакции
	vendor, err := uc.vendorRepo.GetByID(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			uc.logger.Warn("CreateBooking: vendor=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %w", ErrInternal, err)
	}

	if !vendor.IsOpen {
		uc.logger.Warn("CreateBooking: vendor=%d is closed", req.VendorID)
		return nil, ErrVendorClosed
	}

	serviceName := strings.TrimSpace(req.ServiceName)
	if _, ok := vendor.FindService(serviceName); !ok {
		uc.logger.Warn("CreateBooking: service %q not found at vendor=%d", serviceName, req.VendorID)
		return nil, ErrServiceNotFound
	}

	var result *domain.Booking
	var ahead int

	// 4. Выдача талона и создание бронирования в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем строку вендора: конкурентные бронирования одного
		// вендора выстраиваются в очередь, повторная проверка is_open
		// закрывает гонку с переключением флага
		lockedVendor, err := uc.vendorRepo.GetByIDForUpdate(txCtx, req.VendorID)
		if err != nil {
			if errors.Is(err, vendorRepo.ErrVendorNotFound) {
				return ErrVendorNotFound
			}
			return fmt.Errorf("%w: failed to lock vendor: %w", ErrInternal, err)
		}
		if !lockedVendor.IsOpen {
			return ErrVendorClosed
		}

		// 4.2. Максимальный выданный талон даты (включая отмененные)
		floor, err := uc.bookingRepo.MaxTokenForDate(txCtx, req.VendorID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get max token: %w", ErrInternal, err)
		}

		// 4.3. Следующий номер из счетчика, согласованный с floor
		token, err := uc.vendorRepo.NextToken(txCtx, req.VendorID, req.Date, floor)
		if err != nil {
			return fmt.Errorf("%w: failed to allocate token: %w", ErrInternal, err)
		}

		booking := &domain.Booking{
			VendorID:             req.VendorID,
			CustomerName:         strings.TrimSpace(req.CustomerName),
			CustomerPhone:        req.CustomerPhone,
			CustomerEmail:        strings.TrimSpace(req.CustomerEmail),
			ServiceName:          serviceName,
			Notes:                strings.TrimSpace(req.Notes),
			BookingDate:          req.Date,
			StartTime:            req.StartTime,
			Token:                token,
			Status:               domain.StatusBooked,
			EstimatedWaitMinutes: domain.DefaultWaitMinutes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// ErrTokenTaken ретраится менеджером транзакций как 23505
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		ahead, err = uc.bookingRepo.CountAhead(txCtx, req.VendorID, req.Date, created.Token)
		if err != nil {
			return fmt.Errorf("%w: failed to count queue: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	queue := domain.ComputeQueueStatus(result, ahead)

	// 5. Уведомление после коммита, сбой доставки не ломает запрос
	uc.publisher.BookingCreated(ctx, notify.BookingEvent{
		BookingID:     result.ID,
		VendorID:      result.VendorID,
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		BookingDate:   result.BookingDate.Format(domain.DateFormat),
		StartTime:     result.StartTime.String(),
		Token:         result.Token,
	})

	uc.logger.Info("CreateBooking: created booking id=%d token=%d position=%d",
		result.ID, result.Token, *queue.Position)

	return &Response{
		ID:                   result.ID,
		VendorID:             result.VendorID,
		CustomerName:         result.CustomerName,
		CustomerPhone:        result.CustomerPhone,
		ServiceName:          result.ServiceName,
		BookingDate:          result.BookingDate,
		StartTime:            result.StartTime,
		Status:               string(result.Status),
		Token:                result.Token,
		QueuePosition:        *queue.Position,
		BookingsAhead:        queue.BookingsAhead,
		EstimatedWaitMinutes: queue.EstimatedWaitMinutes,
		CreatedAt:            result.CreatedAt,
	}, nil
}
