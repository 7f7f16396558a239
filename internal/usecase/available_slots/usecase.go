package available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	vendorRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/vendor"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// slotStepMinutes шаг сетки времен визита
const slotStepMinutes = 30

// UseCase use case получения свободных времен визита
type UseCase struct {
	bookingRepo  BookingRepository
	vendorRepo   VendorRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, vendorRepo VendorRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vendorRepo:   vendorRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит получасовую сетку в рабочих часах вендора и убирает из
// нее занятые и уже прошедшие времена. Часы работы справочные, поэтому
// занятость считается по точному совпадению времени.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AvailableSlots: vendor=%d, date=%s", req.VendorID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("AvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			uc.logger.Warn("AvailableSlots: vendor=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("AvailableSlots: failed to get vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get vendor: %w", ErrInternal, err)
	}

	if !vendor.IsOpen {
		uc.logger.Info("AvailableSlots: vendor=%d is closed", req.VendorID)
		return &Response{
			VendorID: req.VendorID,
			Date:     req.Date,
			IsOpen:   false,
			Slots:    []types.TimeString{},
		}, nil
	}

	bookedTimes, err := uc.bookingRepo.BookedTimesForDate(ctx, req.VendorID, req.Date)
	if err != nil {
		uc.logger.Error("AvailableSlots: failed to get booked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked times: %w", ErrInternal, err)
	}

	booked := make(map[types.TimeString]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	slots, err := buildSlots(vendor.WorkingHours, booked, req.Date, now)
	if err != nil {
		uc.logger.Error("AvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %w", ErrInternal, err)
	}

	uc.logger.Info("AvailableSlots: %d free slots for vendor=%d on %s",
		len(slots), req.VendorID, req.Date.Format(domain.DateFormat))

	return &Response{
		VendorID: req.VendorID,
		Date:     req.Date,
		IsOpen:   true,
		Slots:    slots,
	}, nil
}

// buildSlots генерирует свободные времена по получасовой сетке
func buildSlots(hours domain.WorkingHours, booked map[types.TimeString]struct{}, date, now time.Time) ([]types.TimeString, error) {
	start, err := hours.Start.Minutes()
	if err != nil {
		return nil, err
	}
	end, err := hours.End.Minutes()
	if err != nil {
		return nil, err
	}

	// Для сегодняшней даты прошедшие времена не предлагаются
	cutoff := -1
	if isSameDay(date, now) {
		cutoff = now.Hour()*60 + now.Minute()
	}

	slots := make([]types.TimeString, 0)
	for m := start; m < end; m += slotStepMinutes {
		if m <= cutoff {
			continue
		}

		slot := types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
		if _, taken := booked[slot]; taken {
			continue
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendorId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
