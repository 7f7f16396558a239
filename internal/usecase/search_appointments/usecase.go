package search_appointments

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// UseCase use case поиска предстоящих бронирований по телефону
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute ищет активные предстоящие бронирования клиента. Телефон
// нормализуется до цифр; совпадение точное либо по суффиксу, так номер
// без кода страны находит запись, сохраненную с кодом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	digits := normalizePhone(req.Phone)
	if len(digits) < domain.MinPhoneDigits || len(digits) > domain.MaxPhoneDigits {
		uc.logger.Warn("SearchAppointments: invalid phone, %d digits", len(digits))
		return nil, fmt.Errorf("%w: phone must contain %d-%d digits",
			ErrInvalidInput, domain.MinPhoneDigits, domain.MaxPhoneDigits)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var appointments []Appointment

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.SearchActiveByPhone(txCtx, digits, today, types.NewTimeString(now))
		if err != nil {
			return fmt.Errorf("%w: search failed: %w", ErrInternal, err)
		}

		appointments = make([]Appointment, 0, len(bookings))
		for _, b := range bookings {
			ahead := 0
			if b.InQueue() {
				ahead, err = uc.bookingRepo.CountAhead(txCtx, b.VendorID, b.BookingDate, b.Token)
				if err != nil {
					return fmt.Errorf("%w: failed to count queue: %w", ErrInternal, err)
				}
			}

			queue := domain.ComputeQueueStatus(b, ahead)
			appointments = append(appointments, Appointment{
				BookingID:            b.ID,
				VendorID:             b.VendorID,
				ServiceName:          b.ServiceName,
				BookingDate:          b.BookingDate,
				StartTime:            b.StartTime.String(),
				Token:                b.Token,
				Status:               string(b.Status),
				Position:             queue.Position,
				EstimatedWaitMinutes: queue.EstimatedWaitMinutes,
			})
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SearchAppointments: found %d upcoming bookings", len(appointments))
	return &Response{Appointments: appointments}, nil
}

// normalizePhone оставляет в номере только цифры
func normalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
