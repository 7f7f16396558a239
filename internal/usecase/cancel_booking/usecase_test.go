package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/notify"
	bookingRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/booking"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/ptr"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

type fakeBookingRepo struct {
	byID        *domain.Booking
	byToken     *domain.Booking
	getIDCalls  int
	tokenCalls  int
	cancelledID int64
	cancelErr   error
}

func (f *fakeBookingRepo) GetByID(context.Context, int64) (*domain.Booking, error) {
	f.getIDCalls++
	if f.byID == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.byID, nil
}

func (f *fakeBookingRepo) FindByTokenAndPhone(context.Context, int, string, *time.Time) (*domain.Booking, error) {
	f.tokenCalls++
	if f.byToken == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.byToken, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, _ time.Time) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledID = id
	return nil
}

type fakePublisher struct {
	events []notify.BookingEvent
}

func (f *fakePublisher) BookingCancelled(_ context.Context, e notify.BookingEvent) {
	e.Event = notify.EventBookingCancelled
	f.events = append(f.events, e)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeBooking(date time.Time, startTime string) *domain.Booking {
	return &domain.Booking{
		ID:            7,
		VendorID:      1,
		CustomerName:  "Анна",
		CustomerPhone: "+79001234567",
		Token:         3,
		Status:        domain.StatusBooked,
		BookingDate:   date,
		StartTime:     types.TimeString(startTime),
	}
}

func newTestUseCase(br *fakeBookingRepo, pub *fakePublisher, now time.Time) *UseCase {
	uc := NewUseCase(br, pub, fakeTxManager{}, nopLogger{},
		time.Duration(domain.DefaultLateCancelWindowHours)*time.Hour,
		domain.DefaultLateCancelFeePercent,
	)
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecuteCancelByID(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	booking := activeBooking(time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local), "15:00")

	br := &fakeBookingRepo{byID: booking}
	pub := &fakePublisher{}
	uc := newTestUseCase(br, pub, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(7))})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, int64(7), br.cancelledID)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, 0, resp.CancellationFeePercent, "next-day cancel is free")
	assert.Equal(t, now, resp.CancelledAt)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notify.EventBookingCancelled, pub.events[0].Event)
}

func TestExecuteLateCancelFee(t *testing.T) {
	// визит в 12:00, отмена в 9:00 того же дня: до начала 3 часа < окна в 4
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	booking := activeBooking(time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local), "12:00")

	uc := newTestUseCase(&fakeBookingRepo{byID: booking}, &fakePublisher{}, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLateCancelFeePercent, resp.CancellationFeePercent)
}

func TestExecuteCancelAtWindowBoundaryIsFree(t *testing.T) {
	// ровно за 4 часа до визита штрафа еще нет
	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.Local)
	booking := activeBooking(time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local), "12:00")

	uc := newTestUseCase(&fakeBookingRepo{byID: booking}, &fakePublisher{}, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CancellationFeePercent)
}

func TestExecuteBookingIDTakesPriorityOverToken(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	booking := activeBooking(time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local), "15:00")

	br := &fakeBookingRepo{byID: booking, byToken: booking}
	uc := newTestUseCase(br, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: ptr.Ptr(int64(7)),
		Token:     ptr.Ptr(3),
		Phone:     "+79001234567",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, br.getIDCalls)
	assert.Equal(t, 0, br.tokenCalls)
}

func TestExecuteCancelByTokenAndPhone(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	booking := activeBooking(time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local), "15:00")

	br := &fakeBookingRepo{byToken: booking}
	uc := newTestUseCase(br, &fakePublisher{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Token: ptr.Ptr(3),
		Phone: "+79001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 1, br.tokenCalls)
}

func TestExecuteDoubleCancel(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	booking := activeBooking(time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local), "15:00")
	booking.Status = domain.StatusCancelled

	uc := newTestUseCase(&fakeBookingRepo{byID: booking}, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(7))})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecuteCancelServedBooking(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	booking := activeBooking(time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local), "15:00")
	booking.Completed = true

	uc := newTestUseCase(&fakeBookingRepo{byID: booking}, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(7))})
	assert.ErrorIs(t, err, ErrAlreadyServed)
}

func TestExecuteNotFound(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(404))})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecuteValidation(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakePublisher{}, now)

	t.Run("empty request", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("token without phone", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Token: ptr.Ptr(3)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
