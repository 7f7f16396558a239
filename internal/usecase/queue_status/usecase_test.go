package queue_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	bookingRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/booking"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/ptr"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

type fakeBookingRepo struct {
	byID        *domain.Booking
	byToken     *domain.Booking
	byEmail     *domain.Booking
	ahead       int
	aheadCalls  int
	emailSeen   string
	tokenSeen   int
}

func (f *fakeBookingRepo) GetByID(context.Context, int64) (*domain.Booking, error) {
	if f.byID == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.byID, nil
}

func (f *fakeBookingRepo) FindByTokenAndPhone(_ context.Context, token int, _ string, _ *time.Time) (*domain.Booking, error) {
	f.tokenSeen = token
	if f.byToken == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.byToken, nil
}

func (f *fakeBookingRepo) LatestByEmail(_ context.Context, email string) (*domain.Booking, error) {
	f.emailSeen = email
	if f.byEmail == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.byEmail, nil
}

func (f *fakeBookingRepo) CountAhead(context.Context, int64, time.Time, int) (int, error) {
	f.aheadCalls++
	return f.ahead, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func queuedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          10,
		VendorID:    2,
		Token:       5,
		Status:      domain.StatusBooked,
		BookingDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local),
		StartTime:   types.TimeString("11:00"),
	}
}

func TestExecuteByID(t *testing.T) {
	br := &fakeBookingRepo{byID: queuedBooking(), ahead: 2}
	uc := NewUseCase(br, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(10))})
	require.NoError(t, err)

	require.NotNil(t, resp.Position)
	assert.Equal(t, 3, *resp.Position)
	assert.Equal(t, 2, resp.BookingsAhead)
	assert.Equal(t, 2*domain.DefaultWaitMinutes, resp.EstimatedWaitMinutes)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
}

func TestExecuteByTokenAndPhone(t *testing.T) {
	br := &fakeBookingRepo{byToken: queuedBooking(), ahead: 0}
	uc := NewUseCase(br, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Token: ptr.Ptr(5),
		Phone: "+79001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, br.tokenSeen)
	require.NotNil(t, resp.Position)
	assert.Equal(t, 1, *resp.Position)
}

func TestExecuteByEmail(t *testing.T) {
	br := &fakeBookingRepo{byEmail: queuedBooking(), ahead: 1}
	uc := NewUseCase(br, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Email: "anna@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", br.emailSeen)
	require.NotNil(t, resp.Position)
	assert.Equal(t, 2, *resp.Position)
}

func TestExecuteCancelledBookingHasNoPosition(t *testing.T) {
	b := queuedBooking()
	b.Status = domain.StatusCancelled

	br := &fakeBookingRepo{byID: b, ahead: 4}
	uc := NewUseCase(br, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(10))})
	require.NoError(t, err)

	assert.Nil(t, resp.Position)
	assert.Equal(t, 0, resp.BookingsAhead)
	assert.Equal(t, 0, resp.EstimatedWaitMinutes)
	assert.Equal(t, 0, br.aheadCalls, "queue is not counted for inactive bookings")
}

func TestExecuteCompletedBookingHasNoPosition(t *testing.T) {
	b := queuedBooking()
	b.Completed = true

	br := &fakeBookingRepo{byID: b}
	uc := NewUseCase(br, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(10))})
	require.NoError(t, err)
	assert.Nil(t, resp.Position)
	assert.True(t, resp.Completed)
}

func TestExecuteNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: ptr.Ptr(int64(404))})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	t.Run("no lookup keys", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("token without phone", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Token: ptr.Ptr(5)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
