package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/notify"
	bookingRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/booking"
	vendorRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/vendor"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/txmanager"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

// --- фейки контрактов ---

type fakeBookingRepo struct {
	maxToken   int
	countAhead int
	created    *domain.Booking

	// createConflicts имитирует проигрыш гонки за талон: первые N вставок
	// падают с 23505, конкурентная бронь при этом становится видимой
	createConflicts int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createConflicts > 0 {
		f.createConflicts--
		f.maxToken++
		return nil, fmt.Errorf("%w: Create - execute insert: %w",
			bookingRepo.ErrTokenTaken, &pq.Error{Code: "23505"})
	}

	created := *b
	created.ID = 101
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) MaxTokenForDate(context.Context, int64, time.Time) (int, error) {
	return f.maxToken, nil
}

func (f *fakeBookingRepo) CountAhead(context.Context, int64, time.Time, int) (int, error) {
	return f.countAhead, nil
}

type fakeVendorRepo struct {
	vendor    *domain.Vendor
	getErr    error
	nextToken int
	floorSeen int
}

func (f *fakeVendorRepo) GetByID(context.Context, int64) (*domain.Vendor, error) {
	return f.vendor, f.getErr
}

func (f *fakeVendorRepo) GetByIDForUpdate(context.Context, int64) (*domain.Vendor, error) {
	return f.vendor, f.getErr
}

func (f *fakeVendorRepo) NextToken(_ context.Context, _ int64, _ time.Time, floor int) (int, error) {
	f.floorSeen = floor
	if f.nextToken > floor {
		return f.nextToken, nil
	}
	return floor + 1, nil
}

type fakePublisher struct {
	events []notify.BookingEvent
}

func (f *fakePublisher) BookingCreated(_ context.Context, e notify.BookingEvent) {
	e.Event = notify.EventBookingCreated
	f.events = append(f.events, e)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// retryingTxManager повторяет fn по тем же правилам, что и настоящий
// менеджер транзакций
type retryingTxManager struct {
	attempts int
}

func (m *retryingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < 3; i++ {
		m.attempts++
		err = fn(ctx)
		if err == nil || !txmanager.IsRetryable(err) {
			return err
		}
	}
	return err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- хелперы ---

func openVendor() *domain.Vendor {
	return &domain.Vendor{
		ID:     1,
		Name:   "Уют",
		IsOpen: true,
		Services: []domain.VendorService{
			{Name: "Haircut", DurationMinutes: 30, Price: 500},
		},
	}
}

func validRequest(date time.Time) *Request {
	return &Request{
		VendorID:      1,
		CustomerName:  "Анна",
		CustomerPhone: "+79001234567",
		ServiceName:   "Haircut",
		Date:          date,
		StartTime:     types.TimeString("12:00"),
	}
}

func newTestUseCase(br *fakeBookingRepo, vr *fakeVendorRepo, pub *fakePublisher, now time.Time) *UseCase {
	uc := NewUseCase(br, vr, pub, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

// --- тесты ---

func TestExecuteAssignsTokenAndQueuePosition(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	tomorrow := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)

	br := &fakeBookingRepo{maxToken: 4, countAhead: 3}
	vr := &fakeVendorRepo{vendor: openVendor()}
	pub := &fakePublisher{}
	uc := newTestUseCase(br, vr, pub, now)

	resp, err := uc.Execute(context.Background(), validRequest(tomorrow))
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, 5, resp.Token, "token must exceed the date's max issued token")
	assert.Equal(t, 4, vr.floorSeen)
	assert.Equal(t, 4, resp.QueuePosition)
	assert.Equal(t, 3, resp.BookingsAhead)
	assert.Equal(t, 3*domain.DefaultWaitMinutes, resp.EstimatedWaitMinutes)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notify.EventBookingCreated, pub.events[0].Event)
	assert.Equal(t, int64(101), pub.events[0].BookingID)
}

func TestExecuteLostTokenRaceIsRetriedToNextToken(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	tomorrow := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)

	br := &fakeBookingRepo{maxToken: 0, createConflicts: 1}
	vr := &fakeVendorRepo{vendor: openVendor()}
	tx := &retryingTxManager{}

	uc := NewUseCase(br, vr, &fakePublisher{}, tx, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), validRequest(tomorrow))
	require.NoError(t, err)

	assert.Equal(t, 2, tx.attempts, "losing transaction is rerun, not surfaced")
	assert.Equal(t, 2, resp.Token, "retry allocates the next free token")
	assert.Equal(t, 1, vr.floorSeen)
}

func TestExecuteFirstBookingOfDay(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	tomorrow := now.AddDate(0, 0, 1)

	br := &fakeBookingRepo{maxToken: 0, countAhead: 0}
	vr := &fakeVendorRepo{vendor: openVendor()}
	uc := newTestUseCase(br, vr, &fakePublisher{}, now)

	resp, err := uc.Execute(context.Background(), validRequest(tomorrow))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Token)
	assert.Equal(t, 1, resp.QueuePosition)
	assert.Equal(t, 0, resp.BookingsAhead)
}

func TestExecuteClosedVendor(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	vendor := openVendor()
	vendor.IsOpen = false

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: vendor}, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), validRequest(now.AddDate(0, 0, 1)))
	assert.ErrorIs(t, err, ErrVendorClosed)
}

func TestExecuteVendorNotFound(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	vr := &fakeVendorRepo{getErr: vendorRepo.ErrVendorNotFound}

	uc := newTestUseCase(&fakeBookingRepo{}, vr, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), validRequest(now.AddDate(0, 0, 1)))
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestExecuteUnknownService(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: openVendor()}, &fakePublisher{}, now)

	req := validRequest(now.AddDate(0, 0, 1))
	req.ServiceName = "Massage"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecutePastDate(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: openVendor()}, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), validRequest(now.AddDate(0, 0, -1)))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteSameDayPastTime(t *testing.T) {
	now := time.Date(2026, 9, 14, 13, 0, 0, 0, time.Local)
	today := time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: openVendor()}, &fakePublisher{}, now)

	req := validRequest(today)
	req.StartTime = types.TimeString("12:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteSameDayFutureTimeAllowed(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	today := time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local)

	br := &fakeBookingRepo{}
	uc := newTestUseCase(br, &fakeVendorRepo{vendor: openVendor()}, &fakePublisher{}, now)

	req := validRequest(today)
	req.StartTime = types.TimeString("12:00")

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, br.created)
	assert.Equal(t, domain.DefaultWaitMinutes, br.created.EstimatedWaitMinutes)
}

func TestExecuteValidation(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	tomorrow := now.AddDate(0, 0, 1)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: openVendor()}, &fakePublisher{}, now)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty name", func(r *Request) { r.CustomerName = "" }},
		{"empty phone", func(r *Request) { r.CustomerPhone = "" }},
		{"short phone", func(r *Request) { r.CustomerPhone = "+7900123" }},
		{"letters in phone", func(r *Request) { r.CustomerPhone = "+7900abc4567" }},
		{"empty service", func(r *Request) { r.ServiceName = "" }},
		{"empty time", func(r *Request) { r.StartTime = "" }},
		{"bad time", func(r *Request) { r.StartTime = "25:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(tomorrow)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
