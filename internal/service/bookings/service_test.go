package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/notify"
	bookingRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/booking"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings/models"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	tokenInUse     bool
	updatedToken   int
	updatedMinutes int
	completedSet   *bool
	rescheduledTo  time.Time
	ahead          int
	aheadCalls     int
}

func (f *fakeBookingRepo) GetByID(context.Context, int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByVendorWithFilter(_ context.Context, _ domain.VendorBookingsFilter) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) CountByVendorWithFilter(context.Context, domain.VendorBookingsFilter) (int, error) {
	if f.booking == nil {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeBookingRepo) SetCompleted(_ context.Context, _ int64, completed bool, completedBy *string) error {
	f.completedSet = &completed
	f.booking.Completed = completed
	if completed {
		f.booking.Status = domain.StatusDone
	} else {
		f.booking.Status = domain.StatusBooked
	}
	f.booking.CompletedBy = completedBy
	return nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, _ int64, newDate time.Time, newTime types.TimeString) error {
	f.rescheduledTo = newDate
	f.booking.BookingDate = newDate
	f.booking.StartTime = newTime
	return nil
}

func (f *fakeBookingRepo) UpdateToken(_ context.Context, _ int64, token int) error {
	f.updatedToken = token
	return nil
}

func (f *fakeBookingRepo) UpdateWaitTime(_ context.Context, _ int64, minutes int) error {
	f.updatedMinutes = minutes
	return nil
}

func (f *fakeBookingRepo) TokenInUse(context.Context, int64, time.Time, int, int64) (bool, error) {
	return f.tokenInUse, nil
}

func (f *fakeBookingRepo) MaxTokenForDate(context.Context, int64, time.Time) (int, error) {
	return 9, nil
}

func (f *fakeBookingRepo) CountAhead(context.Context, int64, time.Time, int) (int, error) {
	f.aheadCalls++
	return f.ahead, nil
}

type fakeVendorRepo struct {
	nextTokenCalls int
	raisedToToken  int
}

func (f *fakeVendorRepo) NextToken(_ context.Context, _ int64, _ time.Time, floor int) (int, error) {
	f.nextTokenCalls++
	return floor + 1, nil
}

func (f *fakeVendorRepo) RaiseTokenCounter(_ context.Context, _ int64, _ time.Time, token int) error {
	f.raisedToToken = token
	return nil
}

type fakePublisher struct {
	events []notify.BookingEvent
}

func (f *fakePublisher) BookingRescheduled(_ context.Context, e notify.BookingEvent) {
	e.Event = notify.EventBookingRescheduled
	f.events = append(f.events, e)
}

func (f *fakePublisher) QueuePositionNotified(_ context.Context, e notify.BookingEvent) {
	e.Event = notify.EventQueuePosition
	f.events = append(f.events, e)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func vendorBooking() *domain.Booking {
	return &domain.Booking{
		ID:          7,
		VendorID:    1,
		Token:       3,
		Status:      domain.StatusBooked,
		BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local),
		StartTime:   types.TimeString("10:00"),
	}
}

func newTestService(br *fakeBookingRepo, vr *fakeVendorRepo, pub *fakePublisher, reassign bool) *Service {
	svc := NewService(br, vr, pub, fakeTxManager{}, nopLogger{}, reassign)
	svc.now = func() time.Time { return time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local) }
	return svc
}

func TestGetByIDOwnership(t *testing.T) {
	br := &fakeBookingRepo{booking: vendorBooking()}
	svc := newTestService(br, &fakeVendorRepo{}, &fakePublisher{}, false)

	t.Run("owner sees booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 7, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
	})

	t.Run("foreign vendor is rejected", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 7, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		empty := &fakeBookingRepo{}
		svc := newTestService(empty, &fakeVendorRepo{}, &fakePublisher{}, false)
		_, err := svc.GetByID(context.Background(), 404, 1)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestListInvalidStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{booking: vendorBooking()}, &fakeVendorRepo{}, &fakePublisher{}, false)

	badStatus := "unknown"
	_, err := svc.List(context.Background(), &models.ListBookingsRequest{VendorID: 1, Status: &badStatus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetCompleted(t *testing.T) {
	t.Run("mark served", func(t *testing.T) {
		br := &fakeBookingRepo{booking: vendorBooking()}
		svc := newTestService(br, &fakeVendorRepo{}, &fakePublisher{}, false)

		resp, err := svc.SetCompleted(context.Background(), 7, &models.SetCompletedRequest{
			VendorID:    1,
			Completed:   true,
			CompletedBy: "master Ivan",
		})
		require.NoError(t, err)
		assert.True(t, resp.Completed)
		assert.Equal(t, string(domain.StatusDone), resp.Status)
		require.NotNil(t, resp.CompletedBy)
		assert.Equal(t, "master Ivan", *resp.CompletedBy)
	})

	t.Run("undo completion", func(t *testing.T) {
		b := vendorBooking()
		b.Completed = true
		b.Status = domain.StatusDone
		br := &fakeBookingRepo{booking: b}
		svc := newTestService(br, &fakeVendorRepo{}, &fakePublisher{}, false)

		resp, err := svc.SetCompleted(context.Background(), 7, &models.SetCompletedRequest{VendorID: 1, Completed: false})
		require.NoError(t, err)
		assert.False(t, resp.Completed)
		assert.Equal(t, string(domain.StatusBooked), resp.Status)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		b := vendorBooking()
		b.Status = domain.StatusCancelled
		svc := newTestService(&fakeBookingRepo{booking: b}, &fakeVendorRepo{}, &fakePublisher{}, false)

		_, err := svc.SetCompleted(context.Background(), 7, &models.SetCompletedRequest{VendorID: 1, Completed: true})
		assert.ErrorIs(t, err, ErrBookingCancelled)
	})
}

func TestRescheduleKeepsToken(t *testing.T) {
	br := &fakeBookingRepo{booking: vendorBooking()}
	vr := &fakeVendorRepo{}
	pub := &fakePublisher{}
	svc := newTestService(br, vr, pub, false)

	resp, err := svc.Reschedule(context.Background(), 7, &models.RescheduleRequest{
		VendorID:  1,
		Date:      "2026-09-20",
		StartTime: "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Token, "token survives reschedule by default")
	assert.Equal(t, 0, vr.nextTokenCalls)
	assert.Equal(t, "2026-09-20", resp.BookingDate)
	assert.Equal(t, "14:00", resp.StartTime)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notify.EventBookingRescheduled, pub.events[0].Event)
}

func TestRescheduleReassignsTokenWhenConfigured(t *testing.T) {
	br := &fakeBookingRepo{booking: vendorBooking()}
	vr := &fakeVendorRepo{}
	svc := newTestService(br, vr, &fakePublisher{}, true)

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleRequest{
		VendorID:  1,
		Date:      "2026-09-20",
		StartTime: "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, vr.nextTokenCalls)
	assert.Equal(t, 10, br.updatedToken, "next token after the new date's max")
}

func TestRescheduleSameDateKeepsTokenEvenWhenConfigured(t *testing.T) {
	br := &fakeBookingRepo{booking: vendorBooking()}
	vr := &fakeVendorRepo{}
	svc := newTestService(br, vr, &fakePublisher{}, true)

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleRequest{
		VendorID:  1,
		Date:      "2026-09-15",
		StartTime: "16:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, vr.nextTokenCalls)
}

func TestRescheduleIntoPast(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{booking: vendorBooking()}, &fakeVendorRepo{}, &fakePublisher{}, false)

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleRequest{
		VendorID:  1,
		Date:      "2026-09-13",
		StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRescheduleCancelledBooking(t *testing.T) {
	b := vendorBooking()
	b.Status = domain.StatusCancelled
	svc := newTestService(&fakeBookingRepo{booking: b}, &fakeVendorRepo{}, &fakePublisher{}, false)

	_, err := svc.Reschedule(context.Background(), 7, &models.RescheduleRequest{
		VendorID:  1,
		Date:      "2026-09-20",
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestEditToken(t *testing.T) {
	t.Run("assigns free token and raises counter", func(t *testing.T) {
		br := &fakeBookingRepo{booking: vendorBooking()}
		vr := &fakeVendorRepo{}
		svc := newTestService(br, vr, &fakePublisher{}, false)

		resp, err := svc.EditToken(context.Background(), 7, &models.EditTokenRequest{VendorID: 1, Token: 12})
		require.NoError(t, err)

		assert.Equal(t, 12, resp.Token)
		assert.Equal(t, 12, br.updatedToken)
		assert.Equal(t, 12, vr.raisedToToken)
	})

	t.Run("occupied token is rejected", func(t *testing.T) {
		br := &fakeBookingRepo{booking: vendorBooking(), tokenInUse: true}
		svc := newTestService(br, &fakeVendorRepo{}, &fakePublisher{}, false)

		_, err := svc.EditToken(context.Background(), 7, &models.EditTokenRequest{VendorID: 1, Token: 5})
		assert.ErrorIs(t, err, ErrTokenInUse)
	})

	t.Run("token below minimum", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: vendorBooking()}, &fakeVendorRepo{}, &fakePublisher{}, false)

		_, err := svc.EditToken(context.Background(), 7, &models.EditTokenRequest{VendorID: 1, Token: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign vendor", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: vendorBooking()}, &fakeVendorRepo{}, &fakePublisher{}, false)

		_, err := svc.EditToken(context.Background(), 7, &models.EditTokenRequest{VendorID: 99, Token: 12})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestNotifyPosition(t *testing.T) {
	t.Run("publishes current position", func(t *testing.T) {
		br := &fakeBookingRepo{booking: vendorBooking(), ahead: 2}
		pub := &fakePublisher{}
		svc := newTestService(br, &fakeVendorRepo{}, pub, false)

		resp, err := svc.NotifyPosition(context.Background(), 7, 1)
		require.NoError(t, err)

		assert.Equal(t, 3, resp.Position)
		assert.Equal(t, 2, resp.BookingsAhead)
		assert.Equal(t, 2*domain.DefaultWaitMinutes, resp.EstimatedWaitMinutes)

		require.Len(t, pub.events, 1)
		assert.Equal(t, notify.EventQueuePosition, pub.events[0].Event)
		assert.Equal(t, 3, pub.events[0].Position)
	})

	t.Run("cancelled booking", func(t *testing.T) {
		b := vendorBooking()
		b.Status = domain.StatusCancelled
		svc := newTestService(&fakeBookingRepo{booking: b}, &fakeVendorRepo{}, &fakePublisher{}, false)

		_, err := svc.NotifyPosition(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrBookingCancelled)
	})

	t.Run("served booking", func(t *testing.T) {
		b := vendorBooking()
		b.Completed = true
		br := &fakeBookingRepo{booking: b}
		svc := newTestService(br, &fakeVendorRepo{}, &fakePublisher{}, false)

		_, err := svc.NotifyPosition(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrNotInQueue)
		assert.Equal(t, 0, br.aheadCalls)
	})

	t.Run("foreign vendor", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: vendorBooking()}, &fakeVendorRepo{}, &fakePublisher{}, false)

		_, err := svc.NotifyPosition(context.Background(), 7, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestEditWaitTime(t *testing.T) {
	t.Run("updates estimate", func(t *testing.T) {
		br := &fakeBookingRepo{booking: vendorBooking()}
		svc := newTestService(br, &fakeVendorRepo{}, &fakePublisher{}, false)

		resp, err := svc.EditWaitTime(context.Background(), 7, &models.EditWaitTimeRequest{VendorID: 1, Minutes: 25})
		require.NoError(t, err)
		assert.Equal(t, 25, resp.EstimatedWaitMinutes)
		assert.Equal(t, 25, br.updatedMinutes)
	})

	t.Run("non-positive minutes", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{booking: vendorBooking()}, &fakeVendorRepo{}, &fakePublisher{}, false)

		_, err := svc.EditWaitTime(context.Background(), 7, &models.EditWaitTimeRequest{VendorID: 1, Minutes: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
