package available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	vendorRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/vendor"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

type fakeBookingRepo struct {
	booked []types.TimeString
}

func (f *fakeBookingRepo) BookedTimesForDate(context.Context, int64, time.Time) ([]types.TimeString, error) {
	return f.booked, nil
}

type fakeVendorRepo struct {
	vendor *domain.Vendor
}

func (f *fakeVendorRepo) GetByID(context.Context, int64) (*domain.Vendor, error) {
	if f.vendor == nil {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return f.vendor, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func workingVendor(start, end string) *domain.Vendor {
	return &domain.Vendor{
		ID:     1,
		IsOpen: true,
		WorkingHours: domain.WorkingHours{
			Start: types.TimeString(start),
			End:   types.TimeString(end),
		},
	}
}

func newTestUseCase(br *fakeBookingRepo, vr *fakeVendorRepo, now time.Time) *UseCase {
	uc := NewUseCase(br, vr, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecuteFullGrid(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	tomorrow := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: workingVendor("09:00", "11:00")}, now)

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: tomorrow})
	require.NoError(t, err)

	assert.True(t, resp.IsOpen)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, resp.Slots)
}

func TestExecuteExcludesBookedTimes(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	tomorrow := time.Date(2026, 9, 15, 0, 0, 0, 0, time.Local)

	br := &fakeBookingRepo{booked: []types.TimeString{"09:30", "10:30"}}
	uc := newTestUseCase(br, &fakeVendorRepo{vendor: workingVendor("09:00", "11:00")}, now)

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, resp.Slots)
}

func TestExecuteSameDayDropsPassedTimes(t *testing.T) {
	// сейчас 10:00: слоты 09:00, 09:30 и 10:00 уже недоступны
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.Local)
	today := time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: workingVendor("09:00", "12:00")}, now)

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: today})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:30", "11:00", "11:30"}, resp.Slots)
}

func TestExecuteClosedVendor(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	vendor := workingVendor("09:00", "18:00")
	vendor.IsOpen = false

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: vendor}, now)

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: now.AddDate(0, 0, 1)})
	require.NoError(t, err)

	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecutePastDate(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{vendor: workingVendor("09:00", "18:00")}, now)

	_, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: now.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteVendorNotFound(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{VendorID: 404, Date: now.AddDate(0, 0, 1)})
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestExecuteFullyBookedDay(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	tomorrow := now.AddDate(0, 0, 1)

	br := &fakeBookingRepo{booked: []types.TimeString{"09:00", "09:30"}}
	uc := newTestUseCase(br, &fakeVendorRepo{vendor: workingVendor("09:00", "10:00")}, now)

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: tomorrow})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}
