package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQueueStatus(t *testing.T) {
	t.Run("first in queue", func(t *testing.T) {
		b := &Booking{Status: StatusBooked, Token: 1}

		qs := ComputeQueueStatus(b, 0)

		require.NotNil(t, qs.Position)
		assert.Equal(t, 1, *qs.Position)
		assert.Equal(t, 0, qs.BookingsAhead)
		assert.Equal(t, 0, qs.EstimatedWaitMinutes)
	})

	t.Run("wait scales with bookings ahead", func(t *testing.T) {
		b := &Booking{Status: StatusBooked, Token: 5}

		qs := ComputeQueueStatus(b, 4)

		require.NotNil(t, qs.Position)
		assert.Equal(t, 5, *qs.Position)
		assert.Equal(t, 4, qs.BookingsAhead)
		assert.Equal(t, 4*DefaultWaitMinutes, qs.EstimatedWaitMinutes)
	})

	t.Run("vendor-tuned wait estimate", func(t *testing.T) {
		b := &Booking{Status: StatusBooked, Token: 3, EstimatedWaitMinutes: 20}

		qs := ComputeQueueStatus(b, 2)

		assert.Equal(t, 40, qs.EstimatedWaitMinutes)
	})

	t.Run("cancelled booking has no position", func(t *testing.T) {
		b := &Booking{Status: StatusCancelled, Token: 2}

		qs := ComputeQueueStatus(b, 1)

		assert.Nil(t, qs.Position)
		assert.Equal(t, 0, qs.BookingsAhead)
		assert.Equal(t, 0, qs.EstimatedWaitMinutes)
	})

	t.Run("completed booking has no position", func(t *testing.T) {
		b := &Booking{Status: StatusBooked, Completed: true, Token: 2}

		qs := ComputeQueueStatus(b, 1)

		assert.Nil(t, qs.Position)
	})

	t.Run("done booking has no position", func(t *testing.T) {
		b := &Booking{Status: StatusDone, Token: 2}

		qs := ComputeQueueStatus(b, 1)

		assert.Nil(t, qs.Position)
	})
}

func TestCancellationFeePercent(t *testing.T) {
	window := 4 * time.Hour
	appointment := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{
			name: "well before window",
			now:  appointment.Add(-24 * time.Hour),
			want: 0,
		},
		{
			name: "exactly at window boundary",
			now:  appointment.Add(-4 * time.Hour),
			want: 0,
		},
		{
			name: "just inside window",
			now:  appointment.Add(-4*time.Hour + time.Minute),
			want: 30,
		},
		{
			name: "one hour before",
			now:  appointment.Add(-time.Hour),
			want: 30,
		},
		{
			name: "after appointment start",
			now:  appointment.Add(time.Hour),
			want: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CancellationFeePercent(appointment, tt.now, window, 30)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingStateHelpers(t *testing.T) {
	t.Run("booked and not completed is in queue", func(t *testing.T) {
		b := &Booking{Status: StatusBooked}
		assert.True(t, b.InQueue())
		assert.True(t, b.IsActive())
		assert.False(t, b.IsServed())
	})

	t.Run("completed flag removes from queue", func(t *testing.T) {
		b := &Booking{Status: StatusBooked, Completed: true}
		assert.False(t, b.InQueue())
		assert.True(t, b.IsServed())
		assert.True(t, b.IsActive())
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		b := &Booking{Status: StatusCancelled}
		assert.True(t, b.IsCancelled())
		assert.False(t, b.InQueue())
		assert.False(t, b.IsActive())
	})

	t.Run("wait per visit falls back to default", func(t *testing.T) {
		b := &Booking{}
		assert.Equal(t, DefaultWaitMinutes, b.WaitPerVisit())

		b.EstimatedWaitMinutes = 25
		assert.Equal(t, 25, b.WaitPerVisit())
	})
}
