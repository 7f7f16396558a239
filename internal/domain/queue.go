package domain

import "time"

// QueueStatus is the derived queue position of a booking. It is recomputed
// on every read and never stored.
type QueueStatus struct {
	// Position is nil for bookings that are not waiting in the queue
	// (cancelled, done or completed).
	Position             *int
	BookingsAhead        int
	EstimatedWaitMinutes int
}

// ComputeQueueStatus derives the queue status from a booking and the number
// of active bookings holding a strictly lower token for the same vendor and
// date. Wait time scales with the booking's own per-visit estimate.
func ComputeQueueStatus(b *Booking, bookingsAhead int) QueueStatus {
	if !b.InQueue() {
		return QueueStatus{Position: nil, BookingsAhead: 0, EstimatedWaitMinutes: 0}
	}

	position := bookingsAhead + 1
	return QueueStatus{
		Position:             &position,
		BookingsAhead:        bookingsAhead,
		EstimatedWaitMinutes: bookingsAhead * b.WaitPerVisit(),
	}
}

// CancellationFeePercent returns the advisory fee for cancelling at `now`
// an appointment scheduled at `appointmentAt`. Cancellations closer than
// the window pay the late fee; everything else is free. No money is
// captured, the percentage is informational.
func CancellationFeePercent(appointmentAt, now time.Time, window time.Duration, latePercent int) int {
	if appointmentAt.Sub(now) < window {
		return latePercent
	}
	return 0
}
