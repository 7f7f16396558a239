package metrics

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObserveNotifyEventNilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveNotifyEvent("booking-service", "booking.created", "ok")
	})
}

func TestObserveNotifyEventCounts(t *testing.T) {
	m := New("metrics-test")

	assert.NotPanics(t, func() {
		m.ObserveNotifyEvent("metrics-test", "booking.created", "ok")
		m.ObserveNotifyEvent("metrics-test", "booking.created", "error")
		m.SetDBPoolStats("metrics-test", sql.DBStats{OpenConnections: 1})
	})
}
