package monitoring

import (
	"sync"
	"time"

	"huddle/internal/huddle"
)

// Monitor keeps a snapshot of recent huddle activity for the health endpoint
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Copy so callers can't race with writers
	metrics := make(map[string]interface{}, len(m.metrics)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}

	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// RecordHuddle stores the headline numbers of the last successful huddle.
// A success clears any earlier failure.
func (m *Monitor) RecordHuddle(resp huddle.Response) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	m.metrics["last_huddle_date"] = resp.Date.String()
	m.metrics["last_total_reservations"] = resp.TotalReservations
	m.metrics["last_total_guests"] = resp.TotalGuests
	m.metrics["last_total_orders"] = resp.TotalOrders
	m.metrics["last_high_complexity_orders"] = resp.HighComplexityOrders
	m.metrics["last_built_at"] = time.Now().Format(time.RFC3339)

	delete(m.metrics, "last_error")
	delete(m.metrics, "last_error_at")
}

// RecordFailure stores the last build failure
func (m *Monitor) RecordFailure(err error) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	m.metrics["last_error"] = err.Error()
	m.metrics["last_error_at"] = time.Now().Format(time.RFC3339)
}
