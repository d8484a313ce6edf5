package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for outbound API calls.
type Metrics struct {
	mu        sync.Mutex
	callCount map[string]int64
	failCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		callCount: make(map[string]int64),
		failCount: make(map[string]int64),
	}
}

// RecordCall increments the counter for a completed request/response pair.
func (m *Metrics) RecordCall(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + "|" + path + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount[key]++
}

// RecordFailure increments the counter for calls that never produced a
// response (network errors, encode failures).
func (m *Metrics) RecordFailure(method, path, kind string) {
	if m == nil {
		return
	}
	key := method + "|" + path + "|" + kind
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCount[key]++
}

// Snapshot copies the current counters, for diagnostics output.
func (m *Metrics) Snapshot() (calls, failures map[string]int64) {
	if m == nil {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	calls = make(map[string]int64, len(m.callCount))
	for k, v := range m.callCount {
		calls[k] = v
	}
	failures = make(map[string]int64, len(m.failCount))
	for k, v := range m.failCount {
		failures[k] = v
	}
	return calls, failures
}
