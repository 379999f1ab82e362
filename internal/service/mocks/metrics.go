package mocks

import (
	"sync"
	"time"
)

// RecordingMetrics captures what the service reports.
type RecordingMetrics struct {
	mu                      sync.Mutex
	Computations            map[string]int
	Errors                  map[string]int
	RecordsNormalized       int
	RatersNeedingAdjustment map[string]int
}

func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Computations:            make(map[string]int),
		Errors:                  make(map[string]int),
		RatersNeedingAdjustment: make(map[string]int),
	}
}

func (m *RecordingMetrics) ObserveComputation(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Computations[operation]++
}

func (m *RecordingMetrics) AddRecordsNormalized(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsNormalized += n
}

func (m *RecordingMetrics) SetRatersNeedingAdjustment(period string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RatersNeedingAdjustment[period] = n
}

func (m *RecordingMetrics) RecordError(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation]++
}
