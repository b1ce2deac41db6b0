package shared

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RunMetrics tracks the outcome of a single scrape run: API request
// success/failure counts, parse rejections, and skipped valuations. The
// pipeline logs one summary line from it at the end of the run.
type RunMetrics struct {
	searchID           string
	totalRequests      int64
	successfulRequests int64
	failedRequests     int64
	rejectedSlices     int64
	skippedOffers      int64
	totalRequestTime   time.Duration
	startedAt          time.Time
	mutex              sync.Mutex
}

// NewRunMetrics creates a metrics tracker for one pipeline run
func NewRunMetrics(searchID string) *RunMetrics {
	return &RunMetrics{
		searchID:  searchID,
		startedAt: time.Now(),
	}
}

// RecordRequest records an API request with its success status and duration
func (m *RunMetrics) RecordRequest(success bool, requestTime time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalRequests++
	m.totalRequestTime += requestTime
	if success {
		m.successfulRequests++
	} else {
		m.failedRequests++
	}
}

// RecordRejectedSlice records an itinerary group rejected during parsing
func (m *RunMetrics) RecordRejectedSlice() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.rejectedSlices++
}

// RecordSkippedOffer records a matched itinerary skipped during valuation
func (m *RunMetrics) RecordSkippedOffer() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.skippedOffers++
}

// SuccessRate returns the API request success rate as a percentage
func (m *RunMetrics) SuccessRate() float64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.totalRequests == 0 {
		return 0.0
	}
	return float64(m.successfulRequests) / float64(m.totalRequests) * 100
}

// LogSummary logs a summary of the run metrics
func (m *RunMetrics) LogSummary() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"component":           "RunMetrics",
		"search_id":           m.searchID,
		"total_requests":      m.totalRequests,
		"successful_requests": m.successfulRequests,
		"failed_requests":     m.failedRequests,
		"rejected_slices":     m.rejectedSlices,
		"skipped_offers":      m.skippedOffers,
		"total_request_time":  m.totalRequestTime,
		"run_duration":        time.Since(m.startedAt),
	}).Info("Run metrics summary")
}
