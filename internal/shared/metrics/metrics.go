package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	interviewStartedTotal   atomic.Uint64
	interviewCompletedTotal atomic.Uint64
	answersRecordedTotal    atomic.Uint64
	rebuildTotal            atomic.Uint64

	rebuildDuration = newHistogram([]float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25})
)

// IncInterviewStarted increments the started counter.
func IncInterviewStarted() {
	interviewStartedTotal.Add(1)
}

// IncInterviewCompleted increments the completed counter.
func IncInterviewCompleted() {
	interviewCompletedTotal.Add(1)
}

// IncAnswersRecorded increments the recorded-answers counter.
func IncAnswersRecorded() {
	answersRecordedTotal.Add(1)
}

// IncRebuild increments the recommendation-rebuild counter.
func IncRebuild() {
	rebuildTotal.Add(1)
}

// ObserveRebuildDurationMs records a recommendation rebuild duration in
// milliseconds.
func ObserveRebuildDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	rebuildDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "interview_started_total", "Total interviews started", interviewStartedTotal.Load())
	writeCounter(&buf, "interview_completed_total", "Total interviews completed", interviewCompletedTotal.Load())
	writeCounter(&buf, "interview_answers_recorded_total", "Total answers recorded", answersRecordedTotal.Load())
	writeCounter(&buf, "recommendation_rebuild_total", "Total recommendation rebuilds", rebuildTotal.Load())
	writeHistogram(&buf, "recommendation_rebuild_duration_ms", "Recommendation rebuild duration in milliseconds", rebuildDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
