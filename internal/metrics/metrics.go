package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	appendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logmirror",
			Subsystem: "sink",
			Name:      "appends_total",
			Help:      "Total number of messages appended per sink.",
		},
		[]string{"sink"},
	)
	appendFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logmirror",
			Subsystem: "sink",
			Name:      "append_failures_total",
			Help:      "Total number of failed appends per sink.",
		},
		[]string{"sink"},
	)
	readbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logmirror",
			Subsystem: "sink",
			Name:      "readback_messages_total",
			Help:      "Total number of messages read back during verification per sink.",
		},
		[]string{"sink"},
	)
	verifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logmirror",
			Name:      "verify_total",
			Help:      "Total number of sink verifications by result (match or mismatch).",
		},
		[]string{"sink", "result"},
	)
	appendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "logmirror",
			Subsystem: "sink",
			Name:      "append_duration_seconds",
			Help:      "Duration of single append operations in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"sink"},
	)
)

// Register registers logmirror metrics to the provided Prometheus registerer.
// Safe to call multiple times; AlreadyRegistered is ignored.
func Register(r prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		appendsTotal, appendFailuresTotal, readbackTotal, verifyTotal, appendDuration,
	}
	for _, c := range collectors {
		if err := r.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// AppendObserve records one append attempt with its duration and outcome.
func AppendObserve(sink string, dur time.Duration, success bool) {
	if sink == "" {
		sink = "unknown"
	}
	appendDuration.WithLabelValues(sink).Observe(dur.Seconds())
	if success {
		appendsTotal.WithLabelValues(sink).Inc()
	} else {
		appendFailuresTotal.WithLabelValues(sink).Inc()
	}
}

// AddReadback adds n to the read-back counter for a sink.
func AddReadback(sink string, n int) {
	if sink == "" {
		sink = "unknown"
	}
	if n > 0 {
		readbackTotal.WithLabelValues(sink).Add(float64(n))
	}
}

// VerifyObserve records the outcome of one sink verification.
func VerifyObserve(sink string, match bool) {
	if sink == "" {
		sink = "unknown"
	}
	result := "match"
	if !match {
		result = "mismatch"
	}
	verifyTotal.WithLabelValues(sink, result).Inc()
}
