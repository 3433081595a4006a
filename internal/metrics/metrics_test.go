package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// getCounter returns the value of a labelled counter from gathered families.
func getCounter(mfs []*dto.MetricFamily, name string, labels map[string]string) float64 {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			matched := true
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					matched = false
					break
				}
			}
			if matched {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestRegisterAndCounters(t *testing.T) {
	reg := prometheus.NewRegistry()

	// First registration should succeed
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	// Second registration should be idempotent (ignore AlreadyRegistered)
	if err := Register(reg); err != nil {
		t.Fatalf("Register (second) failed: %v", err)
	}

	// Capture baseline values (collectors are globals; use deltas for assertions)
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	baseAppends := getCounter(mfs, "logmirror_sink_appends_total", map[string]string{"sink": "memory"})
	baseFailures := getCounter(mfs, "logmirror_sink_append_failures_total", map[string]string{"sink": "memory"})
	baseReadback := getCounter(mfs, "logmirror_sink_readback_messages_total", map[string]string{"sink": "memory"})
	baseMatch := getCounter(mfs, "logmirror_verify_total", map[string]string{"sink": "memory", "result": "match"})

	AppendObserve("memory", time.Millisecond, true)
	AppendObserve("memory", time.Millisecond, true)
	AppendObserve("memory", time.Millisecond, false)
	AddReadback("memory", 3)
	AddReadback("memory", 0) // no-op
	VerifyObserve("memory", true)

	mfs, err = reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if got := getCounter(mfs, "logmirror_sink_appends_total", map[string]string{"sink": "memory"}) - baseAppends; got != 2 {
		t.Fatalf("appends delta = %v, want 2", got)
	}
	if got := getCounter(mfs, "logmirror_sink_append_failures_total", map[string]string{"sink": "memory"}) - baseFailures; got != 1 {
		t.Fatalf("failures delta = %v, want 1", got)
	}
	if got := getCounter(mfs, "logmirror_sink_readback_messages_total", map[string]string{"sink": "memory"}) - baseReadback; got != 3 {
		t.Fatalf("readback delta = %v, want 3", got)
	}
	if got := getCounter(mfs, "logmirror_verify_total", map[string]string{"sink": "memory", "result": "match"}) - baseMatch; got != 1 {
		t.Fatalf("verify match delta = %v, want 1", got)
	}
}

func TestUnknownSinkLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	base := func() float64 {
		mfs, err := reg.Gather()
		if err != nil {
			t.Fatalf("gather failed: %v", err)
		}
		return getCounter(mfs, "logmirror_sink_appends_total", map[string]string{"sink": "unknown"})
	}
	before := base()
	AppendObserve("", time.Millisecond, true)
	if got := base() - before; got != 1 {
		t.Fatalf("unknown-sink delta = %v, want 1", got)
	}
}
