package observe

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"dslcore/pkg/cell"
)

func evenOnlyValue() *cell.Value[int, int] {
	return cell.NewValue(0, cell.Identity[int](), cell.Identity[int](), cell.ValueHooks[int, int]{
		BeforeSet: func(v int) error {
			if v%2 != 0 {
				return errors.New("odd value")
			}
			return nil
		},
	})
}

func TestExpvarRecorderCountsOutcomes(t *testing.T) {
	rec := NewExpvarRecorder("")
	port := NewValue("port", rec, evenOnlyValue())

	if err := port.Set(2); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := port.Set(3); err == nil {
		t.Fatalf("expected odd write rejection")
	}
	if _, err := port.Get(); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	snap := rec.Snapshot()
	sets := snap.Results["port"]["set"]
	if sets["success"] != 1 || sets["error"] != 1 {
		t.Fatalf("unexpected set counters %v", sets)
	}
	if snap.Results["port"]["get"]["success"] != 1 {
		t.Fatalf("unexpected get counters %v", snap.Results["port"]["get"])
	}
}

func TestExpvarRecorderIgnoresUnnamedObservations(t *testing.T) {
	rec := NewExpvarRecorder("")
	rec.Observe("", "set", true)
	rec.Observe("port", "", true)
	if len(rec.Snapshot().Results) != 0 {
		t.Fatalf("expected unnamed observations discarded")
	}
}

func TestExpvarRecorderSnapshotIsACopy(t *testing.T) {
	rec := NewExpvarRecorder("")
	rec.Observe("port", "set", true)

	snap := rec.Snapshot()
	snap.Results["port"]["set"]["success"] = 99

	if rec.Snapshot().Results["port"]["set"]["success"] != 1 {
		t.Fatalf("expected snapshot mutation to leave recorder untouched")
	}
}

func TestPrometheusRecorderCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	port := NewValue("port", rec, evenOnlyValue())
	if err := port.Set(2); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := port.Set(3); err == nil {
		t.Fatalf("expected odd write rejection")
	}

	success := testutil.ToFloat64(rec.operations.WithLabelValues("port", "set", "success"))
	failure := testutil.ToFloat64(rec.operations.WithLabelValues("port", "set", "error"))
	if success != 1 || failure != 1 {
		t.Fatalf("unexpected counters success=%v error=%v", success, failure)
	}
}

func TestPrometheusRecorderRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusRecorder(reg); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := NewPrometheusRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestInstrumentedListRecordsPerOperation(t *testing.T) {
	rec := NewExpvarRecorder("")
	hosts := NewList("hosts", rec, cell.NewList([]string{"a"},
		cell.Identity[string](), cell.Identity[string](), cell.ListHooks[string, string]{}))

	if err := hosts.Append("b"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := hosts.Set(0, "c"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, err := hosts.Get(5); err == nil {
		t.Fatalf("expected out-of-range read to fail")
	}
	if _, err := hosts.RemoveAt(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := hosts.Access(); err != nil {
		t.Fatalf("access failed: %v", err)
	}
	if err := hosts.Replace([]string{"z"}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if hosts.Len() != 1 {
		t.Fatalf("unexpected length %d", hosts.Len())
	}

	ops := rec.Snapshot().Results["hosts"]
	if ops["add"]["success"] != 1 {
		t.Fatalf("unexpected add counters %v", ops["add"])
	}
	if ops["set"]["success"] != 1 {
		t.Fatalf("unexpected set counters %v", ops["set"])
	}
	if ops["get"]["error"] != 1 {
		t.Fatalf("unexpected get counters %v", ops["get"])
	}
	if ops["remove"]["success"] != 1 {
		t.Fatalf("unexpected remove counters %v", ops["remove"])
	}
	if ops["access"]["success"] != 1 {
		t.Fatalf("unexpected access counters %v", ops["access"])
	}
	if ops["replace"]["success"] != 1 {
		t.Fatalf("unexpected replace counters %v", ops["replace"])
	}
}
