// Package observe provides operation-level instrumentation for cells. The
// cells themselves stay dependency-free; callers that want metrics wrap a cell
// with the instrumented views in this package and attach a Recorder.
package observe

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Recorder receives the outcome of every operation performed through an
// instrumented cell view.
type Recorder interface {
	Observe(cellName, operation string, success bool)
}

var expvarSeq uint64

// ExpvarRecorder aggregates per-cell, per-operation success and error counters
// and publishes them via expvar. It serves deployments that prefer
// process-local metrics without external dependencies.
type ExpvarRecorder struct {
	name    string
	mu      sync.Mutex
	results map[string]map[string]map[string]int64
}

// ExpvarSnapshot captures a read-only view of the recorded counters, keyed by
// cell name, then operation, then status.
type ExpvarSnapshot struct {
	Results    map[string]map[string]map[string]int64 `json:"results_total"`
	RecordedAt time.Time                              `json:"recorded_at"`
}

// NewExpvarRecorder constructs an expvar-backed recorder and publishes it
// under the supplied name. When name is empty, a unique identifier is
// generated.
func NewExpvarRecorder(name string) *ExpvarRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("cell_metrics_%d", id)
	}
	rec := &ExpvarRecorder{
		name:    name,
		results: make(map[string]map[string]map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarRecorder) Name() string {
	return r.name
}

// Snapshot returns an immutable copy of the aggregated counters.
func (r *ExpvarRecorder) Snapshot() ExpvarSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make(map[string]map[string]map[string]int64, len(r.results))
	for cellName, operations := range r.results {
		ops := make(map[string]map[string]int64, len(operations))
		for operation, statusCounts := range operations {
			cpy := make(map[string]int64, len(statusCounts))
			for status, count := range statusCounts {
				cpy[status] = count
			}
			ops[operation] = cpy
		}
		results[cellName] = ops
	}

	return ExpvarSnapshot{
		Results:    results,
		RecordedAt: time.Now().UTC(),
	}
}

// Observe records an operation outcome.
func (r *ExpvarRecorder) Observe(cellName, operation string, success bool) {
	if cellName == "" || operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}

	r.mu.Lock()
	if _, ok := r.results[cellName]; !ok {
		r.results[cellName] = make(map[string]map[string]int64)
	}
	if _, ok := r.results[cellName][operation]; !ok {
		r.results[cellName][operation] = make(map[string]int64, 2)
	}
	r.results[cellName][operation][status]++
	r.mu.Unlock()
}
