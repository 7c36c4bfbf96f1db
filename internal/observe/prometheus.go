package observe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports operation counters through a Prometheus
// CounterVec labelled by cell, operation and status.
type PrometheusRecorder struct {
	operations *prometheus.CounterVec
}

// NewPrometheusRecorder registers the counter vector with the supplied
// registerer. A nil registerer falls back to the default registry.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dslcore",
		Name:      "cell_operations_total",
		Help:      "Outcomes of operations performed through instrumented cells.",
	}, []string{"cell", "operation", "status"})
	if err := reg.Register(operations); err != nil {
		return nil, err
	}
	return &PrometheusRecorder{operations: operations}, nil
}

// Observe records an operation outcome.
func (r *PrometheusRecorder) Observe(cellName, operation string, success bool) {
	if cellName == "" || operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operations.WithLabelValues(cellName, operation, status).Inc()
}
