package agent

import "github.com/prometheus/client_golang/prometheus"

// PrometheusMetrics exposes scheduler-level gauges and counters for a single
// agent, grounded on dshills/langgraph-go/graph/metrics.go's instrumentation
// of node execution. Attach one via agent.WithMetrics when constructing an
// Agent.
type PrometheusMetrics struct {
	activeStates    prometheus.Gauge
	queueDepth      prometheus.Gauge
	statesCompleted prometheus.Counter
	statesFailed    prometheus.Counter
	retriesTotal    prometheus.Counter
}

// NewPrometheusMetrics registers the agent's metrics on registry and returns
// a handle the scheduler uses to keep them updated.
func NewPrometheusMetrics(registry *prometheus.Registry) *PrometheusMetrics {
	m := &PrometheusMetrics{
		activeStates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agentflow_active_states",
			Help: "Number of states currently dispatched and running.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agentflow_pending_states",
			Help: "Number of states whose dependencies are satisfied but that have not yet been dispatched.",
		}),
		statesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agentflow_states_completed_total",
			Help: "Cumulative count of states that completed successfully.",
		}),
		statesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agentflow_states_failed_total",
			Help: "Cumulative count of states recorded as failed, including in-flight states that errored after the run was cancelled.",
		}),
		retriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agentflow_retries_total",
			Help: "Cumulative count of retry attempts across all states.",
		}),
	}
	registry.MustRegister(m.activeStates, m.queueDepth, m.statesCompleted, m.statesFailed, m.retriesTotal)
	return m
}

func (m *PrometheusMetrics) stateStarted() {
	if m == nil {
		return
	}
	m.activeStates.Inc()
}

func (m *PrometheusMetrics) stateFinished() {
	if m == nil {
		return
	}
	m.activeStates.Dec()
}

func (m *PrometheusMetrics) setPending(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

func (m *PrometheusMetrics) stateCompleted() {
	if m == nil {
		return
	}
	m.statesCompleted.Inc()
}

func (m *PrometheusMetrics) stateFailed() {
	if m == nil {
		return
	}
	m.statesFailed.Inc()
}

func (m *PrometheusMetrics) retried() {
	if m == nil {
		return
	}
	m.retriesTotal.Inc()
}
