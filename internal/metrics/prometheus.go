package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Agent metrics
	AgentCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finadvisor_agent_calls_total",
			Help: "Total number of agent invocations",
		},
		[]string{"agent", "model", "status"}, // status: success|error
	)

	AgentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finadvisor_agent_latency_seconds",
			Help:    "Agent execution latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"agent", "model"},
	)

	AgentTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finadvisor_agent_tokens_total",
			Help: "Total tokens used by agents",
		},
		[]string{"agent", "model", "type"}, // type: input|output
	)

	AgentCost = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finadvisor_agent_cost_usd",
			Help: "Total model cost in USD",
		},
		[]string{"agent", "model"},
	)

	// Tool metrics
	ToolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finadvisor_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "status"}, // status: success|error
	)

	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finadvisor_tool_latency_seconds",
			Help:    "Tool execution latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool"},
	)

	// Provider metrics
	ProviderAPICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finadvisor_provider_api_calls_total",
			Help: "Total number of data provider API calls",
		},
		[]string{"provider", "endpoint", "status"}, // provider: yahoo|firecrawl
	)

	ProviderAPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finadvisor_provider_api_latency_seconds",
			Help:    "Data provider API latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider", "endpoint"},
	)

	// Report metrics
	ReportsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finadvisor_reports_saved_total",
			Help: "Total number of advice reports persisted",
		},
		[]string{"status"}, // status: success|error
	)

	ReportSizeBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finadvisor_report_size_bytes",
			Help:    "Size of persisted advice reports in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
	)

	// Storage metrics
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finadvisor_db_queries_total",
			Help: "Total number of storage queries",
		},
		[]string{"database", "operation", "status"}, // database: postgres|redis
	)

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finadvisor_db_query_duration_seconds",
			Help:    "Storage query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"database", "operation"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	// Agent metrics
	prometheus.MustRegister(AgentCalls)
	prometheus.MustRegister(AgentLatency)
	prometheus.MustRegister(AgentTokens)
	prometheus.MustRegister(AgentCost)

	// Tool metrics
	prometheus.MustRegister(ToolExecutions)
	prometheus.MustRegister(ToolLatency)

	// Provider metrics
	prometheus.MustRegister(ProviderAPICalls)
	prometheus.MustRegister(ProviderAPILatency)

	// Report metrics
	prometheus.MustRegister(ReportsSaved)
	prometheus.MustRegister(ReportSizeBytes)

	// Storage metrics
	prometheus.MustRegister(DBQueries)
	prometheus.MustRegister(DBQueryDuration)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAgentCall records an agent invocation
func RecordAgentCall(agent, model string, latency time.Duration, cost float64, inputTokens, outputTokens int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	AgentCalls.WithLabelValues(agent, model, status).Inc()
	AgentLatency.WithLabelValues(agent, model).Observe(latency.Seconds())

	if cost > 0 {
		AgentCost.WithLabelValues(agent, model).Add(cost)
	}
	if inputTokens > 0 {
		AgentTokens.WithLabelValues(agent, model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		AgentTokens.WithLabelValues(agent, model, "output").Add(float64(outputTokens))
	}
}

// RecordToolExecution records a tool execution
func RecordToolExecution(tool string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ToolExecutions.WithLabelValues(tool, status).Inc()
	ToolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordProviderAPICall records a market data or search provider call
func RecordProviderAPICall(provider, endpoint string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ProviderAPICalls.WithLabelValues(provider, endpoint, status).Inc()
	ProviderAPILatency.WithLabelValues(provider, endpoint).Observe(latency.Seconds())
}

// RecordReportSaved records a persisted advice report
func RecordReportSaved(sizeBytes int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ReportsSaved.WithLabelValues(status).Inc()
	if err == nil && sizeBytes > 0 {
		ReportSizeBytes.Observe(float64(sizeBytes))
	}
}

// RecordDBQuery records a storage query
func RecordDBQuery(database, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	DBQueries.WithLabelValues(database, operation, status).Inc()
	DBQueryDuration.WithLabelValues(database, operation).Observe(duration.Seconds())
}
