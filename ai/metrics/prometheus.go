// Package metrics exports assistant metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter collects assistant turn, tool and gateway metrics.
type Exporter struct {
	registry *prometheus.Registry

	turnLatency *prometheus.HistogramVec
	turns       *prometheus.CounterVec
	toolCalls   *prometheus.CounterVec
	llmTokens   *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec
}

var latencyBuckets = []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60}

// NewExporter creates an exporter with its own registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
	}

	e.turnLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "micondominio",
			Subsystem: "assistant",
			Name:      "turn_latency_seconds",
			Help:      "End-to-end latency of one assistant turn",
			Buckets:   latencyBuckets,
		},
		[]string{"outcome"},
	)

	e.turns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "micondominio",
			Subsystem: "assistant",
			Name:      "turns_total",
			Help:      "Total assistant turns by outcome",
		},
		[]string{"outcome"},
	)

	e.toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "micondominio",
			Subsystem: "assistant",
			Name:      "tool_calls_total",
			Help:      "Total tool calls by tool and result",
		},
		[]string{"tool_name", "result"},
	)

	e.llmTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "micondominio",
			Subsystem: "assistant",
			Name:      "llm_tokens_total",
			Help:      "LLM tokens consumed",
		},
		[]string{"token_type"},
	)

	e.llmLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "micondominio",
			Subsystem: "assistant",
			Name:      "llm_latency_seconds",
			Help:      "LLM gateway request latency",
			Buckets:   latencyBuckets,
		},
		[]string{"provider"},
	)

	e.registry.MustRegister(
		e.turnLatency,
		e.turns,
		e.toolCalls,
		e.llmTokens,
		e.llmLatency,
	)

	return e
}

// Turn outcomes.
const (
	OutcomeAnswered     = "answered"
	OutcomeConfirmAsked = "confirmation_asked"
	OutcomeExecuted     = "executed"
	OutcomeCancelled    = "cancelled"
	OutcomeFailed       = "failed"
)

// Tool call results.
const (
	ToolResultOK           = "ok"
	ToolResultError        = "error"
	ToolResultConfirmation = "requires_confirmation"
	ToolResultUnknown      = "unknown_tool"
)

// RecordTurn records one completed assistant turn.
func (e *Exporter) RecordTurn(outcome string, latency time.Duration) {
	e.turns.WithLabelValues(outcome).Inc()
	e.turnLatency.WithLabelValues(outcome).Observe(latency.Seconds())
}

// RecordToolCall records one tool invocation.
func (e *Exporter) RecordToolCall(toolName, result string) {
	e.toolCalls.WithLabelValues(toolName, result).Inc()
}

// RecordLLMCall records token usage and latency for one gateway call.
func (e *Exporter) RecordLLMCall(provider string, promptTokens, completionTokens int, latency time.Duration) {
	e.llmTokens.WithLabelValues("prompt").Add(float64(promptTokens))
	e.llmTokens.WithLabelValues("completion").Add(float64(completionTokens))
	e.llmLatency.WithLabelValues(provider).Observe(latency.Seconds())
}

// Handler returns the HTTP handler for the metrics endpoint.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
