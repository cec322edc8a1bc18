// Package metrics exports the engine's prometheus counters/gauges,
// grounded on the teacher's pkg/shared/metrics/metrics.go promauto
// pattern: package-level promauto vectors, labelled by metric, node and
// error kind rather than numaflow's vertex/pipeline, since this engine has no
// Kubernetes-shaped topology to label against.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SamplesRoutedCount counts samples the router has dispatched to a
// metric's sub-stream.
var SamplesRoutedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "ruleflow",
	Name:      "samples_routed_total",
	Help:      "Total number of samples dispatched by the router to a metric sub-stream",
}, []string{"metric"})

// SamplesDroppedCount counts samples the router discarded because no
// condition currently subscribes to their metric.
var SamplesDroppedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "ruleflow",
	Name:      "samples_dropped_total",
	Help:      "Total number of samples dropped for having no subscriber",
}, []string{"metric"})

// WindowsOpenedCount counts tumbling windows opened by a windower.
var WindowsOpenedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "ruleflow",
	Name:      "windows_opened_total",
	Help:      "Total number of tumbling windows opened",
}, []string{"node"})

// WindowsClosedCount counts tumbling windows closed, whether by a new
// window opening or by upstream termination.
var WindowsClosedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "ruleflow",
	Name:      "windows_closed_total",
	Help:      "Total number of tumbling windows closed",
}, []string{"node"})

// VerdictsEmittedCount counts verdicts emitted per expression node.
var VerdictsEmittedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "ruleflow",
	Name:      "verdicts_emitted_total",
	Help:      "Total number of verdicts emitted by a node",
}, []string{"node", "value"})

// ValidationErrorsCount counts compile-time failures returned by build
// (syntax, validation and evaluator construction), labelled by error kind.
var ValidationErrorsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "ruleflow",
	Name:      "validation_errors_total",
	Help:      "Total number of validation errors returned from build",
}, []string{"kind"})

// RuntimeErrorsCount counts terminal errors that killed a leaf's verdict
// stream at runtime (UnresolvedVariable, DivisionByZero, UpstreamError).
var RuntimeErrorsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "ruleflow",
	Name:      "runtime_errors_total",
	Help:      "Total number of runtime errors terminating a verdict stream",
}, []string{"node", "kind"})
