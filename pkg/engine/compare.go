package engine

import (
	"strconv"

	"github.com/mehrshadshams/reactive/pkg/lang"
	"github.com/mehrshadshams/reactive/pkg/metrics"
	"github.com/mehrshadshams/reactive/pkg/ruleerr"
)

// recordVerdict increments the per-node, per-value verdict counter.
func recordVerdict(node string, value bool) {
	metrics.VerdictsEmittedCount.WithLabelValues(node, strconv.FormatBool(value)).Inc()
}

// recordRuntimeError increments the per-node runtime error counter for
// err's kind (Unknown if err carries no ruleerr.Kind).
func recordRuntimeError(node string, err error) {
	re, _ := ruleerr.FromError(err)
	metrics.RuntimeErrorsCount.WithLabelValues(node, re.Kind().String()).Inc()
}

// compare applies op to (value, threshold). The parser only ever produces
// the six CompareOp values lang defines, so the default case should be
// unreachable; it is kept as UnsupportedOperator per spec §7 rather than a
// panic, since a leaf must fail the stream, not the process.
func compare(op lang.CompareOp, value, threshold float64) (bool, error) {
	switch op {
	case lang.Gt:
		return value > threshold, nil
	case lang.Gte:
		return value >= threshold, nil
	case lang.Lt:
		return value < threshold, nil
	case lang.Lte:
		return value <= threshold, nil
	case lang.Eq:
		return value == threshold, nil
	case lang.Neq:
		return value != threshold, nil
	default:
		return false, ruleerr.Newf(ruleerr.UnsupportedOperator, "unsupported comparison operator %q", op)
	}
}
