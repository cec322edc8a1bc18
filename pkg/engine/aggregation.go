package engine

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/mehrshadshams/reactive/pkg/lang"
	"github.com/mehrshadshams/reactive/pkg/resolver"
	"github.com/mehrshadshams/reactive/pkg/ruleerr"
	"github.com/mehrshadshams/reactive/pkg/sample"
	"github.com/mehrshadshams/reactive/pkg/stream"
	"github.com/mehrshadshams/reactive/pkg/window"
)

// newAggregationLeaf builds the verdict stream for an aggregation
// condition (spec §4.3): it windows metricStream by the condition's
// duration, folds each completed window with montanaflynn/stats, compares
// the fold against the threshold, and emits one Verdict per non-empty
// window. Empty windows emit no verdict.
func newAggregationLeaf(n *lang.ConditionNode, metricStream stream.Observable[sample.Sample], res resolver.Resolver) (*stream.Subject[Verdict], func()) {
	cond := n.Condition
	out := stream.NewSubject[Verdict]()
	w := window.New[sample.Sample](cond.Window, window.DefaultReorderInterval, func(s sample.Sample) time.Time { return s.Timestamp }).WithName(n.Name())

	cancelWindow := w.Subscribe(metricStream, func(win *window.Window[sample.Sample]) {
		var values []float64
		win.Items.Subscribe(stream.Observer[sample.Sample]{
			OnNext: func(s sample.Sample) { values = append(values, s.Value) },
			OnError: func(err error) {
				recordRuntimeError(n.Name(), err)
				out.Error(err)
			},
			OnComplete: func() {
				if len(values) == 0 {
					return
				}
				value, err := fold(cond.AggKind, values)
				if err != nil {
					recordRuntimeError(n.Name(), err)
					out.Error(err)
					return
				}
				threshold, err := cond.Threshold.Evaluate(res)
				if err != nil {
					recordRuntimeError(n.Name(), err)
					out.Error(err)
					return
				}
				ok, err := compare(cond.Op, value, threshold)
				if err != nil {
					recordRuntimeError(n.Name(), err)
					out.Error(err)
					return
				}
				recordVerdict(n.Name(), ok)
				out.Next(Verdict{NodeName: n.Name(), Value: ok, Period: win.Period})
			},
		})
	})

	return out, cancelWindow
}

// fold reduces a completed window's samples to a single double per the
// condition's aggregation kind.
func fold(kind lang.AggKind, values []float64) (float64, error) {
	switch kind {
	case lang.Avg:
		return stats.Mean(values)
	case lang.Sum:
		return stats.Sum(values)
	case lang.Max:
		return stats.Max(values)
	case lang.Min:
		return stats.Min(values)
	default:
		return 0, ruleerr.Newf(ruleerr.UnsupportedOperator, "unsupported aggregation kind %q", kind)
	}
}
