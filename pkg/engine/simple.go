package engine

import (
	"github.com/mehrshadshams/reactive/pkg/lang"
	"github.com/mehrshadshams/reactive/pkg/resolver"
	"github.com/mehrshadshams/reactive/pkg/sample"
	"github.com/mehrshadshams/reactive/pkg/stream"
)

// newSimpleLeaf builds the verdict stream for a non-aggregation condition
// (spec §4.4): one verdict per upstream sample, period is the sample's
// single instant.
func newSimpleLeaf(n *lang.ConditionNode, metricStream stream.Observable[sample.Sample], res resolver.Resolver) (*stream.Subject[Verdict], func()) {
	cond := n.Condition
	out := stream.NewSubject[Verdict]()

	unsub := metricStream.Subscribe(stream.Observer[sample.Sample]{
		OnNext: func(s sample.Sample) {
			threshold, err := cond.Threshold.Evaluate(res)
			if err != nil {
				recordRuntimeError(n.Name(), err)
				out.Error(err)
				return
			}
			ok, err := compare(cond.Op, s.Value, threshold)
			if err != nil {
				recordRuntimeError(n.Name(), err)
				out.Error(err)
				return
			}
			recordVerdict(n.Name(), ok)
			out.Next(Verdict{NodeName: n.Name(), Value: ok, Period: sample.Point(s.Timestamp)})
		},
		OnError: func(err error) {
			recordRuntimeError(n.Name(), err)
			out.Error(err)
		},
		OnComplete: out.Complete,
	})

	return out, unsub
}
