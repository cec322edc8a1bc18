package engine

import (
	"github.com/mehrshadshams/reactive/pkg/lang"
	"github.com/mehrshadshams/reactive/pkg/sample"
	"github.com/mehrshadshams/reactive/pkg/stream"
)

// newCombinator builds the verdict stream for an AND/OR interior node
// (spec §4.5): combine-latest over the two children's verdict streams,
// joining periods and applying the boolean operator. No output is
// produced until both children have emitted at least once.
func newCombinator(n *lang.BinaryNode, left, right stream.Observable[Verdict]) (*stream.Subject[Verdict], func()) {
	combine := func(l, r Verdict) Verdict {
		var value bool
		if n.Op == lang.And {
			value = l.Value && r.Value
		} else {
			value = l.Value || r.Value
		}
		recordVerdict(n.Name(), value)
		return Verdict{
			NodeName: n.Name(),
			Value:    value,
			Period:   sample.Join(l.Period, r.Period),
		}
	}
	return stream.CombineLatest[Verdict, Verdict, Verdict](left, right, combine)
}
