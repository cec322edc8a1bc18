package engine

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mehrshadshams/reactive/pkg/lang"
	"github.com/mehrshadshams/reactive/pkg/resolver"
	"github.com/mehrshadshams/reactive/pkg/router"
	"github.com/mehrshadshams/reactive/pkg/stream"
)

// evaluated is what Evaluator's Accept dispatch produces for both node
// shapes: the node's verdict stream plus the teardown for that node's own
// leaf or combinator. Children's teardowns are not included; every
// teardown is also registered on the Evaluator, whose Cancel runs them all.
type evaluated struct {
	stream *stream.Subject[Verdict]
	cancel func()
}

// Evaluator is the Visitor that builds the verdict stream (spec §4.6.1):
// dispatching over the tree, it wires router subscriptions to leaves and
// leaves to combinators, mirroring the shape of the AST exactly. It lives
// in pkg/engine rather than pkg/lang so lang never has to import the
// streaming primitives it dispatches to.
type Evaluator struct {
	router   *router.Router
	resolver resolver.Resolver

	mu      sync.Mutex
	cancels []func()
}

// NewEvaluator builds an Evaluator that subscribes to r for metric
// sub-streams and res for threshold variable lookups.
func NewEvaluator(r *router.Router, res resolver.Resolver) *Evaluator {
	return &Evaluator{router: r, resolver: res}
}

func (e *Evaluator) VisitCondition(n *lang.ConditionNode) (interface{}, error) {
	metricStream := e.router.Subscribe(n.Condition.Metric)

	var out *stream.Subject[Verdict]
	var cancel func()
	if n.Condition.IsAggregation {
		out, cancel = newAggregationLeaf(n, metricStream, e.resolver)
	} else {
		out, cancel = newSimpleLeaf(n, metricStream, e.resolver)
	}
	e.addCancel(cancel)
	return evaluated{stream: out, cancel: cancel}, nil
}

// VisitBinary builds both children concurrently via errgroup, since
// Accept on each side only wires router subscriptions and allocates
// subjects/windowers — independent work with no ordering dependency
// between siblings.
func (e *Evaluator) VisitBinary(n *lang.BinaryNode) (interface{}, error) {
	var leftRes, rightRes interface{}
	g := &errgroup.Group{}
	g.Go(func() error {
		res, err := n.Left.Accept(e)
		leftRes = res
		return err
	})
	g.Go(func() error {
		res, err := n.Right.Accept(e)
		rightRes = res
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	left := leftRes.(evaluated)
	right := rightRes.(evaluated)

	out, cancel := newCombinator(n, left.stream, right.stream)
	e.addCancel(cancel)
	return evaluated{stream: out, cancel: cancel}, nil
}

func (e *Evaluator) addCancel(c func()) {
	e.mu.Lock()
	e.cancels = append(e.cancels, c)
	e.mu.Unlock()
}

// Cancel tears down every leaf and combinator the Evaluator has built so
// far, in any order (spec §5's cancellation contract makes no ordering
// promise across sibling subtrees).
func (e *Evaluator) Cancel() {
	e.mu.Lock()
	cancels := e.cancels
	e.cancels = nil
	e.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}

// Evaluate dispatches the Evaluator over root and returns its root
// verdict stream and a single teardown covering the whole tree. On
// failure, everything built so far is torn down before returning.
func (e *Evaluator) Evaluate(root lang.Node) (*stream.Subject[Verdict], func(), error) {
	res, err := root.Accept(e)
	if err != nil {
		e.Cancel()
		return nil, nil, err
	}
	ev := res.(evaluated)
	return ev.stream, e.Cancel, nil
}
