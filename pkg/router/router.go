// Package router implements the per-metric sample router: it demultiplexes
// one hot source stream.Observable[sample.Sample] into one shared
// sub-stream per metric name, so every condition referencing the same
// metric attaches to the same upstream filter instead of re-scanning the
// source. Grounded on the teacher's atomic get-or-insert map idiom (e.g.
// pkg/window/strategy/fixed.ActiveWindows' mutex-guarded entries), adapted
// here from a list to a map since lookups are by metric name, not time.
package router

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/mehrshadshams/reactive/pkg/metrics"
	"github.com/mehrshadshams/reactive/pkg/ruleerr"
	"github.com/mehrshadshams/reactive/pkg/sample"
	"github.com/mehrshadshams/reactive/pkg/stream"
)

// Router demultiplexes a single source into per-metric sub-streams.
type Router struct {
	mu       sync.Mutex
	subjects map[string]*stream.Subject[sample.Sample]
	source   stream.Observable[sample.Sample]
	started  bool
	unsub    func()
	onRoute  func(metric string)

	// routed is a lock-free running total of every sample successfully
	// dispatched, read by callers (e.g. engine.Subscription's
	// RoutedSampleCount) that want a cheap in-process counter without
	// scraping the prometheus registry.
	routed atomic.Int64
}

// New builds a Router over source. The source is not subscribed to until
// the first call to Subscribe.
func New(source stream.Observable[sample.Sample]) *Router {
	return &Router{
		subjects: make(map[string]*stream.Subject[sample.Sample]),
		source:   source,
	}
}

// OnRoute installs a callback invoked once per routed sample, after it
// has been dispatched to its metric's subject. Callers that need a
// per-sample hook beyond the routed/dropped counters below use this
// instead of subscribing a dedicated no-op observer per metric.
func (r *Router) OnRoute(cb func(metric string)) {
	r.mu.Lock()
	r.onRoute = cb
	r.mu.Unlock()
}

// Subscribe returns the sub-stream for metric, creating it if this is the
// first subscription to that metric. The lookup and the insert happen
// under a single lock, so of several concurrent Subscribe calls for the
// same never-before-seen metric only the first creates a subject and the
// others receive that one; no candidate subject is ever built and thrown
// away (a lock-free CAS is not needed, since the critical section is O(1)).
func (r *Router) Subscribe(metric string) stream.Observable[sample.Sample] {
	r.mu.Lock()
	r.ensureStarted()
	subj, ok := r.subjects[metric]
	if !ok {
		subj = stream.NewSubject[sample.Sample]()
		r.subjects[metric] = subj
	}
	r.mu.Unlock()
	return subj
}

// ensureStarted subscribes to the source exactly once, lazily, the first
// time any metric is requested. Caller must hold r.mu.
func (r *Router) ensureStarted() {
	if r.started {
		return
	}
	r.started = true
	r.unsub = r.source.Subscribe(stream.Observer[sample.Sample]{
		OnNext:     r.route,
		OnError:    r.fanOutError,
		OnComplete: r.fanOutComplete,
	})
}

func (r *Router) route(s sample.Sample) {
	r.mu.Lock()
	subj, ok := r.subjects[s.Name]
	cb := r.onRoute
	r.mu.Unlock()
	if !ok {
		// no condition currently references this metric; drop it.
		metrics.SamplesDroppedCount.WithLabelValues(s.Name).Inc()
		return
	}
	subj.Next(s)
	r.routed.Inc()
	metrics.SamplesRoutedCount.WithLabelValues(s.Name).Inc()
	if cb != nil {
		cb(s.Name)
	}
}

// RoutedCount returns the running total of samples successfully
// dispatched to a subscriber, since this Router was created.
func (r *Router) RoutedCount() int64 {
	return r.routed.Load()
}

// fanOutError delivers the source's error to every sub-stream exactly
// once (spec §4.1 failure semantics). Afterwards, Subscribe for a metric
// that already had a sub-stream returns that terminated subject, which
// replays the terminal notification per stream.Subject's contract; the
// router keeps no terminated state of its own, so Subscribe for a metric
// first requested after termination returns a new live subject that
// receives nothing further.
func (r *Router) fanOutError(err error) {
	wrapped := wrapUpstreamError(err)
	for _, subj := range r.snapshotSubjects() {
		subj.Error(wrapped)
	}
}

func (r *Router) fanOutComplete() {
	for _, subj := range r.snapshotSubjects() {
		subj.Complete()
	}
}

func (r *Router) snapshotSubjects() []*stream.Subject[sample.Sample] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*stream.Subject[sample.Sample], 0, len(r.subjects))
	for _, subj := range r.subjects {
		out = append(out, subj)
	}
	return out
}

// Close tears down the router's subscription to its source. Individual
// per-metric subjects are left intact for any subscriber that has not
// yet unsubscribed, since they may be shared by other rules.
func (r *Router) Close() {
	r.mu.Lock()
	unsub := r.unsub
	r.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func wrapUpstreamError(err error) error {
	if re, ok := err.(*ruleerr.Error); ok {
		return re
	}
	return ruleerr.New(ruleerr.UpstreamError, err.Error())
}
