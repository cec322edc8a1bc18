// Package engine is the compiler driver and evaluator: it turns rule text
// into a live verdict stream (spec §4.7), and exposes the same
// parse-once analyses (extract_metrics, extract_variables, validate,
// analyze_complexity) that pkg/lang implements, as the engine's public
// surface so callers never need to import pkg/lang directly.
package engine

import (
	"context"

	"github.com/mehrshadshams/reactive/pkg/lang"
	"github.com/mehrshadshams/reactive/pkg/logging"
	"github.com/mehrshadshams/reactive/pkg/metrics"
	"github.com/mehrshadshams/reactive/pkg/resolver"
	"github.com/mehrshadshams/reactive/pkg/router"
	"github.com/mehrshadshams/reactive/pkg/ruleerr"
	"github.com/mehrshadshams/reactive/pkg/sample"
	"github.com/mehrshadshams/reactive/pkg/stream"
)

// Subscription is the live handle build() returns: the root verdict
// stream plus everything needed to tear the whole tree down.
type Subscription struct {
	verdicts *stream.Subject[Verdict]
	router   *router.Router
	cancel   func()
}

// Verdicts returns the root verdict stream.
func (s *Subscription) Verdicts() stream.Observable[Verdict] {
	return s.verdicts
}

// RoutedSampleCount returns the running total of samples this
// subscription's router has dispatched to a subscriber.
func (s *Subscription) RoutedSampleCount() int64 {
	return s.router.RoutedCount()
}

// Close tears down every leaf, combinator and router subscription this
// Subscription owns, in any order (spec §5's cancellation contract).
func (s *Subscription) Close() {
	s.cancel()
	s.router.Close()
}

// Build compiles text into a live Subscription over source (spec §4.7):
// parse, validate against knownMetrics/knownVariables (either may be nil
// to disable that check), then dispatch the Evaluator. Compile-time
// failures are returned synchronously and never create a subscription.
// res supplies variable bindings for arithmetic thresholds; ctx only
// carries the logger warnings are emitted to.
func Build(ctx context.Context, text string, source stream.Observable[sample.Sample], res resolver.Resolver, knownMetrics, knownVariables map[string]struct{}) (*Subscription, error) {
	root, err := lang.Parse(text)
	if err != nil {
		recordCompileError(err)
		return nil, err
	}

	result, verr := lang.Validate(root, knownMetrics, knownVariables)
	if verr != nil {
		recordCompileError(verr)
		return nil, verr
	}
	if !result.IsValid() {
		err := result.Err()
		recordCompileError(err)
		return nil, err
	}

	log := logging.FromContext(ctx)
	for _, w := range result.Warnings {
		log.Warnw(w.Message, "rule", text)
	}

	r := router.New(source)
	ev := NewEvaluator(r, res)
	verdicts, cancel, err := ev.Evaluate(root)
	if err != nil {
		r.Close()
		recordCompileError(err)
		return nil, err
	}

	return &Subscription{verdicts: verdicts, router: r, cancel: cancel}, nil
}

// ExtractMetrics implements spec's extract_metrics(text).
func ExtractMetrics(text string) (map[string]struct{}, error) {
	root, err := lang.Parse(text)
	if err != nil {
		return nil, err
	}
	return lang.CollectMetrics(root)
}

// ExtractVariables implements spec's extract_variables(text).
func ExtractVariables(text string) (map[string]struct{}, error) {
	root, err := lang.Parse(text)
	if err != nil {
		return nil, err
	}
	return lang.CollectVariables(root)
}

// Validate implements spec's validate(text, known_metrics?, known_variables?).
func Validate(text string, knownMetrics, knownVariables map[string]struct{}) (lang.ValidationResult, error) {
	root, err := lang.Parse(text)
	if err != nil {
		return lang.ValidationResult{}, err
	}
	return lang.Validate(root, knownMetrics, knownVariables)
}

// AnalyzeComplexity implements spec's analyze_complexity(text).
func AnalyzeComplexity(text string) (lang.Complexity, error) {
	root, err := lang.Parse(text)
	if err != nil {
		return lang.Complexity{}, err
	}
	return lang.AnalyzeComplexity(root)
}

func recordCompileError(err error) {
	re, _ := ruleerr.FromError(err)
	metrics.ValidationErrorsCount.WithLabelValues(re.Kind().String()).Inc()
}
