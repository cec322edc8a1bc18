package lang

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/multierr"

	"github.com/mehrshadshams/reactive/pkg/arith"
	"github.com/mehrshadshams/reactive/pkg/ruleerr"
)

// ValidationResult is the outcome of running a Validator over a tree.
type ValidationResult struct {
	Errors   []error
	Warnings []ruleerr.Warning
}

// IsValid is true when no errors were found (warnings are non-fatal).
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Err combines all collected errors into a single error via multierr, or
// nil if there were none.
func (r ValidationResult) Err() error {
	return multierr.Combine(r.Errors...)
}

// Validator is the Visitor that checks a tree for InvalidExpression
// conditions and collects ValidationWarnings. knownMetrics/knownVariables
// are optional; a nil set disables the corresponding membership check.
type Validator struct {
	knownMetrics   map[string]struct{}
	knownVariables map[string]struct{}
	result         ValidationResult
}

// NewValidator builds a Validator. Passing nil for either set disables
// that membership check (any metric/variable name is accepted).
func NewValidator(knownMetrics, knownVariables map[string]struct{}) *Validator {
	return &Validator{knownMetrics: knownMetrics, knownVariables: knownVariables}
}

func (v *Validator) VisitCondition(n *ConditionNode) (interface{}, error) {
	c := n.Condition

	if c.Metric == "" {
		v.fail("condition %s has an empty metric name", n.Name())
	} else if v.knownMetrics != nil {
		if _, ok := v.knownMetrics[c.Metric]; !ok {
			v.fail("condition %s references unknown metric %q", n.Name(), c.Metric)
		}
	}

	if c.Op < Gt || c.Op > Neq {
		v.fail("condition %s has an invalid comparison operator", n.Name())
	}

	if c.IsAggregation {
		if c.AggKind == NoAgg {
			v.fail("condition %s is marked as aggregation but has no aggregation kind", n.Name())
		}
		if c.Window <= 0 {
			v.fail("condition %s has a non-positive or missing aggregation window", n.Name())
		} else if c.Window > 24*time.Hour {
			v.warn("condition %s has a window of %s, greater than 24h", n.Name(), c.Window)
		}
	} else if c.AggKind != NoAgg || c.Window != 0 {
		v.warn("condition %s sets aggregation-only fields (kind/window) but is not an aggregation condition", n.Name())
	}

	v.validateThreshold(n.Name(), c.Threshold)

	return nil, nil
}

func (v *Validator) validateThreshold(nodeName string, t arith.Node) {
	switch term := t.(type) {
	case arith.Constant:
		if math.IsNaN(term.Value) || math.IsInf(term.Value, 0) {
			v.fail("condition %s has a NaN or infinite literal threshold", nodeName)
		}
	case arith.Variable:
		if v.knownVariables != nil {
			if _, ok := v.knownVariables[term.Name]; !ok {
				v.fail("condition %s references unknown variable %q", nodeName, term.Name)
			}
		}
	case arith.Binary:
		v.validateThreshold(nodeName, term.Left)
		v.validateThreshold(nodeName, term.Right)
	}
}

func (v *Validator) VisitBinary(n *BinaryNode) (interface{}, error) {
	if n.Op != And && n.Op != Or {
		v.fail("node %s has an invalid logical operator", n.Name())
	}
	if _, err := n.Left.Accept(v); err != nil {
		return nil, err
	}
	if _, err := n.Right.Accept(v); err != nil {
		return nil, err
	}
	return nil, nil
}

func (v *Validator) fail(format string, args ...interface{}) {
	v.result.Errors = append(v.result.Errors, ruleerr.Newf(ruleerr.InvalidExpression, format, args...))
}

func (v *Validator) warn(format string, args ...interface{}) {
	v.result.Warnings = append(v.result.Warnings, ruleerr.Warning{Message: fmt.Sprintf(format, args...)})
}

// Result returns the accumulated ValidationResult.
func (v *Validator) Result() ValidationResult {
	return v.result
}

// Validate runs a Validator over root with the given known-metric and
// known-variable sets (either may be nil to disable that check).
func Validate(root Node, knownMetrics, knownVariables map[string]struct{}) (ValidationResult, error) {
	v := NewValidator(knownMetrics, knownVariables)
	if _, err := root.Accept(v); err != nil {
		return ValidationResult{}, err
	}
	return v.Result(), nil
}
