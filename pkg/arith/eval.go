package arith

import (
	"fmt"
	"strconv"

	"github.com/mehrshadshams/reactive/pkg/ruleerr"
)

// Evaluate implements Node for Constant: returns the literal value.
func (c Constant) Evaluate(Resolver) (float64, error) {
	return c.Value, nil
}

// Variables implements Node for Constant: constants reference nothing.
func (c Constant) Variables() map[string]struct{} {
	return map[string]struct{}{}
}

func (c Constant) String() string {
	return formatFloat(c.Value)
}

// Evaluate implements Node for Variable: looks the name up in r, failing
// with UnresolvedVariable if it is unbound.
func (v Variable) Evaluate(r Resolver) (float64, error) {
	val, ok := r.Lookup(v.Name)
	if !ok {
		return 0, ruleerr.Newf(ruleerr.UnresolvedVariable, "variable %q is not bound in the resolver", v.Name)
	}
	return val, nil
}

// Variables implements Node for Variable: the singleton {Name}.
func (v Variable) Variables() map[string]struct{} {
	return map[string]struct{}{v.Name: {}}
}

func (v Variable) String() string {
	return v.Name
}

// Evaluate implements Node for Binary: evaluates both sides then applies
// Op, failing with DivisionByZero for a zero divisor and
// UnsupportedOperator for any Op this switch doesn't recognize (should be
// unreachable given a correct parser).
func (b Binary) Evaluate(r Resolver) (float64, error) {
	left, err := b.Left.Evaluate(r)
	if err != nil {
		return 0, err
	}
	right, err := b.Right.Evaluate(r)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case Add:
		return left + right, nil
	case Sub:
		return left - right, nil
	case Mul:
		return left * right, nil
	case Div:
		if right == 0 {
			return 0, ruleerr.Newf(ruleerr.DivisionByZero, "division by zero evaluating %s", b.String())
		}
		return left / right, nil
	default:
		return 0, ruleerr.Newf(ruleerr.UnsupportedOperator, "unsupported arithmetic operator %q", b.Op)
	}
}

// Variables implements Node for Binary: the union of both sides' variables.
func (b Binary) Variables() map[string]struct{} {
	out := b.Left.Variables()
	for name := range b.Right.Variables() {
		out[name] = struct{}{}
	}
	return out
}

func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
