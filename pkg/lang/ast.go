// Package lang implements the expression AST described by the engine's
// grammar: a tree of logical AND/OR binary nodes over condition leaves,
// each leaf comparing a metric (optionally windowed and aggregated)
// against a literal or arithmetic threshold. It also owns the
// recursive-descent parser, the canonical printer, and the
// metric/variable/complexity/validation analyses dispatched over the
// tree via visitor-style traversal (see Visitor in visitor.go).
//
// The grammar definition and concrete parser front-end are named in the
// spec as external-collaborator contracts — any parser producing this
// AST satisfies it. This package's parser is one concrete, swappable
// implementation of that contract.
package lang

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mehrshadshams/reactive/pkg/arith"
)

// CompareOp is a condition's comparison operator.
type CompareOp int

const (
	Gt CompareOp = iota
	Gte
	Lt
	Lte
	Eq
	Neq
)

func (o CompareOp) String() string {
	switch o {
	case Gt:
		return ">"
	case Gte:
		return ">="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Eq:
		return "=="
	case Neq:
		return "!="
	default:
		return "?"
	}
}

// AggKind is an aggregation condition's fold kind.
type AggKind int

const (
	NoAgg AggKind = iota
	Avg
	Sum
	Max
	Min
)

func (k AggKind) String() string {
	switch k {
	case Avg:
		return "avg"
	case Sum:
		return "sum"
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return ""
	}
}

// LogicalOp is a binary node's combinator.
type LogicalOp int

const (
	And LogicalOp = iota
	Or
)

func (o LogicalOp) String() string {
	if o == And {
		return "&&"
	}
	return "||"
}

// Condition is an immutable leaf condition: a metric compared against a
// threshold, optionally windowed and aggregated.
type Condition struct {
	Metric        string
	Op            CompareOp
	Threshold     arith.Node
	IsAggregation bool
	AggKind       AggKind
	Window        time.Duration
}

// Node is the sum type of the expression AST: either a ConditionNode leaf
// or a BinaryNode combinator. Every node has a name minted once at
// construction, unique for the lifetime of the process, used for tracing
// and routing verdicts (spec's node_name; not a stable external API).
type Node interface {
	// Name returns the node's stable trace identifier.
	Name() string
	// Accept dispatches to the matching Visit method on v.
	Accept(v Visitor) (interface{}, error)
}

// ConditionNode is a leaf node wrapping a Condition.
type ConditionNode struct {
	name      string
	Condition Condition
}

// NewConditionNode builds a leaf node with a fresh unique name.
func NewConditionNode(c Condition) *ConditionNode {
	return &ConditionNode{name: mintName("cond"), Condition: c}
}

func (n *ConditionNode) Name() string { return n.name }

func (n *ConditionNode) Accept(v Visitor) (interface{}, error) {
	return v.VisitCondition(n)
}

// BinaryNode is an interior AND/OR node over two children.
type BinaryNode struct {
	name  string
	Op    LogicalOp
	Left  Node
	Right Node
}

// NewBinaryNode builds an interior node with a fresh unique name derived
// from its operator and children, so repeated builds of the same shape
// are human-traceable without being globally stable (each call still
// mints a fresh uuid suffix).
func NewBinaryNode(op LogicalOp, left, right Node) *BinaryNode {
	return &BinaryNode{
		name:  fmt.Sprintf("%s(%s,%s)#%s", op, left.Name(), right.Name(), shortID()),
		Op:    op,
		Left:  left,
		Right: right,
	}
}

func (n *BinaryNode) Name() string { return n.name }

func (n *BinaryNode) Accept(v Visitor) (interface{}, error) {
	return v.VisitBinary(n)
}

var _ Node = (*ConditionNode)(nil)
var _ Node = (*BinaryNode)(nil)

func mintName(prefix string) string {
	return prefix + "-" + shortID()
}

func shortID() string {
	id := uuid.New()
	return id.String()[:8]
}
