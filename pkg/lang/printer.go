package lang

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Print renders root back into the grammar's canonical surface syntax:
// normalized operator spelling ("&&"/"||", never "AND"/"OR"), lowercase
// aggregation keywords, and parentheses around a binary operand only
// where the grammar's precedence and left associativity require them
// (so "a > 1 && b > 2 && c > 3" prints without parentheses). Parsing
// Print(root) again yields a tree equal to root modulo node names (the
// round-trip law of spec.md §8).
func Print(root Node) string {
	var sb strings.Builder
	printNode(&sb, root, false)
	return sb.String()
}

func printNode(sb *strings.Builder, n Node, parenthesizeBinary bool) {
	switch node := n.(type) {
	case *ConditionNode:
		sb.WriteString(printCondition(node.Condition))
	case *BinaryNode:
		if parenthesizeBinary {
			sb.WriteString("(")
		}
		printNode(sb, node.Left, needsParens(node.Op, node.Left, false))
		sb.WriteString(" ")
		sb.WriteString(node.Op.String())
		sb.WriteString(" ")
		printNode(sb, node.Right, needsParens(node.Op, node.Right, true))
		if parenthesizeBinary {
			sb.WriteString(")")
		}
	}
}

// needsParens reports whether child, printed as an operand of a parent
// with operator op, must be parenthesized for re-parsing to rebuild the
// same tree: an || operand of && (&& binds tighter), or a right operand
// with the parent's own operator (both operators associate left).
func needsParens(op LogicalOp, child Node, right bool) bool {
	b, ok := child.(*BinaryNode)
	if !ok {
		return false
	}
	return (b.Op == Or && op == And) || (right && b.Op == op)
}

func printCondition(c Condition) string {
	if c.IsAggregation {
		return fmt.Sprintf("%s(%s, %s) %s %s", c.AggKind, c.Metric, formatWindow(c.Window), c.Op, c.Threshold.String())
	}
	return fmt.Sprintf("%s %s %s", c.Metric, c.Op, c.Threshold.String())
}

// formatWindow renders a duration using the grammar's s/m/h units,
// picking the largest unit that divides the duration evenly; a duration
// with a fractional second part is written in decimal seconds.
func formatWindow(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", int64(d/time.Hour))
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", int64(d/time.Minute))
	case d%time.Second == 0:
		return fmt.Sprintf("%ds", int64(d/time.Second))
	default:
		return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
	}
}
