package lang

// Complexity is the result of running a ComplexityAnalyzer over a tree.
type Complexity struct {
	NodeCount        int
	ConditionCount   int
	AggregationCount int
	MaxDepth         int
	OperatorCount    int
}

// IsHighComplexity is true when the tree is big or deep enough to warrant
// flagging for review: more than 20 nodes, deeper than 10, or more than 5
// aggregation conditions.
func (c Complexity) IsHighComplexity() bool {
	return c.NodeCount > 20 || c.MaxDepth > 10 || c.AggregationCount > 5
}

// ComplexityAnalyzer is the Visitor that computes Complexity. Depth is
// tracked as traversal state on the visitor itself (Accept carries no
// extra parameters): a.depth is the nesting level of the binary ancestor
// currently being visited (the root binary, if any, is depth 1), and a
// leaf's own depth is one more than its deepest binary ancestor's —
// so max_depth is the number of nodes on the longest root-to-leaf path,
// matching the intuitive "how many levels does this tree have".
type ComplexityAnalyzer struct {
	result Complexity
	depth  int
}

// NewComplexityAnalyzer builds a fresh analyzer.
func NewComplexityAnalyzer() *ComplexityAnalyzer {
	return &ComplexityAnalyzer{}
}

func (a *ComplexityAnalyzer) VisitCondition(n *ConditionNode) (interface{}, error) {
	a.result.NodeCount++
	a.result.ConditionCount++
	if n.Condition.IsAggregation {
		a.result.AggregationCount++
	}
	if leafDepth := a.depth + 1; leafDepth > a.result.MaxDepth {
		a.result.MaxDepth = leafDepth
	}
	return nil, nil
}

func (a *ComplexityAnalyzer) VisitBinary(n *BinaryNode) (interface{}, error) {
	a.result.NodeCount++
	a.result.OperatorCount++
	a.depth++
	if a.depth > a.result.MaxDepth {
		a.result.MaxDepth = a.depth
	}
	if _, err := n.Left.Accept(a); err != nil {
		a.depth--
		return nil, err
	}
	if _, err := n.Right.Accept(a); err != nil {
		a.depth--
		return nil, err
	}
	a.depth--
	return nil, nil
}

// Result returns the accumulated Complexity.
func (a *ComplexityAnalyzer) Result() Complexity {
	return a.result
}

// AnalyzeComplexity runs a ComplexityAnalyzer over root and returns the result.
func AnalyzeComplexity(root Node) (Complexity, error) {
	a := NewComplexityAnalyzer()
	if _, err := root.Accept(a); err != nil {
		return Complexity{}, err
	}
	return a.Result(), nil
}
