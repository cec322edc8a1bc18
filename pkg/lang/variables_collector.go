package lang

// VariableCollector is the Visitor that gathers every variable name
// referenced in any threshold's arithmetic tree.
type VariableCollector struct {
	variables map[string]struct{}
}

// NewVariableCollector builds an empty collector.
func NewVariableCollector() *VariableCollector {
	return &VariableCollector{variables: make(map[string]struct{})}
}

func (c *VariableCollector) VisitCondition(n *ConditionNode) (interface{}, error) {
	for name := range n.Condition.Threshold.Variables() {
		c.variables[name] = struct{}{}
	}
	return nil, nil
}

func (c *VariableCollector) VisitBinary(n *BinaryNode) (interface{}, error) {
	if _, err := n.Left.Accept(c); err != nil {
		return nil, err
	}
	if _, err := n.Right.Accept(c); err != nil {
		return nil, err
	}
	return nil, nil
}

// Variables returns the accumulated set of variable names.
func (c *VariableCollector) Variables() map[string]struct{} {
	return c.variables
}

// CollectVariables runs a VariableCollector over root and returns the result.
func CollectVariables(root Node) (map[string]struct{}, error) {
	c := NewVariableCollector()
	if _, err := root.Accept(c); err != nil {
		return nil, err
	}
	return c.Variables(), nil
}
