package lang

// MetricCollector is the Visitor that gathers every metric name
// referenced anywhere in the tree.
type MetricCollector struct {
	metrics map[string]struct{}
}

// NewMetricCollector builds an empty collector.
func NewMetricCollector() *MetricCollector {
	return &MetricCollector{metrics: make(map[string]struct{})}
}

func (c *MetricCollector) VisitCondition(n *ConditionNode) (interface{}, error) {
	c.metrics[n.Condition.Metric] = struct{}{}
	return nil, nil
}

func (c *MetricCollector) VisitBinary(n *BinaryNode) (interface{}, error) {
	if _, err := n.Left.Accept(c); err != nil {
		return nil, err
	}
	if _, err := n.Right.Accept(c); err != nil {
		return nil, err
	}
	return nil, nil
}

// Metrics returns the accumulated set of metric names.
func (c *MetricCollector) Metrics() map[string]struct{} {
	return c.metrics
}

// CollectMetrics runs a MetricCollector over root and returns the result.
func CollectMetrics(root Node) (map[string]struct{}, error) {
	c := NewMetricCollector()
	if _, err := root.Accept(c); err != nil {
		return nil, err
	}
	return c.Metrics(), nil
}
