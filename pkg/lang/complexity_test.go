package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehrshadshams/reactive/pkg/lang"
)

func TestAnalyzeComplexitySingleLeaf(t *testing.T) {
	root, err := lang.Parse("cpu > 5")
	require.NoError(t, err)
	c, err := lang.AnalyzeComplexity(root)
	require.NoError(t, err)
	assert.Equal(t, lang.Complexity{
		NodeCount:        1,
		ConditionCount:   1,
		AggregationCount: 0,
		MaxDepth:         1,
		OperatorCount:    0,
	}, c)
	assert.False(t, c.IsHighComplexity())
}

func TestAnalyzeComplexityTwoLeafAnd(t *testing.T) {
	root, err := lang.Parse("avg(cpu, 30s) > 80 && avg(memory, 1m) > 85")
	require.NoError(t, err)
	c, err := lang.AnalyzeComplexity(root)
	require.NoError(t, err)
	assert.Equal(t, 3, c.NodeCount)
	assert.Equal(t, 2, c.ConditionCount)
	assert.Equal(t, 2, c.AggregationCount)
	assert.Equal(t, 1, c.OperatorCount)
	assert.Equal(t, 2, c.MaxDepth)
	assert.False(t, c.IsHighComplexity())
}

// The grammar edge scenario from the engine's concrete scenarios:
// (avg(cpu,30s)>80 && avg(memory,1m)>85) || (max(disk,5m)>95 && min(network,10s)<5)
//
// This tree has exactly two levels of binary nesting (the root OR over
// two ANDs, each AND over two leaves), so its longest root-to-leaf path
// visits three nodes: OR, AND, leaf. max_depth is pinned at 3 under this
// analyzer's depth convention (root-to-leaf path length, leaf inclusive).
func TestAnalyzeComplexityGrammarEdgeScenario(t *testing.T) {
	root, err := lang.Parse(`(avg(cpu, 30s) > 80 && avg(memory, 1m) > 85) || (max(disk, 5m) > 95 && min(network, 10s) < 5)`)
	require.NoError(t, err)
	c, err := lang.AnalyzeComplexity(root)
	require.NoError(t, err)
	assert.Equal(t, 7, c.NodeCount)
	assert.Equal(t, 4, c.ConditionCount)
	assert.Equal(t, 4, c.AggregationCount)
	assert.Equal(t, 3, c.OperatorCount)
	assert.Equal(t, 3, c.MaxDepth)
	assert.False(t, c.IsHighComplexity())
}

func TestIsHighComplexityThresholds(t *testing.T) {
	assert.True(t, lang.Complexity{NodeCount: 21}.IsHighComplexity())
	assert.True(t, lang.Complexity{MaxDepth: 11}.IsHighComplexity())
	assert.True(t, lang.Complexity{AggregationCount: 6}.IsHighComplexity())
	assert.False(t, lang.Complexity{NodeCount: 20, MaxDepth: 10, AggregationCount: 5}.IsHighComplexity())
}
