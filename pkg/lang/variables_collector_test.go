package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehrshadshams/reactive/pkg/lang"
)

func TestCollectVariablesAcrossBothSides(t *testing.T) {
	root, err := lang.Parse(`cpu > k * 2 && mem > j`)
	require.NoError(t, err)
	vars, err := lang.CollectVariables(root)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"k": {}, "j": {}}, vars)
}

func TestCollectVariablesEmptyWhenOnlyLiterals(t *testing.T) {
	root, err := lang.Parse(`cpu > 5 && mem > 10`)
	require.NoError(t, err)
	vars, err := lang.CollectVariables(root)
	require.NoError(t, err)
	assert.Empty(t, vars)
}
