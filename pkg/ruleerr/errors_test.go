package ruleerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehrshadshams/reactive/pkg/ruleerr"
)

func TestErrorMessageWithoutLocation(t *testing.T) {
	err := ruleerr.New(ruleerr.Syntax, "bad input")
	assert.Equal(t, "SyntaxError: bad input", err.Error())
}

func TestErrorMessageWithLocation(t *testing.T) {
	err := ruleerr.New(ruleerr.Syntax, "bad input").WithLocation("offset 4")
	assert.Equal(t, "SyntaxError at offset 4: bad input", err.Error())
}

func TestNewfFormatsMessage(t *testing.T) {
	err := ruleerr.Newf(ruleerr.DivisionByZero, "dividing %s by zero", "x")
	assert.Equal(t, ruleerr.DivisionByZero, err.Kind())
	assert.Equal(t, "dividing x by zero", err.Message())
}

func TestFromErrorExtractsKindAndMessage(t *testing.T) {
	err := ruleerr.New(ruleerr.UnresolvedVariable, "k is unbound")
	re, ok := ruleerr.FromError(err)
	require.True(t, ok)
	assert.Equal(t, ruleerr.UnresolvedVariable, re.Kind())
	assert.Equal(t, "k is unbound", re.Message())
}

func TestFromErrorDefaultsToUnknownForPlainErrors(t *testing.T) {
	re, ok := ruleerr.FromError(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, ruleerr.Unknown, re.Kind())
}

func TestFromErrorNilIsNil(t *testing.T) {
	re, ok := ruleerr.FromError(nil)
	assert.Nil(t, re)
	assert.True(t, ok)
}

func TestKindStringNames(t *testing.T) {
	cases := map[ruleerr.Kind]string{
		ruleerr.Syntax:              "SyntaxError",
		ruleerr.InvalidExpression:   "InvalidExpression",
		ruleerr.UnresolvedVariable:  "UnresolvedVariable",
		ruleerr.DivisionByZero:      "DivisionByZero",
		ruleerr.UnsupportedOperator: "UnsupportedOperator",
		ruleerr.UpstreamError:       "UpstreamError",
		ruleerr.Unknown:             "Unknown",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
