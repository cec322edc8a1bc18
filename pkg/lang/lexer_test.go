package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehrshadshams/reactive/pkg/ruleerr"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	l := newLexer(src)
	var toks []token
	for {
		tok, err := l.next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func TestLexerSkipsWhitespaceBetweenTokens(t *testing.T) {
	toks := lexAll(t, "  cpu   >   5 ")
	kinds := []tokenKind{tokIdent, tokGt, tokNumber, tokEOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].kind)
	}
}

func TestLexerTwoCharOperators(t *testing.T) {
	cases := map[string]tokenKind{
		">=": tokGte,
		"<=": tokLte,
		"==": tokEq,
		"!=": tokNeq,
		"&&": tokAnd,
		"||": tokOr,
	}
	for src, kind := range cases {
		toks := lexAll(t, src)
		require.Len(t, toks, 2)
		assert.Equal(t, kind, toks[0].kind, "lexing %q", src)
		assert.Equal(t, src, toks[0].text)
	}
}

func TestLexerAndOrAreCaseInsensitiveAliases(t *testing.T) {
	for _, src := range []string{"and", "AND", "And"} {
		toks := lexAll(t, src)
		require.Len(t, toks, 2)
		assert.Equal(t, tokAnd, toks[0].kind)
	}
	for _, src := range []string{"or", "OR", "Or"} {
		toks := lexAll(t, src)
		require.Len(t, toks, 2)
		assert.Equal(t, tokOr, toks[0].kind)
	}
}

func TestLexerNumberWithFraction(t *testing.T) {
	toks := lexAll(t, "3.5")
	require.Len(t, toks, 2)
	assert.Equal(t, tokNumber, toks[0].kind)
	assert.Equal(t, "3.5", toks[0].text)
}

func TestLexerIdentAllowsUnderscoreAndDigits(t *testing.T) {
	toks := lexAll(t, "_cpu_usage2")
	require.Len(t, toks, 2)
	assert.Equal(t, tokIdent, toks[0].kind)
	assert.Equal(t, "_cpu_usage2", toks[0].text)
}

func TestLexerLoneAmpersandIsSyntaxError(t *testing.T) {
	l := newLexer("&cpu")
	_, err := l.next()
	require.Error(t, err)
	re, _ := ruleerr.FromError(err)
	assert.Equal(t, ruleerr.Syntax, re.Kind())
}

func TestLexerLoneEqualsIsSyntaxError(t *testing.T) {
	l := newLexer("= 5")
	_, err := l.next()
	require.Error(t, err)
}

func TestLexerUnexpectedCharacterIsSyntaxError(t *testing.T) {
	l := newLexer("cpu @ 5")
	_, err := l.next() // cpu
	require.NoError(t, err)
	_, err = l.next() // @
	require.Error(t, err)
}
