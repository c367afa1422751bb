package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/glox/internal/diagnostics"
	"github.com/sdecook/glox/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanTokensPunctuationAndOperators(t *testing.T) {
	diags := diagnostics.New()
	toks := New("(){},.-+;*!= <= >= == !", diags).ScanTokens()

	require.False(t, diags.HadError())
	assert.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon, token.Star,
		token.BangEqual, token.LessEqual, token.GreaterEqual, token.EqualEqual, token.Bang,
		token.EOF,
	}, kinds(toks))
}

func TestScanTokensStringLiteral(t *testing.T) {
	diags := diagnostics.New()
	toks := New(`"hello world"`, diags).ScanTokens()

	require.False(t, diags.HadError())
	require.Len(t, toks, 2)
	assert.Equal(t, token.String, toks[0].Kind)
	assert.True(t, toks[0].Literal.IsStr)
	assert.Equal(t, "hello world", toks[0].Literal.Str)
}

func TestScanTokensUnterminatedString(t *testing.T) {
	diags := diagnostics.New()
	New(`"oops`, diags).ScanTokens()

	assert.True(t, diags.HadError())
	require.Len(t, diags.Reports(), 1)
	assert.Contains(t, diags.Reports()[0].Message, "Unterminated string.")
}

func TestScanTokensNumberLiteral(t *testing.T) {
	diags := diagnostics.New()
	toks := New("123 45.67", diags).ScanTokens()

	require.False(t, diags.HadError())
	require.Len(t, toks, 3)
	assert.Equal(t, 123.0, toks[0].Literal.Number)
	assert.Equal(t, 45.67, toks[1].Literal.Number)
}

func TestScanTokensKeywordsAndIdentifiers(t *testing.T) {
	diags := diagnostics.New()
	toks := New("class break fun orchid", diags).ScanTokens()

	require.False(t, diags.HadError())
	assert.Equal(t, []token.Kind{token.Class, token.Break, token.Fun, token.Identifier, token.EOF}, kinds(toks))
}

func TestScanTokensLineComment(t *testing.T) {
	diags := diagnostics.New()
	toks := New("1 // this is a comment\n2", diags).ScanTokens()

	require.False(t, diags.HadError())
	require.Len(t, toks, 3)
	assert.Equal(t, 1.0, toks[0].Literal.Number)
	assert.Equal(t, 2.0, toks[1].Literal.Number)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanTokensNestedBlockComment(t *testing.T) {
	diags := diagnostics.New()
	toks := New("1 /* outer /* inner */ still outer */ 2", diags).ScanTokens()

	require.False(t, diags.HadError())
	require.Len(t, toks, 3)
	assert.Equal(t, 1.0, toks[0].Literal.Number)
	assert.Equal(t, 2.0, toks[1].Literal.Number)
}

func TestScanTokensUnexpectedCharacter(t *testing.T) {
	diags := diagnostics.New()
	New("@", diags).ScanTokens()

	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "Unexpected character.")
}
