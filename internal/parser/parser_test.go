package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/glox/internal/diagnostics"
	"github.com/sdecook/glox/internal/scanner"
)

func parseString(t *testing.T, src string) (string, *diagnostics.Sink) {
	t.Helper()
	diags := diagnostics.New()
	toks := scanner.New(src, diags).ScanTokens()
	program := New(toks, diags).Parse()
	return program.String(), diags
}

func TestParseArithmeticPrecedence(t *testing.T) {
	out, diags := parseString(t, "1 + 2 * 3;")
	require.False(t, diags.HadError())
	assert.Equal(t, "(+ 1 (* 2 3))", out)
}

func TestParseGroupingOverridesPrecedence(t *testing.T) {
	out, diags := parseString(t, "(1 + 2) * 3;")
	require.False(t, diags.HadError())
	assert.Equal(t, "(* (group (+ 1 2)) 3)", out)
}

func TestParseVarDeclAndAssignment(t *testing.T) {
	out, diags := parseString(t, "var x = 1; x = 2;")
	require.False(t, diags.HadError())
	assert.Equal(t, "(var x 1)\n(= x 2)", out)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	out, diags := parseString(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, diags.HadError())
	assert.Equal(t, "(block (var i 0) (while (< i 3) (block (print i) (= i (+ i 1)))))", out)
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	out, diags := parseString(t, "class B < A { greet() { return super.greet(); } }")
	require.False(t, diags.HadError())
	assert.Equal(t, "(class B < A (fun greet/0))", out)
}

func TestParseAnonymousFunctionExpression(t *testing.T) {
	out, diags := parseString(t, "var f = fun (a, b) { return a + b; };")
	require.False(t, diags.HadError())
	assert.Equal(t, "(var f (fun/2))", out)
}

func TestParseBreakOutsideLoopReportsError(t *testing.T) {
	_, diags := parseString(t, "break;")
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "Cannot break from top-level code.")
}

func TestParseBreakInsideWhileIsFine(t *testing.T) {
	out, diags := parseString(t, "while (true) { break; }")
	require.False(t, diags.HadError())
	assert.Equal(t, "(while true (block (break)))", out)
}

func TestParseMissingSemicolonSynchronizesAndReportsOneError(t *testing.T) {
	_, diags := parseString(t, "var x = 1\nvar y = 2;")
	require.True(t, diags.HadError())
	reports := diags.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, 2, reports[0].Line)
}

func TestParseInvalidAssignmentTargetReportsError(t *testing.T) {
	_, diags := parseString(t, "1 + 2 = 3;")
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "Invalid assignment target.")
}

func TestParseCallAndPropertyChain(t *testing.T) {
	out, diags := parseString(t, "a.b(c).d;")
	require.False(t, diags.HadError())
	assert.Equal(t, "(get (call (get a b) c) d)", out)
}
