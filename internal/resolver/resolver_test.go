package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/glox/internal/diagnostics"
	"github.com/sdecook/glox/internal/parser"
	"github.com/sdecook/glox/internal/scanner"
)

func resolveSource(t *testing.T, src string) (Resolved, *diagnostics.Sink) {
	t.Helper()
	diags := diagnostics.New()
	toks := scanner.New(src, diags).ScanTokens()
	program := parser.New(toks, diags).Parse()
	require.False(t, diags.HadError(), "unexpected parse error: %v", diags.Reports())
	resolved := Resolve(program, diags)
	return resolved, diags
}

func TestResolveLocalVariableGetsDistance(t *testing.T) {
	resolved, diags := resolveSource(t, `
		var a = 1;
		{
			var b = a;
			print b;
		}
	`)
	require.False(t, diags.HadError())
	assert.NotEmpty(t, resolved)
}

func TestResolveSelfReadInInitializerIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `
		var a = 1;
		{
			var a = a;
		}
	`)
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "own initializer")
}

func TestResolveDuplicateDeclarationInSameScopeIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `
		{
			var a = 1;
			var a = 2;
		}
	`)
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "Already variable")
}

func TestResolveThisOutsideClassIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `print this;`)
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "'this' outside")
}

func TestResolveReturnFromInitializerWithValueIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `
		class A {
			init() { return 1; }
		}
	`)
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "return a value from an initializer")
}

func TestResolveClassInheritingFromItselfIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `class A < A {}`)
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "can't inherit from itself")
}

func TestResolveSuperOutsideSubclassIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `
		class A {
			greet() { return super.greet(); }
		}
	`)
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "no superclass")
}

func TestResolveWellFormedClassHierarchyHasNoErrors(t *testing.T) {
	_, diags := resolveSource(t, `
		class A {
			greet() { return "A"; }
		}
		class B < A {
			greet() { return super.greet() + "B"; }
		}
	`)
	assert.False(t, diags.HadError())
}

func TestResolveTopLevelReturnIsAnError(t *testing.T) {
	_, diags := resolveSource(t, `return 1;`)
	assert.True(t, diags.HadError())
	assert.Contains(t, diags.Reports()[0].Message, "return from top-level code")
}
