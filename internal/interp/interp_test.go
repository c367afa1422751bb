package interp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/glox/internal/diagnostics"
	"github.com/sdecook/glox/internal/parser"
	"github.com/sdecook/glox/internal/resolver"
	"github.com/sdecook/glox/internal/scanner"
)

// runProgram drives the full scan/parse/resolve/evaluate pipeline and
// returns whatever was written to `print`, plus any runtime error.
func runProgram(t *testing.T, src string) (string, error) {
	t.Helper()
	diags := diagnostics.New()
	toks := scanner.New(src, diags).ScanTokens()
	require.False(t, diags.HadError(), "scan errors: %v", diags.Reports())

	program := parser.New(toks, diags).Parse()
	require.False(t, diags.HadError(), "parse errors: %v", diags.Reports())

	resolved := resolver.Resolve(program, diags)
	require.False(t, diags.HadError(), "resolve errors: %v", diags.Reports())

	var buf bytes.Buffer
	in := New(diags, resolved, &buf)
	err := in.Interpret(program)
	return buf.String(), err
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, err := runProgram(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, err := runProgram(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpretClosureCapturesEnclosingVariable(t *testing.T) {
	out, err := runProgram(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpretBreakExitsNearestLoop(t *testing.T) {
	out, err := runProgram(t, `
		var i = 0;
		while (true) {
			if (i >= 3) break;
			print i;
			i = i + 1;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretForLoopDesugaring(t *testing.T) {
	out, err := runProgram(t, `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretClassesAndMethodsWithThis(t *testing.T) {
	out, err := runProgram(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print "Hello, " + this.name + "!";
			}
		}
		var g = Greeter("world");
		g.greet();
	`)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", out)
}

func TestInterpretSuperCallChaining(t *testing.T) {
	out, err := runProgram(t, `
		class A {
			greet() { return "A"; }
		}
		class B < A {
			greet() { return super.greet() + "B"; }
		}
		print B().greet();
	`)
	require.NoError(t, err)
	assert.Equal(t, "AB\n", out)
}

func TestInterpretAnonymousFunctionImmediatelyInvoked(t *testing.T) {
	out, err := runProgram(t, `
		print (fun (a, b) { return a + b; })(1, 2);
	`)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `print undefined;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable")
}

func TestInterpretDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `print 1 / 0;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot divide by zero")
}

func TestInterpretCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `
		var x = 1;
		x();
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestInterpretArityMismatchIsRuntimeError(t *testing.T) {
	_, err := runProgram(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestInterpretFieldsAreDynamicallyAssignable(t *testing.T) {
	out, err := runProgram(t, `
		class Box {}
		var b = Box();
		b.value = 42;
		print b.value;
	`)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestInterpretLogicalOperatorsShortCircuit(t *testing.T) {
	out, err := runProgram(t, `
		fun sideEffect(v) { print v; return v; }
		print sideEffect(false) and sideEffect(true);
		print sideEffect(true) or sideEffect(false);
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\nfalse\ntrue\ntrue\n", out)
}

func TestInterpretSnapshotOfClassProgram(t *testing.T) {
	out, err := runProgram(t, `
		class Animal {
			init(name) { this.name = name; }
			speak() { return this.name + " makes a sound."; }
		}
		class Dog < Animal {
			speak() { return super.speak() + " Specifically, a bark."; }
		}
		var animals = Dog("Rex");
		print animals.speak();
	`)
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}
