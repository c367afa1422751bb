package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sdecook/glox/internal/token"
)

// TestProgramStringRendersLispLikeForm checks the s-expression printer
// spec.md's Design Notes describe for AST debugging output.
func TestProgramStringRendersLispLikeForm(t *testing.T) {
	program := &Program{
		Stmts: []Stmt{
			&Var{Name: token.New(token.Identifier, "x", 1), Initializer: &Literal{Value: 1.0}},
			&Print{Expr: &Binary{
				Left:  &Variable{Name: token.New(token.Identifier, "x", 2)},
				Op:    token.New(token.Plus, "+", 2),
				Right: &Literal{Value: 1.0},
			}},
		},
	}

	got := program.String()
	want := "(var x 1)\n(print (+ x 1))"
	if got != want {
		t.Errorf("Program.String() = %q, want %q", got, want)
	}
}

// TestClassDeclStructuralEquality compares two independently-built
// ClassDecl trees field by field, ignoring token positions that aren't
// part of the parsed structure being compared.
func TestClassDeclStructuralEquality(t *testing.T) {
	build := func(line int) *ClassDecl {
		return &ClassDecl{
			Name: token.New(token.Identifier, "Dog", line),
			Superclass: &Variable{
				Name: token.New(token.Identifier, "Animal", line),
			},
			Methods: []*FunctionDecl{
				{
					Name: token.New(token.Identifier, "speak", line+1),
					Fn:   &Function{Params: nil, Body: nil},
				},
			},
		}
	}

	a := build(1)
	b := build(5) // same shape, different source lines

	diff := cmp.Diff(a, b,
		cmpopts.IgnoreFields(token.Token{}, "Line"),
		cmpopts.IgnoreUnexported(token.Literal{}),
	)
	if diff != "" {
		t.Errorf("ClassDecl mismatch ignoring line numbers (-a +b):\n%s", diff)
	}
}
