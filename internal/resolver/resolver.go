// Package resolver implements the static analysis pass that precomputes
// lexical scope distances for variable references and enforces spec.md's
// static rules (no `this` outside a class, no top-level `return`, no
// duplicate declaration in a scope, no self-read in an initializer, no
// `break` outside a loop, and the superclass rules for `super`).
//
// Grounded on the teacher's codecrafters/cmd/resolver.go, which already
// implements the class/this/super scaffolding; rewritten to key its side
// table on ast.Expr pointer identity (Go interface equality over *Type
// pointers) rather than by string hash, which spec.md §9 flags as a latent
// bug in the original, and to track the DECLARED → DEFINED → READ states
// spec.md §4.3 specifies (including the unused-local warning on scope pop).
package resolver

import (
	"github.com/dolthub/swiss"

	"github.com/sdecook/glox/internal/ast"
	"github.com/sdecook/glox/internal/diagnostics"
)

type variableState int

const (
	declared variableState = iota
	defined
	read
)

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

type binding struct {
	state variableState
	line  int
}

// Resolved is the side-table populated by Resolve: for every expression node
// that refers to a variable and was found in a local scope, the number of
// environment hops (0 = innermost) to walk at evaluation time. An entry
// missing from this map means "resolve as a global".
type Resolved map[ast.Expr]int

// Resolve walks program, populating and returning a Resolved side-table and
// reporting any static-rule violations through diags.
func Resolve(program *ast.Program, diags *diagnostics.Sink) Resolved {
	r := &resolver{
		diags:    diags,
		resolved: make(Resolved),
	}
	for _, s := range program.Stmts {
		r.stmt(s)
	}
	return r.resolved
}

// scope is one lexical block's name -> binding table. Backed by swiss.Map
// per SPEC_FULL.md's domain stack, the same open-addressing table
// Environment uses for its bindings at evaluation time — every block,
// function, and class body the resolver walks opens one of these.
type scope = *swiss.Map[string, *binding]

func newScope() scope { return swiss.NewMap[string, *binding](8) }

type resolver struct {
	diags    *diagnostics.Sink
	resolved Resolved

	scopes     []scope
	currentFn  functionType
	currentCls classType
	insideLoop bool
}

func (r *resolver) beginScope() { r.scopes = append(r.scopes, newScope()) }

func (r *resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	top.Iter(func(name string, b *binding) (stop bool) {
		if b.state == defined {
			r.diags.Report(b.line, "", "Local variable '"+name+"' is declared but never used.")
		}
		return false
	})
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	if _, ok := top.Get(name); ok {
		r.diags.Report(line, "", "Already variable with this name in this scope.")
	}
	top.Put(name, &binding{state: declared, line: line})
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	top := r.scopes[len(r.scopes)-1]
	line := 0
	if b, ok := top.Get(name); ok {
		line = b.line
	}
	top.Put(name, &binding{state: defined, line: line})
}

// resolveLocal walks the scope stack from innermost outward; the first scope
// containing name records the hop distance and, if isRead, transitions the
// binding to read.
func (r *resolver) resolveLocal(expr ast.Expr, name string, isRead bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i].Get(name); ok {
			r.resolved[expr] = len(r.scopes) - 1 - i
			if isRead {
				b.state = read
			}
			return
		}
	}
	// not found locally: the evaluator falls back to globals.
}

// ---- statements ---------------------------------------------------------

func (r *resolver) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Expression:
		r.expr(s.Expr)

	case *ast.Print:
		r.expr(s.Expr)

	case *ast.Var:
		r.declare(s.Name.Lexeme, s.Name.Line)
		if s.Initializer != nil {
			r.expr(s.Initializer)
		}
		r.define(s.Name.Lexeme)

	case *ast.Block:
		r.beginScope()
		for _, st := range s.Stmts {
			r.stmt(st)
		}
		r.endScope()

	case *ast.If:
		r.expr(s.Condition)
		r.stmt(s.Then)
		if s.Else != nil {
			r.stmt(s.Else)
		}

	case *ast.While:
		r.expr(s.Condition)
		enclosing := r.insideLoop
		r.insideLoop = true
		r.stmt(s.Body)
		r.insideLoop = enclosing

	case *ast.Break:
		if !r.insideLoop {
			r.diags.Report(s.Keyword.Line, "", "Cannot break from top-level code.")
		}

	case *ast.Return:
		if r.currentFn == fnNone {
			r.diags.Report(s.Keyword.Line, "", "Cannot return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFn == fnInitializer {
				r.diags.Report(s.Keyword.Line, "", "Cannot return a value from an initializer.")
			}
			r.expr(s.Value)
		}

	case *ast.FunctionDecl:
		r.declare(s.Name.Lexeme, s.Name.Line)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s.Fn, fnFunction)

	case *ast.ClassDecl:
		r.classDecl(s)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *resolver) classDecl(s *ast.ClassDecl) {
	enclosingClass := r.currentCls
	r.currentCls = classClass

	r.declare(s.Name.Lexeme, s.Name.Line)
	r.define(s.Name.Lexeme)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.diags.Report(s.Superclass.Name.Line, "", "A class can't inherit from itself.")
		}
		r.currentCls = classSubclass
		r.expr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1].Put("super", &binding{state: read, line: s.Name.Line})
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1].Put("this", &binding{state: read, line: s.Name.Line})

	for _, m := range s.Methods {
		fnType := fnMethod
		if m.Name.Lexeme == "init" {
			fnType = fnInitializer
		}
		r.resolveFunction(m.Fn, fnType)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	r.currentCls = enclosingClass
}

func (r *resolver) resolveFunction(fn *ast.Function, fnType functionType) {
	enclosingFn := r.currentFn
	enclosingLoop := r.insideLoop
	r.currentFn = fnType
	r.insideLoop = false

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param.Lexeme, param.Line)
		r.define(param.Lexeme)
	}
	for _, st := range fn.Body {
		r.stmt(st)
	}
	r.endScope()

	r.currentFn = enclosingFn
	r.insideLoop = enclosingLoop
}

// ---- expressions ----------------------------------------------------

func (r *resolver) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		// nothing to resolve

	case *ast.Grouping:
		r.expr(e.Inner)

	case *ast.Unary:
		r.expr(e.Operand)

	case *ast.Binary:
		r.expr(e.Left)
		r.expr(e.Right)

	case *ast.Logical:
		r.expr(e.Left)
		r.expr(e.Right)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if b, ok := r.scopes[len(r.scopes)-1].Get(e.Name.Lexeme); ok && b.state == declared {
				r.diags.Report(e.Name.Line, "", "Cannot read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme, true)

	case *ast.Assign:
		r.expr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme, false)

	case *ast.Call:
		r.expr(e.Callee)
		for _, a := range e.Args {
			r.expr(a)
		}

	case *ast.Get:
		r.expr(e.Object)

	case *ast.Set:
		r.expr(e.Value)
		r.expr(e.Object)

	case *ast.This:
		if r.currentCls == classNone {
			r.diags.Report(e.Keyword.Line, "", "Cannot use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this", true)

	case *ast.Super:
		switch r.currentCls {
		case classNone:
			r.diags.Report(e.Keyword.Line, "", "Cannot use 'super' outside of a class.")
		case classClass:
			r.diags.Report(e.Keyword.Line, "", "Cannot use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, "super", true)

	case *ast.Function:
		r.resolveFunction(e, fnFunction)

	default:
		panic("resolver: unhandled expression type")
	}
}
