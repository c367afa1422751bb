// Package ast defines the Language's abstract syntax tree: sum types for
// expressions and statements, grounded on the teacher's codecrafters/cmd/ast.go
// but split so every node is addressable by pointer identity (the resolver's
// side-table keys on *Node pointers, not on a string hash — see DESIGN.md).
package ast

import (
	"fmt"
	"strings"

	"github.com/sdecook/glox/internal/token"
)

// Expr is implemented by every expression node. Expr values are always
// pointers to a concrete node type, so two expressions are the same node iff
// they compare equal as interface values (used as resolver side-table keys).
type Expr interface {
	exprNode()
	String() string
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	String() string
}

// ---- Expressions -----------------------------------------------------

// Literal is a literal nil/bool/number/string value.
type Literal struct {
	Value any // nil, bool, float64, or string
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Inner Expr
}

// Unary is a prefix operator application.
type Unary struct {
	Op      token.Token
	Operand Expr
}

// Binary is an infix operator application.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Logical is "and"/"or", which short-circuit and are not plain Binary nodes.
type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Variable is a bare identifier read.
type Variable struct {
	Name token.Token
}

// Assign is `name = value`.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Call is `callee(args...)`.
type Call struct {
	Callee Expr
	Paren  token.Token // for arity/type-error reporting
	Args   []Expr
}

// Get is `object.name`.
type Get struct {
	Object Expr
	Name   token.Token
}

// Set is `object.name = value`.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// This is the `this` keyword used as an expression.
type This struct {
	Keyword token.Token
}

// Super is `super.method`.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

// Function is an anonymous function expression: `fun (params) { body }`.
type Function struct {
	Params []token.Token
	Body   []Stmt
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}
func (*Function) exprNode() {}

func (l *Literal) String() string {
	if l.Value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", l.Value)
}
func (g *Grouping) String() string { return fmt.Sprintf("(group %s)", g.Inner) }
func (u *Unary) String() string    { return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Operand) }
func (b *Binary) String() string   { return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right) }
func (l *Logical) String() string  { return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right) }
func (v *Variable) String() string { return v.Name.Lexeme }
func (a *Assign) String() string   { return fmt.Sprintf("(= %s %s)", a.Name.Lexeme, a.Value) }
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", c.Callee, strings.Join(args, " "))
}
func (g *Get) String() string { return fmt.Sprintf("(get %s %s)", g.Object, g.Name.Lexeme) }
func (s *Set) String() string {
	return fmt.Sprintf("(set %s %s %s)", s.Object, s.Name.Lexeme, s.Value)
}
func (t *This) String() string  { return "this" }
func (s *Super) String() string { return fmt.Sprintf("(super %s)", s.Method.Lexeme) }
func (f *Function) String() string {
	return fmt.Sprintf("(fun/%d)", len(f.Params))
}

// ---- Statements -------------------------------------------------------

// Expression is an expression used as a statement.
type Expression struct {
	Expr Expr
}

// Print is the `print expr;` statement.
type Print struct {
	Expr Expr
}

// Var is a `var name = initializer;` declaration.
type Var struct {
	Name        token.Token
	Initializer Expr // nil if absent
}

// Block is a `{ ... }` statement sequence with its own lexical scope.
type Block struct {
	Stmts []Stmt
}

// If is an `if (cond) then [else else]` statement.
type If struct {
	Condition  Expr
	Then       Stmt
	Else       Stmt // nil if absent
}

// While is a `while (cond) body` statement. `for` desugars into this.
type While struct {
	Condition Expr
	Body      Stmt
}

// Break is the `break;` statement.
type Break struct {
	Keyword token.Token
}

// Return is the `return [value];` statement.
type Return struct {
	Keyword token.Token
	Value   Expr // nil if absent
}

// FunctionDecl is a named function declaration, `fun name(params) { body }`.
type FunctionDecl struct {
	Name token.Token
	Fn   *Function
}

// ClassDecl is a class declaration with an optional superclass and methods.
type ClassDecl struct {
	Name       token.Token
	Superclass *Variable // nil if absent
	Methods    []*FunctionDecl
}

func (*Expression) stmtNode()   {}
func (*Print) stmtNode()        {}
func (*Var) stmtNode()          {}
func (*Block) stmtNode()        {}
func (*If) stmtNode()           {}
func (*While) stmtNode()        {}
func (*Break) stmtNode()        {}
func (*Return) stmtNode()       {}
func (*FunctionDecl) stmtNode() {}
func (*ClassDecl) stmtNode()    {}

func (e *Expression) String() string { return e.Expr.String() }
func (p *Print) String() string      { return fmt.Sprintf("(print %s)", p.Expr) }
func (v *Var) String() string {
	if v.Initializer == nil {
		return fmt.Sprintf("(var %s)", v.Name.Lexeme)
	}
	return fmt.Sprintf("(var %s %s)", v.Name.Lexeme, v.Initializer)
}
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("(block")
	for _, s := range b.Stmts {
		sb.WriteString(" ")
		sb.WriteString(s.String())
	}
	sb.WriteString(")")
	return sb.String()
}
func (i *If) String() string {
	if i.Else == nil {
		return fmt.Sprintf("(if %s %s)", i.Condition, i.Then)
	}
	return fmt.Sprintf("(if %s %s %s)", i.Condition, i.Then, i.Else)
}
func (w *While) String() string { return fmt.Sprintf("(while %s %s)", w.Condition, w.Body) }
func (b *Break) String() string { return "(break)" }
func (r *Return) String() string {
	if r.Value == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %s)", r.Value)
}
func (f *FunctionDecl) String() string { return fmt.Sprintf("(fun %s/%d)", f.Name.Lexeme, len(f.Fn.Params)) }
func (c *ClassDecl) String() string {
	var sb strings.Builder
	sb.WriteString("(class ")
	sb.WriteString(c.Name.Lexeme)
	if c.Superclass != nil {
		sb.WriteString(" < ")
		sb.WriteString(c.Superclass.Name.Lexeme)
	}
	for _, m := range c.Methods {
		sb.WriteString(" ")
		sb.WriteString(m.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Program is the top-level list of statements produced by the parser.
type Program struct {
	Stmts []Stmt
}

func (p *Program) String() string {
	parts := make([]string, len(p.Stmts))
	for i, s := range p.Stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}
