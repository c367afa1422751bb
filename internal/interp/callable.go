package interp

import (
	"fmt"

	"github.com/sdecook/glox/internal/ast"
	"github.com/sdecook/glox/internal/token"
)

// Callable is anything that can appear as the callee of a call expression:
// user-defined functions and methods, classes (constructors), and builtins.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, tok token.Token, args []Value) (Value, error)
	String() string
}

// Function is a user-defined function or method, closing over the
// environment active at its declaration site.
//
// Grounded on the teacher's codecrafters/cmd/callable.go LoxFunction, with
// isInitializer added for spec.md's `init` early-return-returns-this rule.
type Function struct {
	name          string // "" for an anonymous function expression
	decl          *ast.Function
	closure       *Environment
	isInitializer bool
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Call(in *Interpreter, _ token.Token, args []Value) (Value, error) {
	env := NewChild(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	sig, err := in.execBlockStmts(f.decl.Body, env)
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if sig != nil && sig.kind == signalReturn {
		return sig.value, nil
	}
	return nil, nil
}

func (f *Function) String() string {
	if f.name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.name)
}

// bind returns a copy of the method bound to instance, by wrapping the
// method's closure in one more scope that defines `this`. Grounded on the
// teacher's LoxFunction.bind.
func (f *Function) bind(instance *Instance) *Function {
	env := NewChild(f.closure)
	env.Define("this", instance)
	return &Function{name: f.name, decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// Class is a Language class: a name, an optional superclass, and a method
// table. Calling a Class constructs a new Instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, tok token.Token, args []Value) (Value, error) {
	instance := &Instance{class: c, fields: make(map[string]Value)}
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(in, tok, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string { return c.Name }

func (c *Class) findMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil
}

// Instance is a runtime object: a class pointer plus a mutable field table.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func (i *Instance) String() string { return i.class.Name + " instance" }

// Get looks up a field first, then a method (bound to this instance).
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.class.findMethod(name.Lexeme); m != nil {
		return m.bind(i), nil
	}
	return nil, newRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set assigns a field, creating it if absent. Language has no notion of a
// fixed field set: any property may be assigned at any time.
func (i *Instance) Set(name token.Token, value Value) {
	i.fields[name.Lexeme] = value
}
