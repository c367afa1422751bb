// Package interp is the tree-walking evaluator: it executes a resolved
// ast.Program directly, without compiling to any intermediate bytecode.
//
// Grounded on the teacher's codecrafters/cmd/interpreter.go and object.go,
// consolidated here into one consistent design (the teacher's checked-in
// evaluate.go/interpreter.go/run.go disagree on whether evaluation threads
// an *Environment or an *Interpreter through recursive calls; this package
// picks the Interpreter-threaded design and applies it uniformly), and on
// other_examples/letung3105-lox's error-return Visitor, which returns
// (Value, error) instead of panicking on a runtime fault.
package interp

import (
	"fmt"
	"math"
	"strconv"
)

// Value is any Language runtime value: nil, bool, float64, string,
// Callable, or *Instance.
type Value any

// IsTruthy implements spec.md's truthiness rule: nil and false are falsey,
// everything else (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Equal implements spec.md's equality rule: values of different dynamic
// types are never equal (no implicit numeric/string coercion), nil equals
// only nil, and otherwise Go's == applies.
func Equal(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	an, aIsNum := a.(float64)
	bn, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return an == bn
	}
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return as == bs
	}
	ab, aIsBool := a.(bool)
	bb, bIsBool := b.(bool)
	if aIsBool && bIsBool {
		return ab == bb
	}
	return a == b
}

// Stringify renders v the way `print` and the REPL do.
func Stringify(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'f', 0, 64)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
