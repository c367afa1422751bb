package interp

import (
	"time"

	"github.com/sdecook/glox/internal/token"
)

// clockBuiltin implements the single native function spec.md requires:
// `clock()` returns seconds since the Unix epoch as a float64.
type clockBuiltin struct{}

func (clockBuiltin) Arity() int { return 0 }

func (clockBuiltin) Call(_ *Interpreter, _ token.Token, _ []Value) (Value, error) {
	return float64(time.Now().UnixNano()) / 1e9, nil
}

func (clockBuiltin) String() string { return "<native fn clock>" }

func defineGlobals(env *Environment) {
	env.Define("clock", clockBuiltin{})
}
