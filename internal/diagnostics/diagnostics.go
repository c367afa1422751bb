// Package diagnostics implements the error sink shared by the scanner,
// parser, and resolver, plus the runtime-error reporting used by the
// evaluator.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"
)

// Report is a single compile-time diagnostic: a line, a location
// description, and a message. Where is one of "", "at end", or
// `at "LEXEME"`.
type Report struct {
	Line    int
	Where   string
	Message string
}

func (r Report) String() string {
	if r.Line == 0 {
		return fmt.Sprintf("ERROR: %s", r.Message)
	}
	if r.Where == "" {
		return fmt.Sprintf("[Line %d] ERROR: %s", r.Line, r.Message)
	}
	return fmt.Sprintf("[Line %d] ERROR: %s %s", r.Line, r.Where, r.Message)
}

// Sink accumulates scan/parse/resolve errors without ever aborting, and
// tracks the sticky had-error / had-runtime-error flags spec.md requires.
// Compile-time reports never abort a pass; a runtime error aborts the
// evaluator after being recorded once.
type Sink struct {
	reports    []Report
	runtimeErr error
}

// New returns an empty Sink.
func New() *Sink {
	return &Sink{}
}

// Report records a compile-time diagnostic and sets the had-error flag.
func (s *Sink) Report(line int, where, message string) {
	s.reports = append(s.reports, Report{Line: line, Where: where, Message: message})
}

// RuntimeError records the (single) runtime error that aborted evaluation.
// Only the first call has any effect; spec.md's evaluator abandons all
// statements after the first runtime error, so there is never more than one.
func (s *Sink) RuntimeError(err error) {
	if s.runtimeErr == nil {
		s.runtimeErr = err
	}
}

// HadError reports whether any compile-time diagnostic was recorded.
func (s *Sink) HadError() bool { return len(s.reports) > 0 }

// HadRuntimeError reports whether a runtime error was recorded.
func (s *Sink) HadRuntimeError() bool { return s.runtimeErr != nil }

// RuntimeErr returns the recorded runtime error, or nil.
func (s *Sink) RuntimeErr() error { return s.runtimeErr }

// Reports returns the accumulated compile-time diagnostics in report order.
func (s *Sink) Reports() []Report {
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// SortByLine orders accumulated reports by source line, stable on ties.
// Grounded on nenuphar's scanner.ErrorList.Sort, which renders diagnostics
// from an append-only list in source order regardless of discovery order
// (the resolver may, for example, report a class body error before an
// earlier statement's).
func (s *Sink) SortByLine() {
	sort.SliceStable(s.reports, func(i, j int) bool {
		return s.reports[i].Line < s.reports[j].Line
	})
}

// Reset clears all accumulated state, for REPL lines that must not carry a
// previous line's had-error flag forward.
func (s *Sink) Reset() {
	s.reports = nil
	s.runtimeErr = nil
}

// Render formats every accumulated report, one per line.
func (s *Sink) Render() string {
	var b strings.Builder
	for _, r := range s.reports {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}
