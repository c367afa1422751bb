// Package scanner converts Language source text into a token stream.
//
// Grounded on the teacher's codecrafters/cmd/lexer.go: a single pass over
// the byte slice with a start/current/line triple, rewritten to report
// through a diagnostics.Sink instead of os.Exit and to support block
// comments and the "break" keyword spec.md adds.
package scanner

import (
	"strconv"

	"github.com/sdecook/glox/internal/diagnostics"
	"github.com/sdecook/glox/internal/token"
)

// Scanner turns source text into a finite ordered token stream.
type Scanner struct {
	src   []byte
	diags *diagnostics.Sink

	start   int
	current int
	line    int

	tokens []token.Token
}

// New returns a Scanner for src that reports through diags.
func New(src string, diags *diagnostics.Sink) *Scanner {
	return &Scanner{src: []byte(src), diags: diags, line: 1}
}

// ScanTokens runs the scanner to completion and returns the token stream,
// always terminated by exactly one EOF token.
func (s *Scanner) ScanTokens() []token.Token {
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.New(token.EOF, "", s.line))
	return s.tokens
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.src[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) addToken(kind token.Kind) {
	s.tokens = append(s.tokens, token.New(kind, string(s.src[s.start:s.current]), s.line))
}

func (s *Scanner) addLiteral(kind token.Kind, lit token.Literal) {
	s.tokens = append(s.tokens, token.WithLiteral(kind, string(s.src[s.start:s.current]), lit, s.line))
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		s.addToken(cond(s.match('='), token.BangEqual, token.Bang))
	case '=':
		s.addToken(cond(s.match('='), token.EqualEqual, token.Equal))
	case '<':
		s.addToken(cond(s.match('='), token.LessEqual, token.Less))
	case '>':
		s.addToken(cond(s.match('='), token.GreaterEqual, token.Greater))
	case '/':
		switch {
		case s.match('/'):
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		case s.match('*'):
			s.blockComment()
		default:
			s.addToken(token.Slash)
		}
	case ' ', '\r', '\t':
		// discard
	case '\n':
		s.line++
	case '"':
		s.string()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.diags.Report(s.line, "", "Unexpected character.")
		}
	}
}

// blockComment consumes a /* ... */ comment; the line counter still
// advances on embedded newlines, per spec.md §4.1.
func (s *Scanner) blockComment() {
	depth := 1
	for depth > 0 && !s.atEnd() {
		switch {
		case s.peek() == '\n':
			s.line++
			s.advance()
		case s.peek() == '*' && s.peekNext() == '/':
			s.advance()
			s.advance()
			depth--
		case s.peek() == '/' && s.peekNext() == '*':
			s.advance()
			s.advance()
			depth++
		default:
			s.advance()
		}
	}
}

func (s *Scanner) string() {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.diags.Report(s.line, "", "Unterminated string.")
		return
	}
	s.advance() // closing quote
	value := string(s.src[s.start+1 : s.current-1])
	s.addLiteral(token.String, token.StringLiteral(value))
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	n, _ := strconv.ParseFloat(string(s.src[s.start:s.current]), 64)
	s.addLiteral(token.Number, token.NumberLiteral(n))
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := string(s.src[s.start:s.current])
	if kind, ok := token.Keywords[text]; ok {
		s.addToken(kind)
		return
	}
	s.addToken(token.Identifier)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }

func cond(b bool, ifTrue, ifFalse token.Kind) token.Kind {
	if b {
		return ifTrue
	}
	return ifFalse
}
