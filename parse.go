package gopoly

import (
	"errors"
	"fmt"
	"math"
)

// ============================================================
// Parser
// ============================================================
//
//	expr := term { ('+' | '-') term }
//	term := digits 'x' '^' digits
//
// Spaces may appear between tokens. Only the first term may omit its sign.

var (
	ErrEmptyExpression     = errors.New("expression has no terms")
	ErrMissingDigits       = errors.New("expected digits")
	ErrMissingX            = errors.New("expected 'x'")
	ErrMissingCaret        = errors.New("expected '^'")
	ErrMissingOperator     = errors.New("expected '+' or '-' between terms")
	ErrCoefficientOverflow = errors.New("integer literal out of range")
)

// ParseError reports where and why an expression was rejected.
type ParseError struct {
	Input  string
	Pos    int
	Reason error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: at offset %d: %v", e.Input, e.Pos, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Reason }

// Parse converts text into a canonical polynomial.
func Parse(text string) (*Polynomial, error) {
	p := &Polynomial{}
	if err := ParseInto(p, text); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseInto clears p and fills it from text. On failure p is left empty.
func ParseInto(p *Polynomial, text string) error {
	p.Clear()
	ps := parser{src: text}
	if err := ps.parse(p); err != nil {
		p.Clear()
		return err
	}
	return nil
}

type parser struct {
	src string
	pos int
}

func (ps *parser) fail(reason error) error {
	return &ParseError{Input: ps.src, Pos: ps.pos, Reason: reason}
}

func (ps *parser) skipSpaces() {
	for ps.pos < len(ps.src) && ps.src[ps.pos] == ' ' {
		ps.pos++
	}
}

// peek returns the current byte, or 0 at end of input.
func (ps *parser) peek() byte {
	if ps.pos < len(ps.src) {
		return ps.src[ps.pos]
	}
	return 0
}

func (ps *parser) expect(c byte, reason error) error {
	if ps.peek() != c {
		return ps.fail(reason)
	}
	ps.pos++
	return nil
}

// number reads a non-empty run of ASCII digits.
func (ps *parser) number() (int, error) {
	start := ps.pos
	n := 0
	for ps.pos < len(ps.src) && isDigit(ps.src[ps.pos]) {
		d := int(ps.src[ps.pos] - '0')
		if n > (math.MaxInt-d)/10 {
			ps.pos = start
			return 0, ps.fail(ErrCoefficientOverflow)
		}
		n = n*10 + d
		ps.pos++
	}
	if ps.pos == start {
		return 0, ps.fail(ErrMissingDigits)
	}
	return n, nil
}

func (ps *parser) parse(p *Polynomial) error {
	first := true
	for {
		ps.skipSpaces()
		if ps.pos >= len(ps.src) {
			break
		}

		sign := 1
		switch c := ps.peek(); {
		case c == '+' || c == '-':
			if c == '-' {
				sign = -1
			}
			ps.pos++
		case !first:
			return ps.fail(ErrMissingOperator)
		}
		ps.skipSpaces()

		coef, err := ps.number()
		if err != nil {
			return err
		}
		ps.skipSpaces()
		if err := ps.expect('x', ErrMissingX); err != nil {
			return err
		}
		ps.skipSpaces()
		if err := ps.expect('^', ErrMissingCaret); err != nil {
			return err
		}
		ps.skipSpaces()
		expo, err := ps.number()
		if err != nil {
			return err
		}
		p.Insert(sign*coef, expo)
		first = false

		ps.skipSpaces()
		if c := ps.peek(); ps.pos < len(ps.src) && c != '+' && c != '-' {
			return ps.fail(ErrMissingOperator)
		}
	}
	// Also covers input whose terms all cancelled out.
	if p.IsZero() {
		return ps.fail(ErrEmptyExpression)
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
