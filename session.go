package gopoly

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Calculator session
// ============================================================

// Selector names one of the two stored expressions.
type Selector int

const (
	Exp1 Selector = 1
	Exp2 Selector = 2
)

func (s Selector) Valid() bool { return s == Exp1 || s == Exp2 }

func (s Selector) String() string {
	if s.Valid() {
		return "Exp" + strconv.Itoa(int(s))
	}
	return fmt.Sprintf("Exp(%d)", int(s))
}

// ParseSelector accepts "1" or "2", ignoring surrounding spaces.
func ParseSelector(s string) (Selector, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !Selector(n).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}
	return Selector(n), nil
}

// Calculator holds two operand expressions and the result of the last
// arithmetic operation. Each polynomial is owned by the calculator; every
// accessor hands out a clone.
//
// A Calculator is not safe for concurrent use.
type Calculator struct {
	exp1   Polynomial
	exp2   Polynomial
	result Polynomial
	log    *slog.Logger
}

type Option func(*Calculator)

// WithLogger sets the logger used for debug tracing. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{log: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Calculator) slot(id Selector) (*Polynomial, error) {
	switch id {
	case Exp1:
		return &c.exp1, nil
	case Exp2:
		return &c.exp2, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidSelector, int(id))
}

// Input replaces both expressions. Both are cleared first; parsing stops
// at the first invalid expression, so a bad s2 still keeps s1.
func (c *Calculator) Input(s1, s2 string) error {
	c.exp1.Clear()
	c.exp2.Clear()
	if err := ParseInto(&c.exp1, s1); err != nil {
		return &ExprError{Selector: Exp1, Err: err}
	}
	if err := ParseInto(&c.exp2, s2); err != nil {
		return &ExprError{Selector: Exp2, Err: err}
	}
	c.log.Debug("expressions loaded", "exp1", c.exp1.String(), "exp2", c.exp2.String())
	return nil
}

// SetExpression parses text into a single slot. On failure the slot is
// left empty.
func (c *Calculator) SetExpression(id Selector, text string) error {
	p, err := c.slot(id)
	if err != nil {
		return err
	}
	if err := ParseInto(p, text); err != nil {
		return &ExprError{Selector: id, Err: err}
	}
	return nil
}

// Read loads Exp1 and Exp2 from the first two lines of the file at path.
// On any failure both expressions are left empty.
func (c *Calculator) Read(path string) error {
	c.exp1.Clear()
	c.exp2.Clear()

	f, err := os.Open(path)
	if err != nil {
		return &IOError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	if err := c.ReadFrom(f); err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return err
	}
	c.log.Debug("expressions read", "path", path)
	return nil
}

// ReadFrom loads Exp1 and Exp2 from the first two lines of r. A trailing
// carriage return on either line is ignored.
func (c *Calculator) ReadFrom(r io.Reader) error {
	c.exp1.Clear()
	c.exp2.Clear()

	sc := bufio.NewScanner(r)
	var lines [2]string
	for i, id := range []Selector{Exp1, Exp2} {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return &IOError{Op: "read", Err: err}
			}
			return &IOError{Op: "read", Err: fmt.Errorf("%w for %s", ErrMissingLine, id)}
		}
		lines[i] = strings.TrimSuffix(sc.Text(), "\r")
	}

	if err := c.Input(lines[0], lines[1]); err != nil {
		c.exp1.Clear()
		c.exp2.Clear()
		return err
	}
	return nil
}

// Display renders both expressions, one per line.
func (c *Calculator) Display() string {
	return fmt.Sprintf("Exp1: %s\nExp2: %s\n", c.exp1.String(), c.exp2.String())
}

// Add recomputes Result = Exp1 + Exp2 and returns its canonical text.
func (c *Calculator) Add() string {
	addInto(&c.result, &c.exp1, &c.exp2)
	c.log.Debug("add", "result", c.result.String())
	return c.result.String()
}

// Sub recomputes Result = Exp1 - Exp2 and returns its canonical text.
func (c *Calculator) Sub() string {
	subInto(&c.result, &c.exp1, &c.exp2)
	c.log.Debug("sub", "result", c.result.String())
	return c.result.String()
}

// Mul recomputes Result = Exp1 * Exp2 and returns its canonical text.
func (c *Calculator) Mul() string {
	mulInto(&c.result, &c.exp1, &c.exp2)
	c.log.Debug("mul", "result", c.result.String(), "terms", c.result.Len())
	return c.result.String()
}

func (c *Calculator) Result() *Polynomial { return c.result.Clone() }

// Expression returns a copy of the selected expression.
func (c *Calculator) Expression(id Selector) (*Polynomial, error) {
	p, err := c.slot(id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Evaluate returns the canonical text of the selected expression and its
// value at x.
func (c *Calculator) Evaluate(id Selector, x int) (string, int, error) {
	p, err := c.slot(id)
	if err != nil {
		return "", 0, err
	}
	return p.String(), Evaluate(p, x), nil
}

// Degree returns the degree of the selected expression, -1 if it is empty.
func (c *Calculator) Degree(id Selector) (int, error) {
	p, err := c.slot(id)
	if err != nil {
		return -1, err
	}
	return p.Degree(), nil
}

// Equal reports whether Exp1 and Exp2 are identical.
func (c *Calculator) Equal() bool { return c.exp1.Equal(&c.exp2) }
