// Package gopoly is a small calculator kernel for single-variable integer
// polynomials.
//
// A Polynomial is kept in canonical form at all times:
//   - terms are ordered by strictly decreasing exponent
//   - no two terms share an exponent
//   - no term has a zero coefficient
//
// The empty polynomial is the zero polynomial and renders as "0".
package gopoly

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Term
// ============================================================

// Term is a single coef·x^expo monomial.
type Term struct {
	Coef int `json:"coef"`
	Expo int `json:"expo"`
}

func (t Term) String() string {
	return fmt.Sprintf("%+dx^%d", t.Coef, t.Expo)
}

// ============================================================
// Polynomial
// ============================================================

// Polynomial is an ordered sequence of non-zero terms, descending by
// exponent. The zero value is the zero polynomial and is ready to use.
//
// A Polynomial is not safe for concurrent mutation.
type Polynomial struct {
	terms []Term
}

// New builds a polynomial by inserting every term in order, so duplicates
// are merged and zero terms dropped.
func New(terms ...Term) *Polynomial {
	p := &Polynomial{}
	for _, t := range terms {
		p.Insert(t.Coef, t.Expo)
	}
	return p
}

// Insert adds coef·x^expo, merging with an existing term of the same
// exponent. A merge that sums to zero removes the term.
func (p *Polynomial) Insert(coef, expo int) {
	if coef == 0 {
		return
	}
	if expo < 0 {
		panic("gopoly: negative exponent")
	}
	// first index whose exponent is <= expo
	i := 0
	for i < len(p.terms) && p.terms[i].Expo > expo {
		i++
	}
	if i < len(p.terms) && p.terms[i].Expo == expo {
		p.terms[i].Coef += coef
		if p.terms[i].Coef == 0 {
			p.terms = append(p.terms[:i], p.terms[i+1:]...)
		}
		return
	}
	p.terms = append(p.terms, Term{})
	copy(p.terms[i+1:], p.terms[i:])
	p.terms[i] = Term{Coef: coef, Expo: expo}
}

// Clear resets p to the zero polynomial.
func (p *Polynomial) Clear() {
	p.terms = nil
}

func (p *Polynomial) Len() int     { return len(p.terms) }
func (p *Polynomial) IsZero() bool { return len(p.terms) == 0 }

// Terms returns a copy of the terms in canonical order.
func (p *Polynomial) Terms() []Term {
	if len(p.terms) == 0 {
		return nil
	}
	out := make([]Term, len(p.terms))
	copy(out, p.terms)
	return out
}

// Coef returns the coefficient of x^expo, or 0 if there is no such term.
func (p *Polynomial) Coef(expo int) int {
	for _, t := range p.terms {
		if t.Expo == expo {
			return t.Coef
		}
		if t.Expo < expo {
			break
		}
	}
	return 0
}

func (p *Polynomial) Clone() *Polynomial {
	return &Polynomial{terms: p.Terms()}
}

// Degree returns the largest exponent, or -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	if len(p.terms) == 0 {
		return -1
	}
	return p.terms[0].Expo
}

// Equal reports whether both polynomials hold the same terms in the same
// order. Canonical form makes this the same as mathematical equality.
func (p *Polynomial) Equal(other *Polynomial) bool {
	if len(p.terms) != len(other.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i] != other.terms[i] {
			return false
		}
	}
	return true
}

// String renders the canonical text form, e.g. "+4x^3 -6x^1 +8x^0".
func (p *Polynomial) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.terms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if t.Coef >= 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(strconv.Itoa(t.Coef))
		sb.WriteString("x^")
		sb.WriteString(strconv.Itoa(t.Expo))
	}
	return sb.String()
}

// LaTeX renders p in conventional math notation: unit coefficients and
// exponents are elided, x^0 is dropped.
func (p *Polynomial) LaTeX() string {
	if len(p.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.terms {
		c := t.Coef
		switch {
		case i == 0 && c < 0:
			sb.WriteByte('-')
			c = -c
		case i > 0 && c < 0:
			sb.WriteString(" - ")
			c = -c
		case i > 0:
			sb.WriteString(" + ")
		}
		if c != 1 || t.Expo == 0 {
			sb.WriteString(strconv.Itoa(c))
		}
		switch t.Expo {
		case 0:
		case 1:
			sb.WriteByte('x')
		default:
			fmt.Fprintf(&sb, "x^{%d}", t.Expo)
		}
	}
	return sb.String()
}

type polyJSON struct {
	Terms []Term `json:"terms"`
}

func (p *Polynomial) MarshalJSON() ([]byte, error) {
	terms := p.terms
	if terms == nil {
		terms = []Term{}
	}
	return json.Marshal(polyJSON{Terms: terms})
}

// UnmarshalJSON re-inserts every decoded term, so input in any order with
// duplicates or zeros still yields canonical form.
func (p *Polynomial) UnmarshalJSON(data []byte) error {
	var raw polyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Clear()
	for i, t := range raw.Terms {
		if t.Expo < 0 {
			p.Clear()
			return fmt.Errorf("terms[%d]: negative exponent %d", i, t.Expo)
		}
		p.Insert(t.Coef, t.Expo)
	}
	return nil
}
