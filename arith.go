package gopoly

// ============================================================
// Arithmetic
// ============================================================
//
// Every operation reads its operands without modifying them and builds a
// fresh result. Add and Sub walk both operands in lock-step, relying on the
// descending-exponent order; Mul forms the full cross product and lets
// Insert collect like terms.

// Add returns a + b.
func Add(a, b *Polynomial) *Polynomial {
	r := &Polynomial{}
	addInto(r, a, b)
	return r
}

// Sub returns a - b.
func Sub(a, b *Polynomial) *Polynomial {
	r := &Polynomial{}
	subInto(r, a, b)
	return r
}

// Mul returns a * b.
func Mul(a, b *Polynomial) *Polynomial {
	r := &Polynomial{}
	mulInto(r, a, b)
	return r
}

// Neg returns -p.
func Neg(p *Polynomial) *Polynomial {
	return Sub(&Polynomial{}, p)
}

func addInto(dst, a, b *Polynomial) { mergeInto(dst, a, b, 1) }
func subInto(dst, a, b *Polynomial) { mergeInto(dst, a, b, -1) }

// mergeInto clears dst and fills it with a + sign*b. dst must not alias
// either operand.
func mergeInto(dst, a, b *Polynomial, sign int) {
	dst.Clear()
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		ta, tb := a.terms[i], b.terms[j]
		switch {
		case ta.Expo == tb.Expo:
			dst.push(ta.Coef+sign*tb.Coef, ta.Expo)
			i++
			j++
		case ta.Expo > tb.Expo:
			dst.push(ta.Coef, ta.Expo)
			i++
		default:
			dst.push(sign*tb.Coef, tb.Expo)
			j++
		}
	}
	for ; i < len(a.terms); i++ {
		dst.push(a.terms[i].Coef, a.terms[i].Expo)
	}
	for ; j < len(b.terms); j++ {
		dst.push(sign*b.terms[j].Coef, b.terms[j].Expo)
	}
}

// push appends a term known to be below every stored exponent, keeping the
// merge linear.
func (p *Polynomial) push(coef, expo int) {
	if coef == 0 {
		return
	}
	p.terms = append(p.terms, Term{Coef: coef, Expo: expo})
}

// mulInto clears dst and fills it with a * b. Cost is O(|a|·|b|) inserts,
// each linear in the size of the result. A product term whose exponent
// does not fit in an int is dropped; coefficients wrap.
func mulInto(dst, a, b *Polynomial) {
	dst.Clear()
	for _, ta := range a.terms {
		for _, tb := range b.terms {
			expo := ta.Expo + tb.Expo
			if expo < 0 {
				continue
			}
			dst.Insert(ta.Coef*tb.Coef, expo)
		}
	}
}
