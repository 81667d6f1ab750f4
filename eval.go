package gopoly

// Evaluate returns p(x). Intermediate results use native int arithmetic
// and wrap on overflow.
func Evaluate(p *Polynomial, x int) int {
	sum := 0
	for _, t := range p.terms {
		sum += t.Coef * ipow(x, t.Expo)
	}
	return sum
}

func (p *Polynomial) Eval(x int) int { return Evaluate(p, x) }

// ipow computes base^exp for exp >= 0 by repeated squaring. Wrapped
// results match naive repeated multiplication.
func ipow(base, exp int) int {
	r := 1
	for exp > 0 {
		if exp&1 == 1 {
			r *= base
		}
		base *= base
		exp >>= 1
	}
	return r
}
