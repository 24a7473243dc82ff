package sl2z

import (
	"fmt"
	"math"
	"math/big"
)

// Cusp is a point of P^1(Q): a rational number p/q in lowest terms with
// q >= 0, or infinity represented as 1/0. The zero value is invalid;
// construct cusps with NewCusp, Infinity or Zero.
type Cusp struct {
	p, q big.Int
}

// NewCusp returns the cusp p/q in normalized form. (p,0) for any p != 0
// normalizes to infinity; (0,0) is not a projective point and panics.
func NewCusp(p, q int64) Cusp {
	return newCuspBig(big.NewInt(p), big.NewInt(q))
}

// NewCuspBig returns the normalized cusp p/q, copying both arguments.
func NewCuspBig(p, q *big.Int) Cusp {
	return newCuspBig(new(big.Int).Set(p), new(big.Int).Set(q))
}

// newCuspBig normalizes in place and takes ownership of p and q.
func newCuspBig(p, q *big.Int) Cusp {
	if p.Sign() == 0 && q.Sign() == 0 {
		panic("sl2z: cusp 0/0")
	}
	if q.Sign() == 0 {
		p.SetInt64(1)
	} else {
		g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(p), new(big.Int).Abs(q))
		p.Quo(p, g)
		q.Quo(q, g)
		if q.Sign() < 0 {
			p.Neg(p)
			q.Neg(q)
		}
	}
	var v Cusp
	v.p.Set(p)
	v.q.Set(q)
	return v
}

// Infinity returns the cusp at infinity, 1/0.
func Infinity() Cusp { return NewCusp(1, 0) }

// Zero returns the cusp 0 = 0/1.
func Zero() Cusp { return NewCusp(0, 1) }

// P returns a copy of the numerator.
func (v Cusp) P() *big.Int { return new(big.Int).Set(&v.p) }

// Q returns a copy of the denominator (0 for infinity).
func (v Cusp) Q() *big.Int { return new(big.Int).Set(&v.q) }

// IsInfinity reports whether v is the cusp at infinity.
func (v Cusp) IsInfinity() bool { return v.q.Sign() == 0 }

// Equal reports equality of normalized cusps.
func (v Cusp) Equal(w Cusp) bool {
	return v.p.Cmp(&w.p) == 0 && v.q.Cmp(&w.q) == 0
}

// Float returns the cusp as a double, +Inf for infinity.
func (v Cusp) Float() float64 {
	if v.IsInfinity() {
		return math.Inf(1)
	}
	r := new(big.Rat).SetFrac(&v.p, &v.q)
	f, _ := r.Float64()
	return f
}

// Rat returns the cusp as an exact rational, or nil for infinity.
func (v Cusp) Rat() *big.Rat {
	if v.IsInfinity() {
		return nil
	}
	return new(big.Rat).SetFrac(&v.p, &v.q)
}

// Lift returns a matrix N in SL(2,Z) with N(infinity) = v, i.e. with first
// column (p,q). The second column comes from the extended gcd of p and q.
// Lift(infinity) is the identity and Lift(0) is S.
func (v Cusp) Lift() Matrix {
	if v.IsInfinity() {
		return Identity()
	}
	// Find x,y with p*x + q*y = 1; then [[p,-y],[q,x]] has determinant
	// p*x + q*y = 1.
	x, y := new(big.Int), new(big.Int)
	new(big.Int).GCD(x, y, &v.p, &v.q)
	return FromBig(&v.p, new(big.Int).Neg(y), &v.q, x)
}

// String renders the cusp as "oo", an integer, or "p/q".
func (v Cusp) String() string {
	if v.IsInfinity() {
		return "oo"
	}
	if v.q.Cmp(one) == 0 {
		return v.p.String()
	}
	return fmt.Sprintf("%s/%s", v.p.String(), v.q.String())
}
