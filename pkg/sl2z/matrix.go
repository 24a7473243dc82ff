// Package sl2z provides 2x2 unimodular integer matrices and cusp values.
//
// A Matrix is an element of SL(2,Z): integer entries [[a,b],[c,d]] with
// determinant ad-bc = 1, acting on the upper half-plane by fractional-linear
// transformations z -> (az+b)/(cz+d). Entries are arbitrary-precision
// (math/big), because pullback at high precision produces words in the
// generators whose entries overflow machine integers.
//
// The two standard generators are fixed constants:
//
//	S = [[0,-1],[1,0]]   (inversion z -> -1/z)
//	T = [[1,1],[0,1]]    (translation z -> z+1)
//
// Matrices are immutable: every operation allocates its result and no method
// mutates a receiver. The group acts projectively, so A and -A represent the
// same transformation; EqualUpToSign is the projective equality test.
package sl2z

import (
	"fmt"
	"math"
	"math/big"

	"github.com/halfplane/modgroup/pkg/errors"
)

// Matrix is an integer matrix [[a,b],[c,d]]. Construct with New, FromBig or
// the generator constructors; the zero value is the zero matrix and is not a
// group element.
type Matrix struct {
	a, b, c, d big.Int
}

// New returns the matrix [[a,b],[c,d]] from machine integers.
func New(a, b, c, d int64) Matrix {
	var m Matrix
	m.a.SetInt64(a)
	m.b.SetInt64(b)
	m.c.SetInt64(c)
	m.d.SetInt64(d)
	return m
}

// FromBig returns the matrix [[a,b],[c,d]], copying all entries.
func FromBig(a, b, c, d *big.Int) Matrix {
	var m Matrix
	m.a.Set(a)
	m.b.Set(b)
	m.c.Set(c)
	m.d.Set(d)
	return m
}

// Identity returns the identity matrix.
func Identity() Matrix { return New(1, 0, 0, 1) }

// S returns the inversion generator [[0,-1],[1,0]].
func S() Matrix { return New(0, -1, 1, 0) }

// T returns the translation generator [[1,1],[0,1]].
func T() Matrix { return New(1, 1, 0, 1) }

// TPow returns T^k = [[1,k],[0,1]].
func TPow(k int64) Matrix { return New(1, k, 0, 1) }

// TPowBig returns T^k for an arbitrary-precision exponent.
func TPowBig(k *big.Int) Matrix {
	var m Matrix
	m.a.SetInt64(1)
	m.b.Set(k)
	m.d.SetInt64(1)
	return m
}

// R returns S*T = [[0,-1],[1,1]], the standard order-3 generator.
func R() Matrix { return New(0, -1, 1, 1) }

// A returns a copy of the top-left entry.
func (m Matrix) A() *big.Int { return new(big.Int).Set(&m.a) }

// B returns a copy of the top-right entry.
func (m Matrix) B() *big.Int { return new(big.Int).Set(&m.b) }

// C returns a copy of the bottom-left entry.
func (m Matrix) C() *big.Int { return new(big.Int).Set(&m.c) }

// D returns a copy of the bottom-right entry.
func (m Matrix) D() *big.Int { return new(big.Int).Set(&m.d) }

// Det returns the determinant ad - bc.
func (m Matrix) Det() *big.Int {
	ad := new(big.Int).Mul(&m.a, &m.d)
	bc := new(big.Int).Mul(&m.b, &m.c)
	return ad.Sub(ad, bc)
}

// Validate returns an INVALID_FORMAT error unless det(m) = 1.
func (m Matrix) Validate() error {
	if m.Det().Cmp(one) != 0 {
		return errors.New(errors.CodeInvalidFormat, "matrix %s has determinant %s, want 1", m, m.Det())
	}
	return nil
}

var one = big.NewInt(1)

// Mul returns the matrix product m*n.
func (m Matrix) Mul(n Matrix) Matrix {
	var r Matrix
	var t1, t2 big.Int
	r.a.Add(t1.Mul(&m.a, &n.a), t2.Mul(&m.b, &n.c))
	r.b.Add(new(big.Int).Mul(&m.a, &n.b), new(big.Int).Mul(&m.b, &n.d))
	r.c.Add(new(big.Int).Mul(&m.c, &n.a), new(big.Int).Mul(&m.d, &n.c))
	r.d.Add(new(big.Int).Mul(&m.c, &n.b), new(big.Int).Mul(&m.d, &n.d))
	return r
}

// Inverse returns m^-1 = [[d,-b],[-c,a]], valid for determinant 1.
func (m Matrix) Inverse() Matrix {
	var r Matrix
	r.a.Set(&m.d)
	r.b.Neg(&m.b)
	r.c.Neg(&m.c)
	r.d.Set(&m.a)
	return r
}

// Neg returns -m, the same projective element.
func (m Matrix) Neg() Matrix {
	var r Matrix
	r.a.Neg(&m.a)
	r.b.Neg(&m.b)
	r.c.Neg(&m.c)
	r.d.Neg(&m.d)
	return r
}

// Pow returns m^k. Negative k inverts first.
func (m Matrix) Pow(k int) Matrix {
	if k < 0 {
		return m.Inverse().Pow(-k)
	}
	res := Identity()
	base := m
	for k > 0 {
		if k&1 == 1 {
			res = res.Mul(base)
		}
		base = base.Mul(base)
		k >>= 1
	}
	return res
}

// Equal reports entrywise equality.
func (m Matrix) Equal(n Matrix) bool {
	return m.a.Cmp(&n.a) == 0 && m.b.Cmp(&n.b) == 0 &&
		m.c.Cmp(&n.c) == 0 && m.d.Cmp(&n.d) == 0
}

// EqualUpToSign reports whether m = n or m = -n, i.e. equality in PSL(2,Z).
func (m Matrix) EqualUpToSign(n Matrix) bool {
	return m.Equal(n) || m.Equal(n.Neg())
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix) IsIdentity() bool { return m.Equal(Identity()) }

// IsProjectiveIdentity reports whether m is the identity up to sign.
func (m Matrix) IsProjectiveIdentity() bool { return m.EqualUpToSign(Identity()) }

// LowerLeftDivisibleBy reports whether N divides the bottom-left entry,
// the membership test for Gamma0(N).
func (m Matrix) LowerLeftDivisibleBy(n int64) bool {
	if n == 0 {
		return m.c.Sign() == 0
	}
	r := new(big.Int).Mod(&m.c, big.NewInt(n))
	return r.Sign() == 0
}

// ActOnFloat applies the fractional-linear action to x+iy in double
// precision: returns the real and imaginary part of (a z + b)/(c z + d).
// The imaginary part stays positive for y > 0.
func (m Matrix) ActOnFloat(x, y float64) (float64, float64) {
	a, _ := new(big.Float).SetInt(&m.a).Float64()
	b, _ := new(big.Float).SetInt(&m.b).Float64()
	c, _ := new(big.Float).SetInt(&m.c).Float64()
	d, _ := new(big.Float).SetInt(&m.d).Float64()
	den := (c*x+d)*(c*x+d) + c*c*y*y
	xr := ((a*x + b) * (c*x + d) + a*c*y*y) / den
	yr := y / den
	return xr, yr
}

// ActOnBig applies the fractional-linear action to x+iy at the given
// binary precision. Inputs are not mutated.
func (m Matrix) ActOnBig(x, y *big.Float, prec uint) (*big.Float, *big.Float) {
	fa := new(big.Float).SetPrec(prec).SetInt(&m.a)
	fb := new(big.Float).SetPrec(prec).SetInt(&m.b)
	fc := new(big.Float).SetPrec(prec).SetInt(&m.c)
	fd := new(big.Float).SetPrec(prec).SetInt(&m.d)

	cxd := new(big.Float).SetPrec(prec).Mul(fc, x)
	cxd.Add(cxd, fd) // cx + d
	cy := new(big.Float).SetPrec(prec).Mul(fc, y)

	den := new(big.Float).SetPrec(prec).Mul(cxd, cxd)
	den.Add(den, new(big.Float).SetPrec(prec).Mul(cy, cy))

	axb := new(big.Float).SetPrec(prec).Mul(fa, x)
	axb.Add(axb, fb) // ax + b
	ay := new(big.Float).SetPrec(prec).Mul(fa, y)

	// Re = (ax+b)(cx+d) + ac y^2, Im = y (ad - bc) = y.
	num := new(big.Float).SetPrec(prec).Mul(axb, cxd)
	num.Add(num, new(big.Float).SetPrec(prec).Mul(ay, cy))

	xr := num.Quo(num, den)
	yr := new(big.Float).SetPrec(prec).Quo(y, den)
	return xr, yr
}

// ActOnCusp applies m to a cusp value: p/q maps to (ap+bq)/(cp+dq),
// with infinity handled as 1/0.
func (m Matrix) ActOnCusp(v Cusp) Cusp {
	p := new(big.Int).Add(new(big.Int).Mul(&m.a, &v.p), new(big.Int).Mul(&m.b, &v.q))
	q := new(big.Int).Add(new(big.Int).Mul(&m.c, &v.p), new(big.Int).Mul(&m.d, &v.q))
	return newCuspBig(p, q)
}

// ImagAfter returns the imaginary part of m(x+iy) in double precision.
func (m Matrix) ImagAfter(x, y float64) float64 {
	c, _ := new(big.Float).SetInt(&m.c).Float64()
	d, _ := new(big.Float).SetInt(&m.d).Float64()
	den := (c*x+d)*(c*x+d) + c*c*y*y
	if den == 0 {
		return math.Inf(1)
	}
	return y / den
}

// MaxEntryBitLen returns the largest bit length among the four entries,
// used to size working precision for high-precision pullback.
func (m Matrix) MaxEntryBitLen() int {
	n := m.a.BitLen()
	if l := m.b.BitLen(); l > n {
		n = l
	}
	if l := m.c.BitLen(); l > n {
		n = l
	}
	if l := m.d.BitLen(); l > n {
		n = l
	}
	return n
}

// String renders the matrix as "[a b; c d]".
func (m Matrix) String() string {
	return fmt.Sprintf("[%s %s; %s %s]", m.a.String(), m.b.String(), m.c.String(), m.d.String())
}
