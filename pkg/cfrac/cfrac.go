// Package cfrac implements nearest-integer continued fractions and the
// induced factorization of unimodular matrices into the generators S and T.
//
// The expansion of x repeatedly takes the nearest integer n = floor(x + 1/2)
// and replaces x by -1/(x - n), so partial quotients after the first have
// absolute value at least 2. A rational input terminates exactly; real inputs
// are cut off after a configurable number of terms.
//
// A coefficient sequence [a0, a1, ..., an] stands for the matrix product
// T^a0 * S * T^a1 * S * ... * S * T^an. Factor inverts Build up to an overall
// sign: any A in SL(2,Z) factors as sign * Build(coeffs).
package cfrac

import (
	"math"
	"math/big"

	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// DefaultMaxTerms bounds the expansion of non-terminating (real) inputs.
const DefaultMaxTerms = 100

var (
	oneHalf = big.NewRat(1, 2)
	two     = big.NewInt(2)
)

// NearestRat returns the nearest integer to x, with exact halves rounding up:
// floor(x + 1/2).
func NearestRat(x *big.Rat) *big.Int {
	// floor((2p + q) / 2q) with q > 0.
	num := new(big.Int).Mul(two, x.Num())
	num.Add(num, x.Denom())
	den := new(big.Int).Mul(two, x.Denom())
	return num.Div(num, den)
}

// ExpandRat returns the nearest-integer continued fraction of a rational.
// The expansion always terminates: the denominators strictly decrease.
func ExpandRat(x *big.Rat) []*big.Int {
	var cf []*big.Int
	r := new(big.Rat).Set(x)
	for {
		n := NearestRat(r)
		cf = append(cf, n)
		r.Sub(r, new(big.Rat).SetInt(n))
		if r.Sign() == 0 {
			return cf
		}
		r.Inv(r)
		r.Neg(r)
	}
}

// ExpandFloat returns up to maxTerms partial quotients of x in double
// precision. maxTerms <= 0 selects DefaultMaxTerms.
func ExpandFloat(x float64, maxTerms int) []int64 {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	var cf []int64
	for len(cf) < maxTerms {
		n := math.Floor(x + 0.5)
		cf = append(cf, int64(n))
		d := x - n
		if d == 0 {
			break
		}
		x = -1 / d
	}
	return cf
}

// ExpandBigFloat returns up to maxTerms partial quotients of x at its own
// precision. maxTerms <= 0 selects DefaultMaxTerms.
func ExpandBigFloat(x *big.Float, maxTerms int) []*big.Int {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	prec := x.Prec()
	var cf []*big.Int
	r := new(big.Float).SetPrec(prec).Set(x)
	half := new(big.Float).SetPrec(prec).SetRat(oneHalf)
	for len(cf) < maxTerms {
		n := bigFloor(new(big.Float).SetPrec(prec).Add(r, half))
		cf = append(cf, n)
		r.Sub(r, new(big.Float).SetPrec(prec).SetInt(n))
		if r.Sign() == 0 {
			break
		}
		r.Quo(new(big.Float).SetPrec(prec).SetInt64(-1), r)
	}
	return cf
}

// bigFloor returns floor(x) as an integer.
func bigFloor(x *big.Float) *big.Int {
	i, acc := x.Int(nil)
	if x.Sign() < 0 && acc != big.Exact {
		i.Sub(i, big.NewInt(1))
	}
	return i
}

// Build returns the matrix T^a0 * S * T^a1 * ... * S * T^an for the
// coefficient sequence. An empty sequence gives the identity.
func Build(cf []*big.Int) sl2z.Matrix {
	if len(cf) == 0 {
		return sl2z.Identity()
	}
	m := sl2z.TPowBig(cf[0])
	s := sl2z.S()
	for _, a := range cf[1:] {
		m = m.Mul(s).Mul(sl2z.TPowBig(a))
	}
	return m
}

// BuildInt64 is Build for machine-integer coefficients.
func BuildInt64(cf []int64) sl2z.Matrix {
	bs := make([]*big.Int, len(cf))
	for i, a := range cf {
		bs[i] = big.NewInt(a)
	}
	return Build(bs)
}

// Factor expresses A as sign * T^a0 * S * T^a1 * ... * S * T^an, using the
// nearest-integer continued fraction of the ratio of first-column entries.
// The reconstruction is verified termwise; a mismatch reports a
// FACTORIZATION error.
func Factor(a sl2z.Matrix) ([]*big.Int, int, error) {
	if a.C().Sign() == 0 {
		// A = [[e, b],[0, e]] with e = +-1, so A = e * T^(e*b).
		e := int(a.A().Int64())
		return []*big.Int{new(big.Int).Mul(a.A(), a.B())}, e, nil
	}
	x := new(big.Rat).SetFrac(a.A(), a.C())
	cf := ExpandRat(x)
	b := Build(cf)

	// A(oo) = B*S(oo), so A and B*S differ by a translation: S^-1 B^-1 A = +-T^j.
	tj := sl2z.S().Inverse().Mul(b.Inverse()).Mul(a)
	j := new(big.Int).Mul(tj.A(), tj.B())
	cf = append(cf, j)

	c := b.Mul(sl2z.S()).Mul(sl2z.TPowBig(j))
	switch {
	case c.Equal(a):
		return cf, 1, nil
	case c.Equal(a.Neg()):
		return cf, -1, nil
	}
	return nil, 0, errors.New(errors.CodeFactorization, "could not factor matrix %s: reconstructed %s", a, c)
}
