package subgroup

import (
	"math"
	"math/big"

	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// maxReductionSteps caps the strip reduction; points of the upper
// half-plane reduce in far fewer steps.
const maxReductionSteps = 10000

// reduceToStandardStrip maps x+iy into the fundamental domain of the full
// modular group, |x| <= 1/2 and |z| >= 1, returning the reduced point and
// the accumulated transformation.
func reduceToStandardStrip(x, y float64) (float64, float64, sl2z.Matrix, error) {
	a := sl2z.Identity()
	for i := 0; i < maxReductionSteps; i++ {
		n := math.Floor(x + 0.5)
		if n != 0 {
			x -= n
			a = sl2z.TPow(int64(-n)).Mul(a)
		}
		d := x*x + y*y
		if d >= 1 {
			return x, y, a, nil
		}
		x, y = -x/d, y/d
		a = sl2z.S().Mul(a)
	}
	return 0, 0, sl2z.Matrix{}, errors.New(errors.CodeArithmetic,
		"point (%g, %g) did not reduce to the fundamental strip", x, y)
}

// reduceToStandardStripBig is the arbitrary-precision strip reduction at
// the given working precision.
func reduceToStandardStripBig(x, y *big.Float, prec uint) (*big.Float, *big.Float, sl2z.Matrix, error) {
	a := sl2z.Identity()
	xx := new(big.Float).SetPrec(prec).Set(x)
	yy := new(big.Float).SetPrec(prec).Set(y)
	half := big.NewFloat(0.5).SetPrec(prec)
	one := big.NewFloat(1).SetPrec(prec)
	for i := 0; i < maxReductionSteps; i++ {
		n := bigFloatFloor(new(big.Float).SetPrec(prec).Add(xx, half))
		if n.Sign() != 0 {
			xx.Sub(xx, new(big.Float).SetPrec(prec).SetInt(n))
			a = sl2z.TPowBig(new(big.Int).Neg(n)).Mul(a)
		}
		d := new(big.Float).SetPrec(prec).Mul(xx, xx)
		d.Add(d, new(big.Float).SetPrec(prec).Mul(yy, yy))
		if d.Cmp(one) >= 0 {
			return xx, yy, a, nil
		}
		xx.Quo(xx, d)
		xx.Neg(xx)
		yy.Quo(yy, d)
		a = sl2z.S().Mul(a)
	}
	return nil, nil, sl2z.Matrix{}, errors.New(errors.CodeArithmetic,
		"point did not reduce to the fundamental strip")
}

func bigFloatFloor(x *big.Float) *big.Int {
	i, acc := x.Int(nil)
	if x.Sign() < 0 && acc != big.Exact {
		i.Sub(i, big.NewInt(1))
	}
	return i
}

// findReducingElement locates the coset representative V with V*A in the
// subgroup. For Gamma0 groups the membership check is a single congruence
// on the lower-left entry.
func (g *Group) findReducingElement(a sl2z.Matrix) (sl2z.Matrix, error) {
	for _, v := range g.reps {
		b := v.Mul(a)
		if g.Contains(b) {
			return b, nil
		}
	}
	return sl2z.Matrix{}, errors.New(errors.CodeArithmetic,
		"no coset representative reduces %s into the subgroup", a)
}

// Pullback maps x+iy into the fundamental domain of the subgroup in double
// precision: the reduced point and the group element B realizing it are
// returned, with B(x+iy) the reduced point. Gamma0 groups go through the
// same representative search; their gain is that the membership test inside
// it is a single congruence on the lower-left entry.
func (g *Group) Pullback(x, y float64) (float64, float64, sl2z.Matrix, error) {
	if !(y > 0) {
		return 0, 0, sl2z.Matrix{}, errors.New(errors.CodeInvalidFormat,
			"point (%g, %g) is not in the upper half-plane", x, y)
	}
	_, _, a, err := reduceToStandardStrip(x, y)
	if err != nil {
		return 0, 0, sl2z.Matrix{}, err
	}
	b, err := g.findReducingElement(a)
	if err != nil {
		return 0, 0, sl2z.Matrix{}, err
	}
	xr, yr := b.ActOnFloat(x, y)
	return xr, yr, b, nil
}

// PullbackPrec is the arbitrary-precision pullback. Requested precisions of
// 53 bits or less delegate to the double-precision path. The reduction runs
// with a safety margin above the requested precision, and the final point
// is recomputed from the original input with a working precision that also
// accounts for the size of the reducing matrix's entries.
func (g *Group) PullbackPrec(x, y *big.Float, prec uint) (*big.Float, *big.Float, sl2z.Matrix, error) {
	if y.Sign() <= 0 {
		return nil, nil, sl2z.Matrix{}, errors.New(errors.CodeInvalidFormat,
			"point is not in the upper half-plane")
	}
	if prec <= 53 {
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		xr, yr, b, err := g.Pullback(xf, yf)
		if err != nil {
			return nil, nil, sl2z.Matrix{}, err
		}
		return big.NewFloat(xr), big.NewFloat(yr), b, nil
	}

	work := prec + 64
	_, _, a, err := reduceToStandardStripBig(x, y, work)
	if err != nil {
		return nil, nil, sl2z.Matrix{}, err
	}
	b, err := g.findReducingElement(a)
	if err != nil {
		return nil, nil, sl2z.Matrix{}, err
	}
	final := prec + uint(2*b.MaxEntryBitLen()) + 16
	xr, yr := b.ActOnBig(x, y, final)
	return xr.SetPrec(prec), yr.SetPrec(prec), b, nil
}
