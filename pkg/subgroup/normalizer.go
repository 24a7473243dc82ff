package subgroup

import (
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// NormalizerOrder describes whether the normalizer of a cusp normalizes the
// whole group with finite order, as an Atkin-Lehner-type involution does.
// Order 0 means no finite order was found within the level bound; this is
// inconclusive, not a proof of non-existence.
type NormalizerOrder struct {
	// Order is the least k >= 1 with the k-th power of the normalizer in
	// the group, 0 when none was found.
	Order int
	// Twist is the lower-right entry of that power, the factor picked up
	// by characters under conjugation.
	Twist int64
}

// NormalizerOrders returns the Atkin-Lehner detection table, one entry per
// cusp. Only groups of Gamma0 shape are analyzed; for all others every
// entry is the zero value. Computed once and memoized.
func (g *Group) NormalizerOrders() []NormalizerOrder {
	g.normOnce.Do(func() {
		g.normTab = make([]NormalizerOrder, len(g.cusps))
		if g.level == 0 {
			return
		}
		for j := range g.cusps {
			g.normTab[j] = g.normalizerOrderGamma0(j)
		}
	})
	out := make([]NormalizerOrder, len(g.normTab))
	copy(out, g.normTab)
	return out
}

func (g *Group) normalizerOrderGamma0(j int) NormalizerOrder {
	l := g.level
	norm := g.cusps[j].Normalizer
	a := norm.A().Int64()
	b := norm.B().Int64()
	c := norm.C().Int64()
	d := norm.D().Int64()

	if j == 0 {
		// The cusp at infinity is normalized by the identity.
		return NormalizerOrder{Order: 1, Twist: 1}
	}
	if j == 1 {
		if a == 0 && b*c == -1 && d == 0 {
			return NormalizerOrder{Order: 2, Twist: 1}
		}
		g.logger.Warn("normalizer of the cusp 0 is not the Fricke involution", "normalizer", norm.String())
		return NormalizerOrder{}
	}

	w := int64(g.cusps[j].Width)

	// Direct Atkin-Lehner involution: the normalizer scaled by the width.
	aa := a * w
	cc := c * w
	if cc == l && aa != 0 && l%aa == 0 && aa*d-b*cc == aa {
		return NormalizerOrder{Order: 2, Twist: d}
	}

	// Divisor-based candidate Q = level*p/q for the cusp p/q: an
	// Atkin-Lehner involution needs Q | level and gcd(Q, level/Q) = 1,
	// plus a unimodularity condition on the rescaled normalizer.
	p := g.cusps[j].Point.P().Int64()
	q := g.cusps[j].Point.Q().Int64()
	if q != 0 && (l*p)%q == 0 {
		quo := l * p / q
		qa := quo
		if qa < 0 {
			qa = -qa
		}
		if qa > 0 && l%qa == 0 && gcd64(qa, l/qa) == 1 {
			fak := lcm64(a, quo)
			faa, fbb, fcc, fdd := fak*a, fak*b, fak*c, fak*d
			if faa%quo == 0 && fdd%quo == 0 && fcc%l == 0 && faa*fdd-fbb*fcc == quo {
				nk := norm
				for k := 2; k < int(l); k++ {
					nk = nk.Mul(norm)
					if g.Contains(nk) {
						return NormalizerOrder{Order: k, Twist: nk.D().Int64()}
					}
				}
				g.logger.Warn("cusp normalizer appears to have infinite order",
					"cusp", g.cusps[j].Point.String(), "normalizer", norm.String())
			}
		}
	}
	return NormalizerOrder{}
}

func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	l := a / gcd64(a, b) * b
	if l < 0 {
		return -l
	}
	return l
}

// IsNormalizer reports whether conjugation by a maps every generator of the
// group back into the group.
func (g *Group) IsNormalizer(a sl2z.Matrix) bool {
	ai := a.Inverse()
	for _, x := range g.Generators() {
		if !g.Contains(a.Mul(x).Mul(ai)) {
			return false
		}
	}
	return true
}
