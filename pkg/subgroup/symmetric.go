package subgroup

import (
	"math/big"

	"github.com/halfplane/modgroup/pkg/perm"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// IsSymmetric reports whether the group is fixed by the reflection
// z -> -conj(z). Congruence subgroups always are. For a generic group the
// reflected generating pair is (permS, permS*permR^2*permS); the group is
// symmetric when a relabelling fixing 1 conjugates the original pair onto
// it. Transitivity forces such a relabelling to be unique, so a breadth
// first propagation from 1 either completes it or finds a contradiction.
func (g *Group) IsSymmetric() bool {
	g.symOnce.Do(func() {
		if cong, err := g.IsCongruence(); err == nil && cong {
			g.symVal = true
			g.symMap = perm.Identity(g.index)
			return
		}
		pR2 := g.pS.Mul(g.pR.Pow(2)).Mul(g.pS)
		g.symVal, g.symMap = conjugatingFixingOne(g.pS, g.pR, g.pS, pR2)
	})
	return g.symVal
}

// SymmetryMap returns the coset relabelling realizing the reflection
// symmetry, and whether the group is symmetric at all.
func (g *Group) SymmetryMap() (perm.Perm, bool) {
	if !g.IsSymmetric() {
		return perm.Identity(g.index), false
	}
	return g.symMap, true
}

// conjugatingFixingOne looks for sigma with sigma(1) = 1,
// sigma(p1(x)) = p2(sigma(x)) and sigma(q1(x)) = q2(sigma(x)) for all x.
// The images propagate from 1 along words in the generators; a clash means
// no such sigma exists.
func conjugatingFixingOne(p1, q1, p2, q2 perm.Perm) (bool, perm.Perm) {
	n := p1.Len()
	img := make([]int, n+1)
	img[1] = 1
	queue := []int{1}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		pairs := [][2]int{
			{p1.On(x), p2.On(img[x])},
			{q1.On(x), q2.On(img[x])},
		}
		for _, pr := range pairs {
			from, to := pr[0], pr[1]
			if img[from] == 0 {
				img[from] = to
				queue = append(queue, from)
			} else if img[from] != to {
				return false, perm.Identity(n)
			}
		}
	}
	sigma, err := perm.New(img[1:])
	if err != nil {
		return false, perm.Identity(n)
	}
	return true, sigma
}

// SymmetrizableCusp reports whether cusp j can be symmetrized under the
// reflection: for Gamma0(N) the level must divide twice the product of the
// normalizer's bottom-row entries; otherwise, for a symmetric group, the
// conjugated parabolic [[ad+bc, -2ab], [-2dc, ad+bc]] must be a member.
func (g *Group) SymmetrizableCusp(j int) bool {
	g.symzOnce.Do(func() {
		g.symzTab = make([]bool, len(g.cusps))
		for i := range g.cusps {
			g.symzTab[i] = g.symmetrizable(i)
		}
	})
	if j < 0 || j >= len(g.symzTab) {
		return false
	}
	return g.symzTab[j]
}

func (g *Group) symmetrizable(j int) bool {
	norm := g.cusps[j].Normalizer
	c, d := norm.C(), norm.D()
	if g.level > 0 {
		dc := new(big.Int).Mul(c, d)
		dc.Lsh(dc, 1)
		return dc.Mod(dc, big.NewInt(g.level)).Sign() == 0
	}
	if !g.IsSymmetric() {
		return false
	}
	a, b := norm.A(), norm.B()
	diag := new(big.Int).Mul(a, d)
	diag.Add(diag, new(big.Int).Mul(b, c))
	ab := new(big.Int).Mul(a, b)
	ab.Lsh(ab, 1)
	ab.Neg(ab)
	dc := new(big.Int).Mul(d, c)
	dc.Lsh(dc, 1)
	dc.Neg(dc)
	m := sl2z.FromBig(diag, ab, dc, diag)
	return g.Contains(m)
}
