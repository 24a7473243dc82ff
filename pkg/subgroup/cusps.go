package subgroup

import (
	"math/big"

	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// buildDomain derives vertices, cusp classes and the signature from the
// coset representatives. Called once at the end of construction.
func (g *Group) buildDomain() error {
	n := g.index

	widthOf := make([]int, n+1)
	for _, cy := range g.pT.Cycles() {
		for _, x := range cy {
			widthOf[x] = len(cy)
		}
	}

	// Collect distinct images of infinity, tagged with the cosets that
	// produce them.
	byKey := make(map[string]int)
	var verts []Vertex
	for j := 1; j <= n; j++ {
		v := g.reps[j-1].ActOnCusp(sl2z.Infinity())
		if i, ok := byKey[v.String()]; ok {
			verts[i].Cosets = append(verts[i].Cosets, j)
			continue
		}
		byKey[v.String()] = len(verts)
		verts = append(verts, Vertex{
			Point:   v,
			Cosets:  []int{j},
			Cusp:    -1,
			CuspMap: sl2z.Identity(),
			Width:   widthOf[j],
		})
	}

	// Canonical layout: infinity first, then 0 when present, then the
	// remaining vertices in discovery order.
	ordered := make([]Vertex, 0, len(verts))
	for _, v := range verts {
		if v.Point.IsInfinity() {
			ordered = append(ordered, v)
		}
	}
	for _, v := range verts {
		if v.Point.Equal(sl2z.Zero()) {
			ordered = append(ordered, v)
		}
	}
	for _, v := range verts {
		if !v.Point.IsInfinity() && !v.Point.Equal(sl2z.Zero()) {
			ordered = append(ordered, v)
		}
	}
	g.vertices = ordered

	if err := g.classifyCusps(); err != nil {
		return err
	}
	g.buildVertexMaps()
	return g.computeSignature()
}

// classifyCusps partitions the vertices into equivalence classes and fills
// in normalizers, widths and stabilizers.
func (g *Group) classifyCusps() error {
	g.cusps = nil
	for vi := range g.vertices {
		v := &g.vertices[vi]

		// Exact match with a canonical cusp.
		if ci := g.cuspIndex(v.Point); ci >= 0 {
			v.Cusp = ci
			v.CuspMap = sl2z.Identity()
			g.cusps[ci].Vertices = append(g.cusps[ci].Vertices, vi)
			continue
		}

		// Equivalence search against the known classes.
		assigned := false
		for ci := range g.cusps {
			eq, u, err := g.equivalentCusps(v.Point, g.cusps[ci].Point)
			if err != nil {
				return err
			}
			if eq {
				v.Cusp = ci
				v.CuspMap = u
				g.cusps[ci].Vertices = append(g.cusps[ci].Vertices, vi)
				assigned = true
				break
			}
		}
		if assigned {
			continue
		}

		// A new canonical cusp: normalizer is the representative at the
		// vertex, width the permT-cycle length there.
		norm := g.reps[v.Cosets[0]-1]
		w := v.Width
		if g.level > 0 {
			cw := gamma0Width(g.level, v.Point)
			if cw != w {
				return errors.New(errors.CodeConsistency,
					"cusp %s: closed-form width %d disagrees with cycle width %d", v.Point, cw, w)
			}
		}
		stab := norm.Mul(sl2z.TPow(int64(w))).Mul(norm.Inverse())
		if !g.Contains(stab) {
			return errors.New(errors.CodeConsistency,
				"stabilizer %s of cusp %s is not in the subgroup", stab, v.Point)
		}
		v.Cusp = len(g.cusps)
		v.CuspMap = sl2z.Identity()
		g.cusps = append(g.cusps, CuspClass{
			Point:      v.Point,
			Normalizer: norm,
			Width:      w,
			Stabilizer: stab,
			Vertices:   []int{vi},
		})
	}
	return nil
}

// equivalentCusps reports whether an element of the subgroup maps a to b,
// returning such an element when one exists. Every map from a to b has the
// form lift(b) * T^k * lift(a)^-1, so scanning k over residues modulo the
// generalised level is exhaustive. For Gamma0(N) a congruence criterion
// rejects inequivalent pairs without scanning.
func (g *Group) equivalentCusps(a, b sl2z.Cusp) (bool, sl2z.Matrix, error) {
	if a.Equal(b) {
		return true, sl2z.Identity(), nil
	}
	if g.level > 0 && !gamma0Equivalent(g.level, a, b) {
		return false, sl2z.Matrix{}, nil
	}
	na := a.Lift()
	nb := b.Lift()
	nai := na.Inverse()
	for k := 0; k <= g.genLevel; k++ {
		u := nb.Mul(sl2z.TPow(int64(k))).Mul(nai)
		if g.Contains(u) {
			return true, u, nil
		}
		if k == 0 {
			continue
		}
		u = nb.Mul(sl2z.TPow(int64(-k))).Mul(nai)
		if g.Contains(u) {
			return true, u, nil
		}
	}
	if g.level > 0 {
		// The congruence criterion said yes; the scan must agree.
		return false, sl2z.Matrix{}, errors.New(errors.CodeConsistency,
			"cusps %s and %s pass the level-%d congruence criterion but no mapping element was found", a, b, g.level)
	}
	return false, sl2z.Matrix{}, nil
}

// gamma0Width is the closed-form cusp width N/gcd(N, q^2) for Gamma0(N).
// The cusp at infinity has q = 0 and width 1.
func gamma0Width(level int64, c sl2z.Cusp) int {
	n := big.NewInt(level)
	q2 := new(big.Int).Mul(c.Q(), c.Q())
	d := new(big.Int).GCD(nil, nil, n, q2.Abs(q2))
	return int(new(big.Int).Quo(n, d).Int64())
}

// gamma0Equivalent is the classical congruence criterion for cusp
// equivalence under Gamma0(N): p1/q1 and p2/q2 are equivalent exactly when
// s1*q2 = s2*q1 (mod gcd(q1*q2, N)), where si inverts pi modulo qi.
func gamma0Equivalent(level int64, a, b sl2z.Cusp) bool {
	n := big.NewInt(level)
	s1 := invertModDenominator(a)
	s2 := invertModDenominator(b)
	mod := new(big.Int).Mul(a.Q(), b.Q())
	mod.Abs(mod)
	mod.GCD(nil, nil, mod, n)

	lhs := new(big.Int).Mul(s1, b.Q())
	rhs := new(big.Int).Mul(s2, a.Q())
	diff := lhs.Sub(lhs, rhs)
	if mod.Sign() == 0 {
		return diff.Sign() == 0
	}
	return diff.Mod(diff, mod).Sign() == 0
}

// invertModDenominator returns s with p*s = 1 (mod q) for the cusp p/q.
// The cusp at infinity (q = 0) has p = 1 and s = 1; q = 1 gives s = 0.
func invertModDenominator(c sl2z.Cusp) *big.Int {
	q := c.Q()
	switch {
	case q.Sign() == 0:
		return big.NewInt(1)
	case q.Cmp(big.NewInt(1)) == 0:
		return big.NewInt(0)
	}
	p := new(big.Int).Mod(c.P(), q)
	return new(big.Int).ModInverse(p, q)
}
