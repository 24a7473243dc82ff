package subgroup

import (
	"math/big"

	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// congruenceLevelCap bounds the principal-congruence level for which the
// containment test is attempted. Above it the answer is reported as
// undetermined rather than guessed.
const congruenceLevelCap = 60

// IsCongruence reports whether the subgroup is a congruence subgroup.
//
// By Wohlfahrt's theorem a subgroup of generalised level N is congruence
// exactly when it contains the principal congruence subgroup Gamma(N). The
// test enumerates PSL(2,Z/N) by words in S and T and checks that every
// Schreier generator of Gamma(N) with respect to that transversal lies in
// the subgroup. The result is memoized. A generalised level beyond the
// supported bound yields an UNDETERMINED error.
func (g *Group) IsCongruence() (bool, error) {
	g.congOnce.Do(func() {
		g.congVal, g.congErr = g.computeCongruence()
	})
	return g.congVal, g.congErr
}

func (g *Group) computeCongruence() (bool, error) {
	if g.level > 0 {
		return true, nil
	}
	n := g.genLevel
	if n == 1 {
		// Gamma(1) is the whole modular group.
		return g.index == 1, nil
	}
	if n > congruenceLevelCap {
		return false, errors.New(errors.CodeUndetermined,
			"generalised level %d exceeds the congruence test bound %d", n, congruenceLevelCap)
	}

	// Transversal of Gamma(n) by breadth-first search over PSL(2,Z/n).
	type key [4]int64
	mod := big.NewInt(int64(n))
	canon := func(m sl2z.Matrix) key {
		nn := int64(n)
		var v, w key
		for i, e := range []*big.Int{m.A(), m.B(), m.C(), m.D()} {
			v[i] = e.Mod(e, mod).Int64()
		}
		for i := range v {
			w[i] = (nn - v[i]) % nn
		}
		for i := range v {
			if v[i] != w[i] {
				if w[i] < v[i] {
					return w
				}
				return v
			}
		}
		return v
	}

	gens := []sl2z.Matrix{sl2z.S(), sl2z.T()}
	id := sl2z.Identity()
	trans := map[key]sl2z.Matrix{canon(id): id}
	queue := []sl2z.Matrix{id}
	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		for _, a := range gens {
			b := w.Mul(a)
			k := canon(b)
			if _, ok := trans[k]; !ok {
				trans[k] = b
				queue = append(queue, b)
			}
		}
	}

	// Schreier generators of Gamma(n): w*a*(transversal of w*a)^-1.
	for _, w := range trans {
		for _, a := range gens {
			b := w.Mul(a)
			u := trans[canon(b)]
			sg := b.Mul(u.Inverse())
			if !g.Contains(sg) {
				return false, nil
			}
		}
	}
	return true, nil
}
