package subgroup

import (
	"math/big"

	"github.com/halfplane/modgroup/pkg/cfrac"
	"github.com/halfplane/modgroup/pkg/perm"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// PermutationAction realizes the coset-action homomorphism: factor the
// matrix into the standard generators and multiply out the corresponding
// generator images. The overall sign of the factorization is irrelevant
// since the action is projective.
func (g *Group) PermutationAction(a sl2z.Matrix) (perm.Perm, error) {
	cf, _, err := cfrac.Factor(a)
	if err != nil {
		return perm.Perm{}, err
	}
	ord := big.NewInt(int64(g.pT.Order()))
	exp := func(e *big.Int) int {
		return int(new(big.Int).Mod(e, ord).Int64())
	}
	p := g.pT.Pow(exp(cf[0]))
	for _, e := range cf[1:] {
		p = p.Mul(g.pS)
		if k := exp(e); k != 0 {
			p = p.Mul(g.pT.Pow(k))
		}
	}
	return p, nil
}

// Generators returns a generating set for the subgroup, built from the
// Schreier generators V_j * g * V_{sigma_g(j)}^-1 for g in {S, T}, with
// identities, duplicates and redundant inverses removed.
func (g *Group) Generators() []sl2z.Matrix {
	inv := make([]sl2z.Matrix, g.index)
	for j, v := range g.reps {
		inv[j] = v.Inverse()
	}
	var raw []sl2z.Matrix
	add := func(a sl2z.Matrix) {
		if a.IsProjectiveIdentity() {
			return
		}
		ai := a.Inverse()
		for _, b := range raw {
			if b.EqualUpToSign(a) || b.EqualUpToSign(ai) {
				return
			}
		}
		raw = append(raw, a)
	}
	s, t := sl2z.S(), sl2z.T()
	for j := 1; j <= g.index; j++ {
		add(g.reps[j-1].Mul(s).Mul(inv[g.pS.On(j)-1]))
		add(g.reps[j-1].Mul(t).Mul(inv[g.pT.On(j)-1]))
	}
	return raw
}
