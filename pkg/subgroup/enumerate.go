package subgroup

import (
	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/perm"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// cosetRepsFromPerms enumerates right coset representatives from the
// permutation pair: within each cycle of permT the representatives differ by
// powers of T, and cycles are attached to already-placed points through
// permS. Transitivity guarantees every cycle can be connected; failure to do
// so, or a final count other than n, is an ENUMERATION error.
//
// The representative V_j satisfies: the coset action maps V_j to a
// permutation sending 1 to j, with V_1 the identity.
func cosetRepsFromPerms(pS, pT perm.Perm) ([]sl2z.Matrix, error) {
	n := pS.Len()
	id := sl2z.Identity()
	s := sl2z.S()

	reps := make(map[int]sl2z.Matrix, n)
	reps[1] = id

	cycles := pT.Cycles()
	got := make([]bool, len(cycles))
	next := cycles[0]
	curPos := 0
	newIndex := 0
	oldMap := id

	for cyi := 0; cyi < len(cycles); cyi++ {
		cy := next
		r := len(cy)
		if pT.On(cy[newIndex]) != cy[newIndex] {
			// Fill the rest of the cycle with translates, using the
			// shorter direction around the cycle.
			for j := 0; j < r; j++ {
				if j == newIndex {
					continue
				}
				k := j - newIndex
				if k > r/2 {
					k -= r
				}
				reps[cy[j]] = oldMap.Mul(sl2z.TPow(int64(k)))
			}
		}
		got[curPos] = true
		if cyi >= len(cycles)-1 {
			break
		}

		// Use the order-2 generator to reach a cycle without
		// representatives from one that has them.
		connected := false
	search:
		for cyii, cand := range cycles {
			if got[cyii] {
				continue
			}
			in := make(map[int]int, len(cand))
			for pos, x := range cand {
				in[x] = pos
			}
			for cyj, cy2 := range cycles {
				if !got[cyj] {
					continue
				}
				for _, i := range cy2 {
					j := pS.On(i)
					if pos, ok := in[j]; ok {
						oldMap = reps[i].Mul(s)
						reps[j] = oldMap
						next = cand
						curPos = cyii
						newIndex = pos
						connected = true
						break search
					}
				}
			}
		}
		if !connected {
			return nil, errors.New(errors.CodeEnumeration,
				"could not connect the cycles of %s using %s", pT, pS)
		}
	}

	if len(reps) != n {
		return nil, errors.New(errors.CodeEnumeration,
			"coset enumeration produced %d representatives, need %d", len(reps), n)
	}
	out := make([]sl2z.Matrix, n)
	for j := 1; j <= n; j++ {
		m, ok := reps[j]
		if !ok {
			return nil, errors.New(errors.CodeEnumeration, "no representative for coset %d", j)
		}
		out[j-1] = m
	}
	return out, nil
}

// cosetRepsFromPredicate enumerates representatives for a group given only
// by a membership predicate: seed with the identity (and S when S is not a
// member), then saturate by right-multiplying with S, T and T^-1, admitting
// a matrix only when it is right-inequivalent to everything present.
func cosetRepsFromPredicate(n int, member func(sl2z.Matrix) bool) ([]sl2z.Matrix, error) {
	id := sl2z.Identity()
	gens := []sl2z.Matrix{sl2z.S(), sl2z.T(), sl2z.TPow(-1)}

	cl := []sl2z.Matrix{id}
	if n > 1 && !member(sl2z.S()) {
		cl = append(cl, sl2z.S())
	}
	sameCoset := func(a, b sl2z.Matrix) bool { return member(a.Mul(b.Inverse())) }

	for len(cl) < n {
		grew := false
		old := len(cl)
		for i := 0; i < old && len(cl) < n; i++ {
			for _, a := range gens {
				b := cl[i].Mul(a)
				fresh := true
				for _, w := range cl {
					if sameCoset(b, w) {
						fresh = false
						break
					}
				}
				if fresh {
					cl = append(cl, b)
					grew = true
					if len(cl) == n {
						break
					}
				}
			}
		}
		if !grew {
			break
		}
	}
	if len(cl) != n {
		return nil, errors.New(errors.CodeEnumeration,
			"coset enumeration produced %d representatives, need %d", len(cl), n)
	}
	return cl, nil
}

// reorderRepsToAction arranges enumerated representatives so that the coset
// action sends V_j to j, the labelling every later computation assumes.
func reorderRepsToAction(g *Group, reps []sl2z.Matrix) ([]sl2z.Matrix, error) {
	n := len(reps)
	out := make([]sl2z.Matrix, n)
	seen := make([]bool, n)
	for _, v := range reps {
		j, err := g.CosetIndexOf(v)
		if err != nil {
			return nil, err
		}
		if j < 1 || j > n || seen[j-1] {
			return nil, errors.New(errors.CodeEnumeration,
				"representatives are not right-inequivalent: duplicate label %d for %s", j, v)
		}
		seen[j-1] = true
		out[j-1] = v
	}
	return out, nil
}

// permsFromReps recovers the generator images from a labelled representative
// list: pS sends i to the label j with V_i*S right-equivalent to V_j, and
// likewise pR with R = S*T.
func permsFromReps(reps []sl2z.Matrix, member func(sl2z.Matrix) bool) (perm.Perm, perm.Perm, error) {
	n := len(reps)
	inv := make([]sl2z.Matrix, n)
	for i, v := range reps {
		inv[i] = v.Inverse()
	}
	s, r := sl2z.S(), sl2z.R()
	ps := make([]int, n)
	pr := make([]int, n)
	for i, v := range reps {
		vs := v.Mul(s)
		vr := v.Mul(r)
		for j := 0; j < n; j++ {
			if ps[i] == 0 && member(vs.Mul(inv[j])) {
				ps[i] = j + 1
			}
			if pr[i] == 0 && member(vr.Mul(inv[j])) {
				pr[i] = j + 1
			}
			if ps[i] != 0 && pr[i] != 0 {
				break
			}
		}
		if ps[i] == 0 || pr[i] == 0 {
			return perm.Perm{}, perm.Perm{}, errors.New(errors.CodeEnumeration,
				"representative %d has no image under the generator action", i+1)
		}
	}
	pS, err := perm.New(ps)
	if err != nil {
		return perm.Perm{}, perm.Perm{}, errors.Wrap(errors.CodeEnumeration, err, "derived S-action is not a permutation")
	}
	pR, err := perm.New(pr)
	if err != nil {
		return perm.Perm{}, perm.Perm{}, errors.Wrap(errors.CodeEnumeration, err, "derived R-action is not a permutation")
	}
	return pS, pR, nil
}
