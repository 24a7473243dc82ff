package subgroup

import (
	"github.com/charmbracelet/log"

	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// NewGamma0 builds the congruence subgroup Gamma0(N) of matrices whose
// lower-left entry is divisible by N. Representatives are enumerated with
// the level directly and the permutation pair is derived from them.
func NewGamma0(level int64, opts ...Option) (*Group, error) {
	if level < 1 {
		return nil, errors.New(errors.CodeInvalidFormat, "level must be positive, got %d", level)
	}
	g := &Group{
		index:  gamma0Index(level),
		level:  level,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	reps, err := gamma0Reps(level, g.index)
	if err != nil {
		return nil, err
	}
	member := func(a sl2z.Matrix) bool { return a.LowerLeftDivisibleBy(level) }
	pS, pR, err := permsFromReps(reps, member)
	if err != nil {
		return nil, err
	}
	g.pS, g.pR = pS, pR
	if err := checkGenerators(pS, pR); err != nil {
		return nil, err
	}
	g.pT = pS.Mul(pR)
	g.pP = g.pT.Mul(pS).Mul(g.pT)
	g.genLevel = generalisedLevel(g.pT)

	g.reps, err = reorderRepsToAction(g, reps)
	if err != nil {
		return nil, err
	}
	if err := g.buildDomain(); err != nil {
		return nil, err
	}
	return g, nil
}

// gamma0Index is N times the product of (1 + 1/p) over primes p dividing N.
func gamma0Index(level int64) int {
	idx := level
	n := level
	for p := int64(2); p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		idx = idx / p * (p + 1)
		for n%p == 0 {
			n /= p
		}
	}
	if n > 1 {
		idx = idx / n * (n + 1)
	}
	return int(idx)
}

// gamma0Reps enumerates coset representatives for Gamma0(N) with a
// fundamental domain centered on the strip |x| <= 1/2: the identity, S, the
// translates S*T^j for j in the symmetric residue range, then saturation by
// right multiplication with S, T and T^-1 under the lower-left congruence
// test.
func gamma0Reps(level int64, index int) ([]sl2z.Matrix, error) {
	id := sl2z.Identity()
	cl := []sl2z.Matrix{id}
	if index == 1 {
		return cl, nil
	}
	s := sl2z.S()
	cl = append(cl, s)

	var lo, hi int64
	if level%2 == 0 {
		lo, hi = -level/2+1, level/2
	} else {
		lo, hi = -(level-1)/2, (level-1)/2
	}
	for j := lo; j <= hi; j++ {
		if j == 0 {
			continue
		}
		cl = append(cl, sl2z.New(0, -1, 1, j)) // S*T^j
	}

	// Track the last generator applied to each representative so the
	// saturation never immediately undoes itself: 0 = S, 1 = T, 2 = T^-1.
	last := make([]int, len(cl), index+4)
	for i := range last {
		last[i] = -1
	}
	sameCoset := func(a, b sl2z.Matrix) bool {
		return a.Mul(b.Inverse()).LowerLeftDivisibleBy(level)
	}
	gens := []sl2z.Matrix{s, sl2z.T(), sl2z.TPow(-1)}

	for {
		old := len(cl)
		for i := 1; i < old; i++ {
			for j, a := range gens {
				if last[i] == j && j == 0 {
					continue
				}
				if (last[i] == 1 && j == 2) || (last[i] == 2 && j == 1) {
					continue
				}
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
					last = append(last, j)
				}
			}
		}
		if len(cl) >= index || len(cl) == old {
			break
		}
	}
	if len(cl) != index {
		return nil, errors.New(errors.CodeEnumeration,
			"enumeration for level %d produced %d representatives, need %d", level, len(cl), index)
	}
	return cl, nil
}
