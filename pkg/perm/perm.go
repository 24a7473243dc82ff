// Package perm provides immutable permutations of {1, ..., n}.
//
// Permutations are the combinatorial backbone of the subgroup model: a
// finite-index subgroup of the modular group is described by a pair of
// permutations of orders dividing 2 and 3 acting transitively on the coset
// labels 1..n. This package supplies composition, inversion, powers, cycle
// decomposition and the transitivity test used to validate such pairs.
//
// A Perm is immutable once constructed; all operations return new values.
// Points are 1-based throughout, matching the coset labelling where label 1
// is the base coset of the subgroup itself.
package perm

import (
	"sort"
	"strconv"
	"strings"

	"github.com/halfplane/modgroup/pkg/errors"
)

// Perm is a bijection of {1, ..., n}. The zero value is the empty
// permutation on no points; use New, Identity or one of the parsers to
// construct a usable instance.
type Perm struct {
	img []int // img[i-1] is the image of point i, values in 1..n
}

// New builds a permutation from its one-line form: img[i] is the image of
// point i+1. The slice is copied. Returns an INVALID_FORMAT error if the
// values are not a bijection of 1..len(img).
func New(img []int) (Perm, error) {
	n := len(img)
	seen := make([]bool, n)
	for i, v := range img {
		if v < 1 || v > n {
			return Perm{}, errors.New(errors.CodeInvalidFormat,
				"permutation value %d at position %d outside 1..%d", v, i+1, n)
		}
		if seen[v-1] {
			return Perm{}, errors.New(errors.CodeInvalidFormat,
				"permutation repeats value %d", v)
		}
		seen[v-1] = true
	}
	cp := make([]int, n)
	copy(cp, img)
	return Perm{img: cp}, nil
}

// Identity returns the identity permutation on n points.
func Identity(n int) Perm {
	img := make([]int, n)
	for i := range img {
		img[i] = i + 1
	}
	return Perm{img: img}
}

// Len returns the number of points the permutation acts on.
func (p Perm) Len() int { return len(p.img) }

// On returns the image of point x. Points outside 1..n map to themselves.
func (p Perm) On(x int) int {
	if x < 1 || x > len(p.img) {
		return x
	}
	return p.img[x-1]
}

// List returns a copy of the one-line form.
func (p Perm) List() []int {
	cp := make([]int, len(p.img))
	copy(cp, p.img)
	return cp
}

// Mul returns the composition that applies p first, then q.
// This left-to-right convention matches the coset-action formulas used by
// the subgroup package.
func (p Perm) Mul(q Perm) Perm {
	n := len(p.img)
	img := make([]int, n)
	for i := 0; i < n; i++ {
		img[i] = q.On(p.img[i])
	}
	return Perm{img: img}
}

// Inverse returns the inverse permutation.
func (p Perm) Inverse() Perm {
	img := make([]int, len(p.img))
	for i, v := range p.img {
		img[v-1] = i + 1
	}
	return Perm{img: img}
}

// Pow returns p raised to the integer power k. Negative k inverts first.
func (p Perm) Pow(k int) Perm {
	if k < 0 {
		return p.Inverse().Pow(-k)
	}
	res := Identity(len(p.img))
	base := p
	for k > 0 {
		if k&1 == 1 {
			res = res.Mul(base)
		}
		base = base.Mul(base)
		k >>= 1
	}
	return res
}

// Equal reports whether p and q are the same permutation.
func (p Perm) Equal(q Perm) bool {
	if len(p.img) != len(q.img) {
		return false
	}
	for i := range p.img {
		if p.img[i] != q.img[i] {
			return false
		}
	}
	return true
}

// IsIdentity reports whether p fixes every point.
func (p Perm) IsIdentity() bool {
	for i, v := range p.img {
		if v != i+1 {
			return false
		}
	}
	return true
}

// Cycles returns the disjoint cycle decomposition, fixed points included as
// singleton cycles. Each cycle starts at its smallest point and cycles are
// ordered by that point.
func (p Perm) Cycles() [][]int {
	n := len(p.img)
	seen := make([]bool, n)
	var cycles [][]int
	for i := 1; i <= n; i++ {
		if seen[i-1] {
			continue
		}
		cy := []int{i}
		seen[i-1] = true
		for x := p.On(i); x != i; x = p.On(x) {
			cy = append(cy, x)
			seen[x-1] = true
		}
		cycles = append(cycles, cy)
	}
	return cycles
}

// CycleLengths returns the lengths of the disjoint cycles, sorted ascending.
func (p Perm) CycleLengths() []int {
	cycles := p.Cycles()
	ls := make([]int, len(cycles))
	for i, cy := range cycles {
		ls[i] = len(cy)
	}
	sort.Ints(ls)
	return ls
}

// Order returns the order of p, the lcm of its cycle lengths.
func (p Perm) Order() int {
	order := 1
	for _, cy := range p.Cycles() {
		order = lcm(order, len(cy))
	}
	return order
}

// FixedPoints returns the number of points p fixes.
func (p Perm) FixedPoints() int {
	fixed := 0
	for i, v := range p.img {
		if v == i+1 {
			fixed++
		}
	}
	return fixed
}

// String renders p in cycle notation, e.g. "(1 2)(3 4)". The identity
// renders as "()". Fixed points are omitted.
func (p Perm) String() string {
	var b strings.Builder
	for _, cy := range p.Cycles() {
		if len(cy) == 1 {
			continue
		}
		b.WriteByte('(')
		for i, x := range cy {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(x))
		}
		b.WriteByte(')')
	}
	if b.Len() == 0 {
		return "()"
	}
	return b.String()
}

// AreTransitive reports whether the group generated by p and q has a single
// orbit on 1..n. Computed by breadth-first closure over the generator images
// starting from point 1. Permutations of different lengths are never
// transitive.
func AreTransitive(p, q Perm) bool {
	n := p.Len()
	if n != q.Len() {
		return false
	}
	if n == 0 {
		return true
	}
	pi, qi := p.Inverse(), q.Inverse()
	seen := make([]bool, n)
	queue := []int{1}
	seen[0] = true
	count := 1
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		for _, y := range []int{p.On(x), q.On(x), pi.On(x), qi.On(x)} {
			if !seen[y-1] {
				seen[y-1] = true
				count++
				queue = append(queue, y)
			}
		}
	}
	return count == n
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}

// Lcm returns the least common multiple of the given values.
// Exported for width/level computations built on cycle lengths.
func Lcm(vals ...int) int {
	res := 1
	for _, v := range vals {
		res = lcm(res, v)
	}
	return res
}
