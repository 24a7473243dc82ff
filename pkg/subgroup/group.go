package subgroup

import (
	"math/big"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/perm"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// Vertex is a corner of the fundamental domain: the image of infinity under
// one or more coset representatives.
type Vertex struct {
	// Point is the vertex value, a rational or infinity.
	Point sl2z.Cusp
	// Cosets lists the 1-based coset indices j with V_j(oo) = Point.
	Cosets []int
	// Cusp is the index into the group's cusp list of the class this
	// vertex belongs to.
	Cusp int
	// CuspMap is an element U of the subgroup with U(Point) equal to the
	// canonical cusp. It is the identity when the vertex is canonical.
	CuspMap sl2z.Matrix
	// Width is the length of the permT-cycle through the first coset
	// index mapping to this vertex.
	Width int
}

// CuspClass is one equivalence class of vertices under the subgroup action.
type CuspClass struct {
	// Point is the canonical representative, a rational or infinity.
	Point sl2z.Cusp
	// Normalizer N maps infinity to Point; for the cusp at infinity it is
	// the identity.
	Normalizer sl2z.Matrix
	// Width is the cusp width, the permT-cycle length at the cusp.
	Width int
	// Stabilizer is N * T^Width * N^-1, a parabolic element of the
	// subgroup fixing Point.
	Stabilizer sl2z.Matrix
	// Vertices lists the indices of the vertices in this class.
	Vertices []int
}

// Signature is the topological type of the quotient surface.
type Signature struct {
	Index int
	Cusps int
	Nu2   int // order-2 elliptic points, fixed points of permS
	Nu3   int // order-3 elliptic points, fixed points of permR
	Genus int
}

// Group is a finite-index subgroup of the modular group, described by the
// permutation action on its cosets. All geometric data is computed at
// construction; a Group is immutable and safe for concurrent readers.
type Group struct {
	index int

	pS, pR, pT, pP perm.Perm

	// level > 0 marks a group built as Gamma0(level); membership then
	// reduces to a congruence on the lower-left entry.
	level int64
	// contains is the external membership predicate for adapted groups.
	contains func(sl2z.Matrix) bool

	logger *log.Logger

	reps     []sl2z.Matrix
	vertices []Vertex
	cusps    []CuspClass
	vmaps    []sl2z.Matrix
	sig      Signature
	genLevel int

	congOnce sync.Once
	congVal  bool
	congErr  error

	symOnce sync.Once
	symVal  bool
	symMap  perm.Perm

	normOnce sync.Once
	normTab  []NormalizerOrder

	symzOnce sync.Once
	symzTab  []bool
}

// Option adjusts group construction.
type Option func(*Group)

// WithLogger routes construction and analysis warnings to l instead of the
// default logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Group) { g.logger = l }
}

// New builds the subgroup described by the permutation pair (o2, o3).
// The orders of o2 and o3 must divide 2 and 3, the lengths must agree, and
// the pair must act transitively; violations return a CONSISTENCY error.
func New(o2, o3 perm.Perm, opts ...Option) (*Group, error) {
	g := &Group{
		index:  o2.Len(),
		pS:     o2,
		pR:     o3,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := checkGenerators(o2, o3); err != nil {
		return nil, err
	}
	g.pT = g.pS.Mul(g.pR)
	g.pP = g.pT.Mul(g.pS).Mul(g.pT)
	g.genLevel = generalisedLevel(g.pT)

	reps, err := cosetRepsFromPerms(g.pS, g.pT)
	if err != nil {
		return nil, err
	}
	g.reps = reps
	if err := g.buildDomain(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkGenerators validates a generating pair before any enumeration.
func checkGenerators(o2, o3 perm.Perm) error {
	if o2.Len() != o3.Len() {
		return errors.New(errors.CodeConsistency,
			"generator lengths differ: %d and %d", o2.Len(), o3.Len())
	}
	if o2.Len() == 1 {
		return nil
	}
	if ord := o2.Order(); 2%ord != 0 {
		return errors.New(errors.CodeConsistency, "order of %s is %d, must divide 2", o2, ord)
	}
	if ord := o3.Order(); 3%ord != 0 {
		return errors.New(errors.CodeConsistency, "order of %s is %d, must divide 3", o3, ord)
	}
	if !perm.AreTransitive(o2, o3) {
		return errors.New(errors.CodeConsistency, "pair %s, %s is not transitive", o2, o3)
	}
	return nil
}

// ArithmeticGroup is the adapter interface for an externally implemented
// congruence subgroup.
type ArithmeticGroup interface {
	// Index returns the index in the modular group.
	Index() int
	// Contains reports membership of a unimodular matrix.
	Contains(sl2z.Matrix) bool
	// GeneratingPermutations returns the images of S and R under the
	// coset-action homomorphism.
	GeneratingPermutations() (perm.Perm, perm.Perm)
}

// FromArithmeticGroup wraps an external group, enumerating coset
// representatives with its membership predicate.
func FromArithmeticGroup(ag ArithmeticGroup, opts ...Option) (*Group, error) {
	o2, o3 := ag.GeneratingPermutations()
	g := &Group{
		index:    ag.Index(),
		pS:       o2,
		pR:       o3,
		contains: ag.Contains,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if o2.Len() != g.index {
		return nil, errors.New(errors.CodeConsistency,
			"index %d does not match permutation length %d", g.index, o2.Len())
	}
	if err := checkGenerators(o2, o3); err != nil {
		return nil, err
	}
	g.pT = g.pS.Mul(g.pR)
	g.pP = g.pT.Mul(g.pS).Mul(g.pT)
	g.genLevel = generalisedLevel(g.pT)

	reps, err := cosetRepsFromPredicate(g.index, ag.Contains)
	if err != nil {
		return nil, err
	}
	if g.reps, err = reorderRepsToAction(g, reps); err != nil {
		return nil, err
	}
	if err := g.buildDomain(); err != nil {
		return nil, err
	}
	return g, nil
}

// generalisedLevel is the lcm of the cycle lengths of permT.
func generalisedLevel(pT perm.Perm) int {
	return perm.Lcm(pT.CycleLengths()...)
}

// Index returns the index of the subgroup in the modular group.
func (g *Group) Index() int { return g.index }

// PermS returns the image of S under the coset action.
func (g *Group) PermS() perm.Perm { return g.pS }

// PermR returns the image of R = S*T under the coset action.
func (g *Group) PermR() perm.Perm { return g.pR }

// PermT returns the image of the translation T.
func (g *Group) PermT() perm.Perm { return g.pT }

// PermP returns the image of permT*permS*permT.
func (g *Group) PermP() perm.Perm { return g.pP }

// IsGamma0 reports whether the group was constructed as Gamma0(N).
func (g *Group) IsGamma0() bool { return g.level > 0 }

// Level returns N for a group constructed as Gamma0(N), and 0 otherwise.
func (g *Group) Level() int64 { return g.level }

// GeneralisedLevel returns the lcm of the cusp widths.
func (g *Group) GeneralisedLevel() int { return g.genLevel }

// CosetRepresentatives returns a copy of the representatives V_1..V_n,
// with V_1 the identity and the coset action sending V_j to j.
func (g *Group) CosetRepresentatives() []sl2z.Matrix {
	out := make([]sl2z.Matrix, len(g.reps))
	copy(out, g.reps)
	return out
}

// Vertices returns the vertices of the fundamental domain, infinity first.
func (g *Group) Vertices() []Vertex {
	out := make([]Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Cusps returns the canonical cusp representatives in classification order,
// infinity first, then 0 when present.
func (g *Group) Cusps() []sl2z.Cusp {
	out := make([]sl2z.Cusp, len(g.cusps))
	for i, c := range g.cusps {
		out[i] = c.Point
	}
	return out
}

// NCusps returns the number of cusp classes.
func (g *Group) NCusps() int { return len(g.cusps) }

// CuspClasses returns the full cusp table.
func (g *Group) CuspClasses() []CuspClass {
	out := make([]CuspClass, len(g.cusps))
	copy(out, g.cusps)
	return out
}

// cuspIndex locates a canonical cusp, or -1.
func (g *Group) cuspIndex(c sl2z.Cusp) int {
	for i := range g.cusps {
		if g.cusps[i].Point.Equal(c) {
			return i
		}
	}
	return -1
}

// CuspData returns the cusp class of a canonical cusp representative.
func (g *Group) CuspData(c sl2z.Cusp) (CuspClass, error) {
	if i := g.cuspIndex(c); i >= 0 {
		return g.cusps[i], nil
	}
	return CuspClass{}, errors.New(errors.CodeInvalidFormat, "%s is not a canonical cusp of the group", c)
}

// CuspWidth returns the width of a canonical cusp.
func (g *Group) CuspWidth(c sl2z.Cusp) (int, error) {
	d, err := g.CuspData(c)
	if err != nil {
		return 0, err
	}
	return d.Width, nil
}

// CuspNormalizer returns the normalizing map of a canonical cusp.
func (g *Group) CuspNormalizer(c sl2z.Cusp) (sl2z.Matrix, error) {
	d, err := g.CuspData(c)
	if err != nil {
		return sl2z.Matrix{}, err
	}
	return d.Normalizer, nil
}

// Signature returns (index, cusps, nu2, nu3, genus).
func (g *Group) Signature() Signature { return g.sig }

// Genus returns the genus of the quotient surface.
func (g *Group) Genus() int { return g.sig.Genus }

// Nu2 returns the number of order-2 elliptic points.
func (g *Group) Nu2() int { return g.sig.Nu2 }

// Nu3 returns the number of order-3 elliptic points.
func (g *Group) Nu3() int { return g.sig.Nu3 }

// Reflected returns the group conjugated by the reflection z -> -conj(z),
// generated by (permS, permS*permR^2*permS).
func (g *Group) Reflected() (*Group, error) {
	pR := g.pS.Mul(g.pR.Pow(2)).Mul(g.pS)
	return New(g.pS, pR, WithLogger(g.logger))
}

// Contains reports whether a matrix lies in the subgroup. Matrices with
// determinant other than 1 are never members.
func (g *Group) Contains(a sl2z.Matrix) bool {
	if a.Det().Cmp(big.NewInt(1)) != 0 {
		return false
	}
	if g.level > 0 {
		return a.LowerLeftDivisibleBy(g.level)
	}
	if g.contains != nil {
		return g.contains(a)
	}
	p, err := g.PermutationAction(a)
	if err != nil {
		return false
	}
	return p.On(1) == 1
}

// CosetIndexOf returns the coset label of a matrix: the j such that
// A lies in the right coset of V_j, i.e. the image of 1 under the coset
// action of A.
func (g *Group) CosetIndexOf(a sl2z.Matrix) (int, error) {
	p, err := g.PermutationAction(a)
	if err != nil {
		return 0, err
	}
	return p.On(1), nil
}

// computeSignature derives the topological signature and checks its
// integrality.
func (g *Group) computeSignature() error {
	nu2 := g.pS.FixedPoints()
	nu3 := g.pR.FixedPoints()
	t := g.index - 6*len(g.cusps) - 3*nu2 - 4*nu3
	if t%12 != 0 || 1+t/12 < 0 {
		return errors.New(errors.CodeConsistency,
			"signature (index=%d cusps=%d nu2=%d nu3=%d) gives non-integral or negative genus",
			g.index, len(g.cusps), nu2, nu3)
	}
	g.sig = Signature{
		Index: g.index,
		Cusps: len(g.cusps),
		Nu2:   nu2,
		Nu3:   nu3,
		Genus: 1 + t/12,
	}
	return nil
}

// MinimalHeight returns the infimum of the invariant height over the
// fundamental domain: sqrt(3)/(2N) for Gamma0(N), and
// sqrt(3)/(2*maxwidth) in general.
func (g *Group) MinimalHeight() float64 {
	if g.level > 0 {
		return sqrt3 / float64(2*g.level)
	}
	maxw := 1
	for _, c := range g.cusps {
		if c.Width > maxw {
			maxw = c.Width
		}
	}
	return sqrt3 / float64(2*maxw)
}

const sqrt3 = 1.7320508075688772

// ValidSignatures lists every tuple (index, cusps, nu2, nu3, genus)
// satisfying the Riemann-Hurwitz relation for the given index. Whether a
// subgroup with a listed signature exists is a separate question.
func ValidSignatures(index int) ([]Signature, error) {
	if index <= 0 {
		return nil, errors.New(errors.CodeInvalidFormat, "index must be positive, got %d", index)
	}
	var res []Signature
	for h := 1; h <= index; h++ {
		for e2 := 0; e2 <= index; e2++ {
			for e3 := 0; e3 <= index; e3++ {
				t := 12 + index - 6*h - 3*e2 - 4*e3
				if t >= 0 && t%12 == 0 {
					res = append(res, Signature{Index: index, Cusps: h, Nu2: e2, Nu3: e3, Genus: t / 12})
				}
			}
		}
	}
	return res, nil
}
