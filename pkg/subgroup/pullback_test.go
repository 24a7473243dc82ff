package subgroup

import (
	"math"
	"math/big"
	"testing"

	"github.com/halfplane/modgroup/pkg/sl2z"
)

func TestPullbackGamma0Five(t *testing.T) {
	g, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	x, y, b, err := g.Pullback(2.3, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if want := sl2z.New(-1, 2, 0, -1); !b.Equal(want) {
		t.Errorf("pullback map = %s, want %s", b, want)
	}
	if math.Abs(x-0.3) > 1e-9 || math.Abs(y-0.4) > 1e-9 {
		t.Errorf("pullback point = (%v, %v), want (0.3, 0.4)", x, y)
	}
}

// The returned map must be a member, and the image must be the map applied
// to the input.
func TestPullbackProperties(t *testing.T) {
	groups := []*Group{}
	g5, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	groups = append(groups, g5)
	groups = append(groups, mustGroup(t, pairThreeCusps[0], pairThreeCusps[1]))
	groups = append(groups, mustGroup(t, pairIndexSeven[0], pairIndexSeven[1]))

	points := [][2]float64{
		{0.2, 0.5}, {2.3, 0.4}, {-3.7, 0.09}, {0.01, 0.013}, {17.2, 1.1},
	}
	for _, g := range groups {
		for _, pt := range points {
			x, y, b, err := g.Pullback(pt[0], pt[1])
			if err != nil {
				t.Fatalf("pullback of (%v, %v): %v", pt[0], pt[1], err)
			}
			if err := b.Validate(); err != nil {
				t.Fatalf("pullback map %s: %v", b, err)
			}
			if !g.Contains(b) {
				t.Errorf("pullback map %s of (%v, %v) is not a member", b, pt[0], pt[1])
			}
			bx, by := b.ActOnFloat(pt[0], pt[1])
			if math.Abs(bx-x) > 1e-9 || math.Abs(by-y) > 1e-9 {
				t.Errorf("pullback point (%v, %v) is not the map applied to the input (%v, %v)", x, y, bx, by)
			}
			// Pulling back a point already in the domain moves nothing.
			// No height floor is asserted here: a point near a finite cusp
			// pulls back near that cusp, below the height of the strip.
			x2, y2, b2, err := g.Pullback(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if !b2.IsProjectiveIdentity() && (math.Abs(x2-x) > 1e-9 || math.Abs(y2-y) > 1e-9) {
				t.Errorf("second pullback moved (%v, %v) to (%v, %v) via %s", x, y, x2, y2, b2)
			}
		}
	}
}

// The point (0.2, 0.5) lies inside the Gamma0(5) domain: strip reduction
// gives exactly T*S, the matching representative is S*T^-1, and the product
// is -Id. Its height clears the minimal height sqrt(3)/10 of the domain.
func TestPullbackMinimalHeight(t *testing.T) {
	g, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	x, y, b, err := g.Pullback(0.2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsProjectiveIdentity() {
		t.Errorf("pullback map = %s, want -Id", b)
	}
	if x != 0.2 || y != 0.5 {
		t.Errorf("pullback point = (%v, %v), want (0.2, 0.5)", x, y)
	}
	if y < g.MinimalHeight() {
		t.Errorf("height %v below the minimal height %v", y, g.MinimalHeight())
	}
}

func TestPullbackFixedPoint(t *testing.T) {
	g, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	x, y, b, err := g.Pullback(0.0, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsIdentity() {
		t.Errorf("pullback map = %s, want identity", b)
	}
	if x != 0.0 || y != 2.0 {
		t.Errorf("pullback point = (%v, %v), want (0, 2)", x, y)
	}
}

func TestPullbackLowerHalfPlane(t *testing.T) {
	g, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := g.Pullback(0.5, 0.0); err == nil {
		t.Error("point on the real line accepted")
	}
	if _, _, _, err := g.Pullback(0.5, -1.0); err == nil {
		t.Error("lower half-plane point accepted")
	}
}

func TestPullbackPrec(t *testing.T) {
	g, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	fx, fy, fb, err := g.Pullback(2.3, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	x := new(big.Float).SetPrec(128).SetFloat64(2.3)
	y := new(big.Float).SetPrec(128).SetFloat64(0.4)
	bx, by, bb, err := g.PullbackPrec(x, y, 128)
	if err != nil {
		t.Fatal(err)
	}
	if !bb.Equal(fb) {
		t.Errorf("high-precision pullback map = %s, float64 map = %s", bb, fb)
	}
	gx, _ := bx.Float64()
	gy, _ := by.Float64()
	if math.Abs(gx-fx) > 1e-12 || math.Abs(gy-fy) > 1e-12 {
		t.Errorf("high-precision point (%v, %v) disagrees with float64 point (%v, %v)", gx, gy, fx, fy)
	}
	if bx.Prec() != 128 || by.Prec() != 128 {
		t.Errorf("result precision = (%d, %d), want 128", bx.Prec(), by.Prec())
	}
}

func TestPullbackPrecDelegatesToFloat64(t *testing.T) {
	g, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	x := big.NewFloat(2.3)
	y := big.NewFloat(0.4)
	_, _, b, err := g.PullbackPrec(x, y, 53)
	if err != nil {
		t.Fatal(err)
	}
	_, _, fb, err := g.Pullback(2.3, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Equal(fb) {
		t.Errorf("prec-53 map = %s, float64 map = %s", b, fb)
	}
}

func TestClosestVertexGamma0Five(t *testing.T) {
	g, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	// Equal heights at both vertices: the lower index wins.
	vi, err := g.ClosestVertex(-0.4, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if vi != 0 {
		t.Errorf("closest vertex to (-0.4, 0.2) = %d, want 0 (infinity)", vi)
	}
	vi, err = g.ClosestVertex(-0.1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if vi != 1 {
		t.Errorf("closest vertex to (-0.1, 0.1) = %d, want 1 (zero)", vi)
	}
	c, err := g.ClosestCuspPoint(-0.1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equal(sl2z.Zero()) {
		t.Errorf("closest cusp to (-0.1, 0.1) = %s, want 0", c)
	}
	c, err = g.ClosestVertexPoint(3.2, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsInfinity() {
		t.Errorf("closest vertex to (3.2, 5.0) = %s, want oo", c)
	}
}

func TestClosestVertexLowerHalfPlane(t *testing.T) {
	g, err := NewGamma0(5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.ClosestVertex(0.0, -1.0); err == nil {
		t.Error("lower half-plane point accepted")
	}
}
