package sl2z

import (
	"math"
	"math/big"
	"testing"
)

func TestGeneratorRelations(t *testing.T) {
	// S^2 = -1 and (ST)^3 = -1 projectively.
	s2 := S().Mul(S())
	if !s2.IsProjectiveIdentity() || s2.IsIdentity() {
		t.Errorf("S^2 = %s, want -Id", s2)
	}
	r3 := R().Pow(3)
	if !r3.IsProjectiveIdentity() || r3.IsIdentity() {
		t.Errorf("R^3 = %s, want -Id", r3)
	}
	if !S().Mul(T()).Equal(R()) {
		t.Errorf("S*T = %s, want %s", S().Mul(T()), R())
	}
}

func TestMulInversePow(t *testing.T) {
	a := New(2, 5, 1, 3) // det 1
	if err := a.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := a.Mul(a.Inverse()); !got.IsIdentity() {
		t.Errorf("A*A^-1 = %s, want identity", got)
	}
	if got, want := a.Pow(3), a.Mul(a).Mul(a); !got.Equal(want) {
		t.Errorf("A^3 = %s, want %s", got, want)
	}
	if got, want := a.Pow(-2), a.Inverse().Mul(a.Inverse()); !got.Equal(want) {
		t.Errorf("A^-2 = %s, want %s", got, want)
	}
	if got := TPow(7).Mul(TPow(-7)); !got.IsIdentity() {
		t.Errorf("T^7*T^-7 = %s, want identity", got)
	}
}

func TestValidate(t *testing.T) {
	if err := New(1, 2, 3, 4).Validate(); err == nil {
		t.Error("determinant -2 matrix validated")
	}
}

func TestActOnFloat(t *testing.T) {
	// S maps i to i.
	x, y := S().ActOnFloat(0, 1)
	if math.Abs(x) > 1e-15 || math.Abs(y-1) > 1e-15 {
		t.Errorf("S(i) = %v+%vi, want i", x, y)
	}
	// T translates by one.
	x, y = T().ActOnFloat(0.25, 2)
	if math.Abs(x-1.25) > 1e-15 || math.Abs(y-2) > 1e-15 {
		t.Errorf("T(0.25+2i) = %v+%vi, want 1.25+2i", x, y)
	}
	// S maps 2i to i/2.
	x, y = S().ActOnFloat(0, 2)
	if math.Abs(x) > 1e-15 || math.Abs(y-0.5) > 1e-15 {
		t.Errorf("S(2i) = %v+%vi, want 0.5i", x, y)
	}
}

func TestActOnBig(t *testing.T) {
	const prec = 120
	x := new(big.Float).SetPrec(prec).SetFloat64(0)
	y := new(big.Float).SetPrec(prec).SetFloat64(2)
	xr, yr := S().ActOnBig(x, y, prec)
	if xr.Sign() != 0 {
		t.Errorf("Re S(2i) = %s, want 0", xr.Text('g', 10))
	}
	half := new(big.Float).SetPrec(prec).SetFloat64(0.5)
	if yr.Cmp(half) != 0 {
		t.Errorf("Im S(2i) = %s, want 0.5", yr.Text('g', 10))
	}
}

func TestCuspNormalization(t *testing.T) {
	tests := []struct {
		p, q       int64
		wantP      int64
		wantQ      int64
		wantString string
	}{
		{1, 0, 1, 0, "oo"},
		{-3, 0, 1, 0, "oo"},
		{0, 5, 0, 1, "0"},
		{2, 4, 1, 2, "1/2"},
		{3, -6, -1, 2, "-1/2"},
		{-4, -2, 2, 1, "2"},
	}
	for _, tc := range tests {
		v := NewCusp(tc.p, tc.q)
		if v.P().Int64() != tc.wantP || v.Q().Int64() != tc.wantQ {
			t.Errorf("NewCusp(%d,%d) = %s/%s, want %d/%d", tc.p, tc.q, v.P(), v.Q(), tc.wantP, tc.wantQ)
		}
		if got := v.String(); got != tc.wantString {
			t.Errorf("NewCusp(%d,%d).String() = %q, want %q", tc.p, tc.q, got, tc.wantString)
		}
	}
}

func TestCuspLift(t *testing.T) {
	cusps := []Cusp{Infinity(), Zero(), NewCusp(1, 2), NewCusp(-2, 5), NewCusp(7, 3)}
	for _, v := range cusps {
		n := v.Lift()
		if err := n.Validate(); err != nil {
			t.Errorf("Lift(%s): %v", v, err)
		}
		if got := n.ActOnCusp(Infinity()); !got.Equal(v) {
			t.Errorf("Lift(%s)(oo) = %s, want %s", v, got, v)
		}
	}
	if !Zero().Lift().Equal(S()) {
		t.Errorf("Lift(0) = %s, want S", Zero().Lift())
	}
	if !Infinity().Lift().IsIdentity() {
		t.Errorf("Lift(oo) = %s, want identity", Infinity().Lift())
	}
}

func TestActOnCusp(t *testing.T) {
	// S swaps 0 and infinity.
	if got := S().ActOnCusp(Infinity()); !got.Equal(Zero()) {
		t.Errorf("S(oo) = %s, want 0", got)
	}
	if got := S().ActOnCusp(Zero()); !got.Equal(Infinity()) {
		t.Errorf("S(0) = %s, want oo", got)
	}
	// T fixes infinity and shifts rationals.
	if got := T().ActOnCusp(NewCusp(1, 2)); !got.Equal(NewCusp(3, 2)) {
		t.Errorf("T(1/2) = %s, want 3/2", got)
	}
}

func TestLowerLeftDivisibleBy(t *testing.T) {
	if !New(1, 0, 5, 1).LowerLeftDivisibleBy(5) {
		t.Error("c=5 not divisible by 5")
	}
	if New(1, 0, 3, 1).LowerLeftDivisibleBy(5) {
		t.Error("c=3 divisible by 5")
	}
	if !New(2, 1, -10, -4).LowerLeftDivisibleBy(5) {
		t.Error("c=-10 not divisible by 5")
	}
}
