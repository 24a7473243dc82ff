package cfrac

import (
	"math/big"
	"testing"

	"github.com/halfplane/modgroup/pkg/sl2z"
)

func TestNearestRat(t *testing.T) {
	tests := []struct {
		p, q int64
		want int64
	}{
		{1, 2, 1},
		{-1, 2, 0},
		{3, 2, 2},
		{-3, 2, -1},
		{7, 3, 2},
		{-7, 3, -2},
		{5, 1, 5},
		{0, 1, 0},
	}
	for _, tc := range tests {
		got := NearestRat(big.NewRat(tc.p, tc.q))
		if got.Int64() != tc.want {
			t.Errorf("NearestRat(%d/%d) = %s, want %d", tc.p, tc.q, got, tc.want)
		}
	}
}

func TestExpandRat(t *testing.T) {
	tests := []struct {
		p, q int64
		want []int64
	}{
		{1, 2, []int64{1, 2}},
		{5, 1, []int64{5}},
		{0, 1, []int64{0}},
		{-1, 2, []int64{0, 2}},
	}
	for _, tc := range tests {
		cf := ExpandRat(big.NewRat(tc.p, tc.q))
		if len(cf) != len(tc.want) {
			t.Errorf("ExpandRat(%d/%d) = %v, want %v", tc.p, tc.q, cf, tc.want)
			continue
		}
		for i := range cf {
			if cf[i].Int64() != tc.want[i] {
				t.Errorf("ExpandRat(%d/%d)[%d] = %s, want %d", tc.p, tc.q, i, cf[i], tc.want[i])
			}
		}
	}
}

func TestExpandRatReconstructs(t *testing.T) {
	// The convergent of the full expansion recovers the rational exactly.
	rationals := []*big.Rat{
		big.NewRat(103, 77), big.NewRat(-355, 113), big.NewRat(1, 99), big.NewRat(2026, 5),
	}
	for _, x := range rationals {
		cf := ExpandRat(x)
		m := Build(cf)
		// The word T^a0*S*...*T^ak evaluates the continued fraction at 0:
		// the trailing T^ak acts before the last inversion. At oo the last
		// term drops out, leaving the previous convergent.
		got := m.ActOnCusp(sl2z.Zero())
		want := sl2z.NewCuspBig(x.Num(), x.Denom())
		if !got.Equal(want) {
			t.Errorf("Build(ExpandRat(%s))(0) = %s, want %s", x, got, want)
		}
		alt := m.Mul(sl2z.S()).ActOnCusp(sl2z.Infinity())
		if !alt.Equal(want) {
			t.Errorf("Build(ExpandRat(%s))*S(oo) = %s, want %s", x, alt, want)
		}
	}
}

func TestExpandFloat(t *testing.T) {
	cf := ExpandFloat(0.5, 0)
	if len(cf) != 2 || cf[0] != 1 || cf[1] != 2 {
		t.Errorf("ExpandFloat(0.5) = %v, want [1 2]", cf)
	}
}

func TestExpandBigFloatPi(t *testing.T) {
	pi, _, err := big.ParseFloat("3.14159265358979323846264338327950288", 10, 120, big.ToNearestEven)
	if err != nil {
		t.Fatal(err)
	}
	cf := ExpandBigFloat(pi, 5)
	want := []int64{3, -7, 16}
	for i, w := range want {
		if cf[i].Int64() != w {
			t.Errorf("ExpandBigFloat(pi)[%d] = %s, want %d", i, cf[i], w)
		}
	}
}

func TestBuild(t *testing.T) {
	if got, want := BuildInt64([]int64{1, 2}), sl2z.New(1, 1, 1, 2); !got.Equal(want) {
		t.Errorf("Build([1 2]) = %s, want %s", got, want)
	}
	if got := Build(nil); !got.IsIdentity() {
		t.Errorf("Build(nil) = %s, want identity", got)
	}
}

func rebuild(cf []*big.Int, sign int) sl2z.Matrix {
	m := Build(cf)
	if sign < 0 {
		m = m.Neg()
	}
	return m
}

func TestFactorRoundTrip(t *testing.T) {
	s, tt := sl2z.S(), sl2z.T()
	words := []sl2z.Matrix{
		sl2z.Identity(),
		sl2z.Identity().Neg(),
		s,
		tt,
		sl2z.TPow(-4),
		s.Mul(tt).Mul(s),
		tt.Mul(s).Mul(tt).Mul(s).Mul(sl2z.TPow(3)),
		sl2z.TPow(-2).Mul(s).Mul(sl2z.TPow(7)).Mul(s).Mul(sl2z.TPow(-1)).Mul(s),
		sl2z.New(-411557987, -1068966896, -131002976, -340262731),
	}
	for _, a := range words {
		cf, sign, err := Factor(a)
		if err != nil {
			t.Errorf("Factor(%s): %v", a, err)
			continue
		}
		if got := rebuild(cf, sign); !got.Equal(a) {
			t.Errorf("rebuild(Factor(%s)) = %s (sign %d, cf %v)", a, got, sign, cf)
		}
	}
}

func TestFactorUpperTriangular(t *testing.T) {
	cf, sign, err := Factor(sl2z.TPow(9))
	if err != nil {
		t.Fatal(err)
	}
	if len(cf) != 1 || cf[0].Int64() != 9 || sign != 1 {
		t.Errorf("Factor(T^9) = %v, %d", cf, sign)
	}
	cf, sign, err = Factor(sl2z.TPow(9).Neg())
	if err != nil {
		t.Fatal(err)
	}
	if got := rebuild(cf, sign); !got.Equal(sl2z.TPow(9).Neg()) {
		t.Errorf("rebuild(Factor(-T^9)) = %s", got)
	}
}
