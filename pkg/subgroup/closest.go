package subgroup

import (
	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/sl2z"
)

// ClosestVertex returns the index of the vertex closest to x+iy in the
// hyperbolic sense: the vertex whose width-scaled normalizing map gives the
// point the greatest imaginary part. Ties go to the lowest vertex index, a
// fixed deterministic rule.
func (g *Group) ClosestVertex(x, y float64) (int, error) {
	if !(y > 0) {
		return 0, errors.New(errors.CodeInvalidFormat,
			"point (%g, %g) is not in the upper half-plane", x, y)
	}
	best := 0
	bestVal := g.vmaps[0].ImagAfter(x, y) / float64(g.vertices[0].Width)
	for i := 1; i < len(g.vertices); i++ {
		v := g.vmaps[i].ImagAfter(x, y) / float64(g.vertices[i].Width)
		if v > bestVal {
			best, bestVal = i, v
		}
	}
	return best, nil
}

// ClosestVertexPoint is ClosestVertex returning the vertex value itself.
func (g *Group) ClosestVertexPoint(x, y float64) (sl2z.Cusp, error) {
	i, err := g.ClosestVertex(x, y)
	if err != nil {
		return sl2z.Cusp{}, err
	}
	return g.vertices[i].Point, nil
}

// ClosestCusp returns the index of the cusp class of the closest vertex.
func (g *Group) ClosestCusp(x, y float64) (int, error) {
	i, err := g.ClosestVertex(x, y)
	if err != nil {
		return 0, err
	}
	return g.vertices[i].Cusp, nil
}

// ClosestCuspPoint is ClosestCusp returning the canonical cusp value.
func (g *Group) ClosestCuspPoint(x, y float64) (sl2z.Cusp, error) {
	i, err := g.ClosestCusp(x, y)
	if err != nil {
		return sl2z.Cusp{}, err
	}
	return g.cusps[i].Point, nil
}

// buildVertexMaps precomputes, for every vertex, the composition of its
// cusp map with the inverse normalizer of its cusp: the matrix sending the
// vertex to infinity through its canonical cusp.
func (g *Group) buildVertexMaps() {
	g.vmaps = make([]sl2z.Matrix, len(g.vertices))
	for i, v := range g.vertices {
		ni := g.cusps[v.Cusp].Normalizer.Inverse()
		g.vmaps[i] = ni.Mul(v.CuspMap)
	}
}
