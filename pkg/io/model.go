package io

import (
	"math/big"
	"time"

	"github.com/halfplane/modgroup/pkg/sl2z"
)

// SchemaVersion identifies the JSON layout; bumped on incompatible change.
const SchemaVersion = 1

// Model is the serialized form of a built group.
type Model struct {
	Schema    int       `json:"schema"`
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	// Generator descriptor in one-line image notation.
	PermS []int `json:"perm_s"`
	PermR []int `json:"perm_r"`

	// Level is N for Gamma0(N) groups, 0 otherwise.
	Level int64 `json:"level,omitempty"`

	Index            int       `json:"index"`
	GeneralisedLevel int       `json:"generalised_level"`
	Signature        signature `json:"signature"`

	Representatives []matrix `json:"representatives"`
	Vertices        []vertex `json:"vertices"`
	Cusps           []cusp   `json:"cusps"`
}

type signature struct {
	Cusps int `json:"cusps"`
	Nu2   int `json:"nu2"`
	Nu3   int `json:"nu3"`
	Genus int `json:"genus"`
}

// matrix holds the entries a, b, c, d in row-major order.
type matrix [4]*big.Int

type vertex struct {
	P       *big.Int `json:"p"`
	Q       *big.Int `json:"q"`
	Cosets  []int    `json:"cosets"`
	Cusp    int      `json:"cusp"`
	CuspMap matrix   `json:"cusp_map"`
	Width   int      `json:"width"`
}

type cusp struct {
	P          *big.Int `json:"p"`
	Q          *big.Int `json:"q"`
	Width      int      `json:"width"`
	Normalizer matrix   `json:"normalizer"`
	Stabilizer matrix   `json:"stabilizer"`
	Vertices   []int    `json:"vertices"`
}

func fromMatrix(m sl2z.Matrix) matrix {
	return matrix{m.A(), m.B(), m.C(), m.D()}
}

func (m matrix) toMatrix() sl2z.Matrix {
	return sl2z.FromBig(m[0], m[1], m[2], m[3])
}

func (m matrix) valid() bool {
	return m[0] != nil && m[1] != nil && m[2] != nil && m[3] != nil
}
