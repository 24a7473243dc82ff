package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/halfplane/modgroup/pkg/errors"
	"github.com/halfplane/modgroup/pkg/perm"
	"github.com/halfplane/modgroup/pkg/subgroup"
)

// ReadJSON decodes a model from r and validates its structure.
func ReadJSON(r io.Reader) (*Model, error) {
	var m Model
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ImportJSON reads a model from a JSON file at path.
func ImportJSON(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func validate(m *Model) error {
	if m.Schema != SchemaVersion {
		return errors.New(errors.CodeInvalidFormat,
			"unsupported schema version %d, expected %d", m.Schema, SchemaVersion)
	}
	n := m.Index
	if n < 1 {
		return errors.New(errors.CodeInvalidFormat, "index %d is not positive", n)
	}
	if len(m.PermS) != n || len(m.PermR) != n {
		return errors.New(errors.CodeInvalidFormat,
			"generator images have lengths %d and %d, expected the index %d",
			len(m.PermS), len(m.PermR), n)
	}
	if len(m.Representatives) != n {
		return errors.New(errors.CodeInvalidFormat,
			"%d coset representatives for index %d", len(m.Representatives), n)
	}
	for i, r := range m.Representatives {
		if !r.valid() {
			return errors.New(errors.CodeInvalidFormat, "representative %d has missing entries", i+1)
		}
	}
	for i, v := range m.Vertices {
		if v.P == nil || v.Q == nil || !v.CuspMap.valid() {
			return errors.New(errors.CodeInvalidFormat, "vertex %d has missing entries", i)
		}
		if v.Cusp < 0 || v.Cusp >= len(m.Cusps) {
			return errors.New(errors.CodeInvalidFormat,
				"vertex %d refers to cusp class %d of %d", i, v.Cusp, len(m.Cusps))
		}
	}
	for i, c := range m.Cusps {
		if c.P == nil || c.Q == nil || !c.Normalizer.valid() || !c.Stabilizer.valid() {
			return errors.New(errors.CodeInvalidFormat, "cusp class %d has missing entries", i)
		}
	}
	return nil
}

// Rebuild reconstructs the group from the model's generator descriptor and
// cross-checks the stored invariants against the rebuilt ones.
func Rebuild(m *Model) (*subgroup.Group, error) {
	var (
		g   *subgroup.Group
		err error
	)
	if m.Level > 0 {
		g, err = subgroup.NewGamma0(m.Level)
	} else {
		var pS, pR perm.Perm
		if pS, err = perm.New(m.PermS); err != nil {
			return nil, errors.Wrap(errors.CodeInvalidFormat, err, "stored permS is not a permutation")
		}
		if pR, err = perm.New(m.PermR); err != nil {
			return nil, errors.Wrap(errors.CodeInvalidFormat, err, "stored permR is not a permutation")
		}
		g, err = subgroup.New(pS, pR)
	}
	if err != nil {
		return nil, err
	}

	sig := g.Signature()
	stored := subgroup.Signature{
		Index: m.Index,
		Cusps: m.Signature.Cusps,
		Nu2:   m.Signature.Nu2,
		Nu3:   m.Signature.Nu3,
		Genus: m.Signature.Genus,
	}
	if sig != stored {
		return nil, errors.New(errors.CodeConsistency,
			"stored signature %+v disagrees with rebuilt signature %+v", stored, sig)
	}
	if g.GeneralisedLevel() != m.GeneralisedLevel {
		return nil, errors.New(errors.CodeConsistency,
			"stored generalised level %d disagrees with rebuilt %d",
			m.GeneralisedLevel, g.GeneralisedLevel())
	}
	reps := g.CosetRepresentatives()
	for i, r := range m.Representatives {
		if !r.toMatrix().Equal(reps[i]) {
			return nil, errors.New(errors.CodeConsistency,
				"stored representative %d disagrees with rebuilt one", i+1)
		}
	}
	return g, nil
}
