package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/halfplane/modgroup/pkg/subgroup"
)

// Export captures the immutable field set of a built group.
func Export(g *subgroup.Group) *Model {
	m := &Model{
		Schema:           SchemaVersion,
		RunID:            uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
		PermS:            g.PermS().List(),
		PermR:            g.PermR().List(),
		Level:            g.Level(),
		Index:            g.Index(),
		GeneralisedLevel: g.GeneralisedLevel(),
	}
	sig := g.Signature()
	m.Signature = signature{Cusps: sig.Cusps, Nu2: sig.Nu2, Nu3: sig.Nu3, Genus: sig.Genus}

	for _, v := range g.CosetRepresentatives() {
		m.Representatives = append(m.Representatives, fromMatrix(v))
	}
	for _, v := range g.Vertices() {
		m.Vertices = append(m.Vertices, vertex{
			P:       v.Point.P(),
			Q:       v.Point.Q(),
			Cosets:  v.Cosets,
			Cusp:    v.Cusp,
			CuspMap: fromMatrix(v.CuspMap),
			Width:   v.Width,
		})
	}
	for _, c := range g.CuspClasses() {
		m.Cusps = append(m.Cusps, cusp{
			P:          c.Point.P(),
			Q:          c.Point.Q(),
			Width:      c.Width,
			Normalizer: fromMatrix(c.Normalizer),
			Stabilizer: fromMatrix(c.Stabilizer),
			Vertices:   c.Vertices,
		})
	}
	return m
}

// WriteJSON encodes a model as indented JSON.
func WriteJSON(m *Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a model to a JSON file at path.
func ExportJSON(m *Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}
