// Package shapeset is a minimal, in-process stand-in for an external shape
// catalog. A production embedder would supply its own catalog.Catalog
// (typically generated from a style library); this one exists so the
// core's pipeline -- sampler, evaluator, layering solver, energy
// assembler, state lifecycle -- can run and be tested end to end without
// one.
package shapeset

import (
	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/catalog"
)

type builtin struct {
	schemas map[string][]catalog.PropSchema
	objs    map[string][]string
	constrs map[string][]string
	pending map[string]bool // key "type.property"
}

// New returns the built-in catalog covering Circle, Rectangle, Line and
// Text, the four shape types exercised by this module's tests and CLI
// fixtures.
func New() catalog.Catalog {
	b := &builtin{
		schemas: map[string][]catalog.PropSchema{},
		objs:    map[string][]string{},
		constrs: map[string][]string{},
		pending: map[string]bool{},
	}

	b.schemas["Circle"] = []catalog.PropSchema{
		{Name: "r", Kind: adt.FloatKind, Sample: sampleRadius},
		{Name: "center", Kind: adt.VectorKind, Sample: sampleVector2},
		{Name: "strokeWidth", Kind: adt.FloatKind, Sample: sampleStrokeWidth},
		{Name: "rotation", Kind: adt.FloatKind, Sample: sampleZero},
		{Name: "color", Kind: adt.ColorKind, Sample: sampleColor},
		{Name: "pathData", Kind: adt.PathDataKind, Sample: sampleEmptyPath},
	}
	b.objs["Circle"] = nil
	b.constrs["Circle"] = nil
	b.pending["Circle.pathData"] = true

	b.schemas["Rectangle"] = []catalog.PropSchema{
		{Name: "center", Kind: adt.VectorKind, Sample: sampleVector2},
		{Name: "finalW", Kind: adt.FloatKind, Sample: sampleSide},
		{Name: "finalH", Kind: adt.FloatKind, Sample: sampleSide},
		{Name: "rotation", Kind: adt.FloatKind, Sample: sampleZero},
		{Name: "strokeWidth", Kind: adt.FloatKind, Sample: sampleStrokeWidth},
		{Name: "color", Kind: adt.ColorKind, Sample: sampleColor},
	}
	b.objs["Rectangle"] = nil
	b.constrs["Rectangle"] = nil

	b.schemas["Line"] = []catalog.PropSchema{
		{Name: "start", Kind: adt.VectorKind, Sample: sampleVector2},
		{Name: "end", Kind: adt.VectorKind, Sample: sampleVector2},
		{Name: "strokeWidth", Kind: adt.FloatKind, Sample: sampleStrokeWidth},
		{Name: "arrowheadSize", Kind: adt.FloatKind, Sample: sampleOne},
		{Name: "color", Kind: adt.ColorKind, Sample: sampleColor},
	}
	b.objs["Line"] = nil
	b.constrs["Line"] = []string{"lengthPositive"}

	b.schemas["Text"] = []catalog.PropSchema{
		{Name: "center", Kind: adt.VectorKind, Sample: sampleVector2},
		{Name: "finalW", Kind: adt.FloatKind, Sample: sampleZero},
		{Name: "finalH", Kind: adt.FloatKind, Sample: sampleZero},
		{Name: "string", Kind: adt.StyleKind, Sample: sampleEmptyString},
		{Name: "rotation", Kind: adt.FloatKind, Sample: sampleZero},
	}
	b.objs["Text"] = nil
	b.constrs["Text"] = nil
	b.pending["Text.finalW"] = true
	b.pending["Text.finalH"] = true

	return b
}

func (b *builtin) Schema(shapeType string) []catalog.PropSchema {
	return b.schemas[shapeType]
}

func (b *builtin) DefaultObjectives(shapeType string) []string {
	return b.objs[shapeType]
}

func (b *builtin) DefaultConstraints(shapeType string) []string {
	return b.constrs[shapeType]
}

func (b *builtin) Pending(shapeType, property string) bool {
	return b.pending[shapeType+"."+property]
}

func (b *builtin) ComputedProperty(shapeType, property string) (catalog.ComputedProperty, bool) {
	return catalog.ComputedProperty{}, false
}

func sampleRadius(r catalog.Rand) adt.Value  { return adt.Float{X: 20 + r.Float64()*30} }
func sampleSide(r catalog.Rand) adt.Value    { return adt.Float{X: 30 + r.Float64()*50} }
func sampleStrokeWidth(r catalog.Rand) adt.Value { return adt.Float{X: 1 + r.Float64()*2} }
func sampleZero(r catalog.Rand) adt.Value    { return adt.Float{X: 0} }
func sampleOne(r catalog.Rand) adt.Value     { return adt.Float{X: 1} }
func sampleEmptyString(r catalog.Rand) adt.Value { return adt.Style{Name: ""} }
func sampleEmptyPath(r catalog.Rand) adt.Value   { return adt.PathData{} }

func sampleColor(r catalog.Rand) adt.Value {
	return adt.Color{Space: adt.RGBA, C1: r.Float64(), C2: r.Float64(), C3: r.Float64(), Alpha: 1}
}

// sampleVector2 draws both components of a 2-element optimized vector
// property (center/start/end) in one call, uniformly over a fixed
// [-200, 200] square -- the sampler never asks for these components
// separately, so the schema stores one sampler for the whole property.
func sampleVector2(r catalog.Rand) adt.Value {
	return adt.VectorVal{Elems: []float64{
		r.Float64()*400 - 200,
		r.Float64()*400 - 200,
	}}
}
