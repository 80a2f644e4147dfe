// Package analyze implements the pure translation traversals: enumerating
// varying paths, uninitialized paths, pending paths, shape
// names/properties, and declared objective/constraint functions. Every
// fold here is a read-only pass over a translation.Translation; none of
// them mutate it.
package analyze

import (
	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/catalog"
	"github.com/xiaoyxue/penrose/internal/core/translation"
)

// unoptimized is the scalar shape-property set excluded from the varying
// set by policy.
var unoptimized = map[string]bool{
	"rotation":       true,
	"strokeWidth":    true,
	"thickness":      true,
	"transform":      true,
	"transformation": true,
	"opacity":        true,
	"finalW":         true,
	"finalH":         true,
	"arrowheadSize":  true,
}

// optimizedVector is the small set of vector-valued properties expanded
// element-wise into the varying set. Hard-coded to 2 components: every
// member of this set is a point, never a higher-dimensional vector.
var optimizedVector = map[string]bool{
	"start":  true,
	"end":    true,
	"center": true,
}

func fieldPath(object, field string) adt.FieldPath {
	return adt.FieldPath{BForm: adt.BindingForm{Kind: adt.SubstanceBound, Name: object}, Field: field}
}

func propPath(object, field, prop string) adt.PropertyPath {
	return adt.PropertyPath{BForm: adt.BindingForm{Kind: adt.SubstanceBound, Name: object}, Field: field, Property: prop}
}

// VaryingPaths enumerates every scalar path exposed to the optimizer, in
// deterministic translation order.
func VaryingPaths(t *translation.Translation, cat catalog.Catalog) ([]adt.Path, *adt.Bottom) {
	var out []adt.Path
	err := t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		fp := fieldPath(object, field)
		if gpi, ok := adt.IsGPI(fe); ok {
			out = append(out, varyingFromGPI(gpi, object, field, cat)...)
			return nil
		}
		out = append(out, varyingFromPlainField(fp, fe)...)
		return nil
	})
	return out, err
}

func varyingFromPlainField(fp adt.FieldPath, fe adt.FieldExpr) []adt.Path {
	tag, ok := fe.(adt.TagExpr)
	if !ok {
		return nil
	}
	opt, ok := tag.(adt.OptEvalTag)
	if !ok {
		return nil
	}
	switch x := opt.E.(type) {
	case adt.AFloat:
		if x.Vary {
			return []adt.Path{fp}
		}
	case adt.VectorExpr:
		var out []adt.Path
		for i, e := range x.Elems {
			if af, ok := e.(adt.AFloat); ok && af.Vary {
				out = append(out, adt.AccessPath{Inner: fp, Indices: []int{i}})
			}
		}
		return out
	}
	return nil
}

func varyingFromGPI(gpi *adt.GPI, object, field string, cat catalog.Catalog) []adt.Path {
	var out []adt.Path
	for _, sch := range cat.Schema(gpi.ShapeType) {
		if cat.Pending(gpi.ShapeType, sch.Name) {
			continue
		}
		switch {
		case sch.Kind&adt.ScalarKinds != 0:
			if unoptimized[sch.Name] {
				continue
			}
			pp := propPath(object, field, sch.Name)
			te, ok := gpi.Props.Get(sch.Name)
			if !ok {
				out = append(out, pp)
				continue
			}
			if opt, ok := te.(adt.OptEvalTag); ok {
				if af, ok := opt.E.(adt.AFloat); ok && af.Vary {
					out = append(out, pp)
				}
			}

		case sch.Kind == adt.VectorKind && optimizedVector[sch.Name]:
			pp := propPath(object, field, sch.Name)
			te, ok := gpi.Props.Get(sch.Name)
			if !ok {
				out = append(out, adt.AccessPath{Inner: pp, Indices: []int{0}}, adt.AccessPath{Inner: pp, Indices: []int{1}})
				continue
			}
			opt, ok := te.(adt.OptEvalTag)
			if !ok {
				continue
			}
			vec, ok := opt.E.(adt.VectorExpr)
			if !ok {
				continue
			}
			for i, e := range vec.Elems {
				if af, ok := e.(adt.AFloat); ok && af.Vary {
					out = append(out, adt.AccessPath{Inner: pp, Indices: []int{i}})
				}
			}
		}
	}
	return out
}

// UninitializedPaths enumerates the non-scalar shape properties that have
// no dict entry yet, per shape. This is narrower than the sampler's own
// notion of "absent": it feeds State.UninitializedPaths, the set that
// needs re-substitution after a resample, which by construction only ever
// touches non-scalar properties (scalars are re-sampled by varying-state
// resampling, not by re-running this pass). The sampler itself
// (sample.fillUninitialized) covers every absent schema property,
// scalar included, regardless of this narrower set.
func UninitializedPaths(t *translation.Translation, cat catalog.Catalog) ([]adt.Path, *adt.Bottom) {
	var out []adt.Path
	err := t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		gpi, ok := adt.IsGPI(fe)
		if !ok {
			return nil
		}
		for _, sch := range cat.Schema(gpi.ShapeType) {
			if sch.Name == "name" {
				continue
			}
			if sch.Kind&adt.ScalarKinds != 0 {
				continue
			}
			if _, ok := gpi.Props.Get(sch.Name); !ok {
				out = append(out, propPath(object, field, sch.Name))
			}
		}
		return nil
	})
	return out, err
}

// PendingPaths enumerates property paths whose current TagExpr is Pending.
func PendingPaths(t *translation.Translation) ([]adt.Path, *adt.Bottom) {
	var out []adt.Path
	err := t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		gpi, ok := adt.IsGPI(fe)
		if !ok {
			return nil
		}
		for _, name := range gpi.Props.Keys() {
			te, _ := gpi.Props.Get(name)
			if _, ok := te.(adt.PendingTag); ok {
				out = append(out, propPath(object, field, name))
			}
		}
		return nil
	})
	return out, err
}

// ShapePaths enumerates the field path of every graphical primitive, in
// translation order.
func ShapePaths(t *translation.Translation) ([]adt.FieldPath, *adt.Bottom) {
	var out []adt.FieldPath
	err := t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		if _, ok := adt.IsGPI(fe); ok {
			out = append(out, fieldPath(object, field))
		}
		return nil
	})
	return out, err
}

// ShapeProperty is one (object, field, property) triple.
type ShapeProperty struct {
	Object, Field, Property string
}

// ShapeProperties enumerates every (object, field, property) triple over
// every graphical primitive's current dict.
func ShapeProperties(t *translation.Translation) ([]ShapeProperty, *adt.Bottom) {
	var out []ShapeProperty
	err := t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		gpi, ok := adt.IsGPI(fe)
		if !ok {
			return nil
		}
		for _, name := range gpi.Props.Keys() {
			out = append(out, ShapeProperty{Object: object, Field: field, Property: name})
		}
		return nil
	})
	return out, err
}

// Decl is one declared objective or constraint: `name(args)`.
type Decl struct {
	Name string
	Args []adt.Expr
}

// Declarations collects the ObjFn/ConstrFn declarations found anywhere in
// the translation, plus the default objectives/constraints the shape
// catalog attaches to every graphical primitive.
func Declarations(t *translation.Translation, cat catalog.Catalog) (objs, constrs []Decl, err *adt.Bottom) {
	err = t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		if gpi, ok := adt.IsGPI(fe); ok {
			arg := adt.EPath{P: fieldPath(object, field)}
			for _, name := range cat.DefaultObjectives(gpi.ShapeType) {
				objs = append(objs, Decl{Name: name, Args: []adt.Expr{arg}})
			}
			for _, name := range cat.DefaultConstraints(gpi.ShapeType) {
				constrs = append(constrs, Decl{Name: name, Args: []adt.Expr{arg}})
			}
			return nil
		}
		opt, ok := fe.(adt.OptEvalTag)
		if !ok {
			return nil
		}
		switch x := opt.E.(type) {
		case adt.ObjFn:
			objs = append(objs, Decl{Name: x.Name, Args: x.Args})
		case adt.ConstrFn:
			constrs = append(constrs, Decl{Name: x.Name, Args: x.Args})
		}
		return nil
	})
	return objs, constrs, err
}
