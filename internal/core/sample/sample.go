// Package sample resolves every unresolved degree of freedom in a
// translation before the optimizer runs: shape properties the catalog
// says are uninitialized get a catalog-supplied sampler draw, and every
// bare `Vary` scalar or vector field (wherever it appears, shape property
// or plain field) gets a canvas-uniform draw. Both passes thread the RNG
// explicitly so a fixed seed reproduces the same initial translation.
package sample

import (
	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/analyze"
	"github.com/xiaoyxue/penrose/internal/core/catalog"
	"github.com/xiaoyxue/penrose/internal/core/rng"
	"github.com/xiaoyxue/penrose/internal/core/translation"
)

// Canvas carries the output dimensions a Vary draw is scaled against.
type Canvas struct {
	Width, Height float64
}

func (c Canvas) halfWidth() float64 {
	if c.Width <= 0 {
		return 200
	}
	return c.Width / 2
}

// Scalar draws one canvas-uniform value, the same rule a bare Vary marker
// resolves to during Translation. Exported so a resample pass can draw a
// fresh varying-state vector without re-running uninitialized-property
// sampling.
func Scalar(r *rng.RNG, canvas Canvas) float64 {
	return sampleScalar(r, canvas)
}

func sampleScalar(r *rng.RNG, canvas Canvas) float64 {
	w := canvas.halfWidth()
	return r.FloatRange(-w, w)
}

// Translation fills in every absent shape property via the catalog's
// per-property sampler, then resolves every remaining Vary scalar/vector
// expression to a concrete value. It returns the new translation and the
// advanced RNG.
func Translation(t *translation.Translation, cat catalog.Catalog, canvas Canvas, r *rng.RNG) (*translation.Translation, *rng.RNG, *adt.Bottom) {
	cur, curR, err := fillUninitialized(t, cat, r)
	if err != nil {
		return t, r, err
	}
	return resolveVaryMarkers(cur, canvas, curR)
}

// fillUninitialized walks every graphical primitive's full catalog schema
// -- scalar and non-scalar alike -- and inserts a sampled value for every
// property absent from the shape's property dict, tagging it Pending or
// Done per the catalog's Pending predicate. analyze.UninitializedPaths
// scopes out scalar properties because that enumeration feeds
// State.UninitializedPaths, the narrower "needs re-substitution after
// resample" set; the sampler itself has no such narrowing and must cover
// every schema property so a later Eval never hits an absent one.
// Computed properties (catalog.ComputedProperty) are never stored: the
// evaluator derives them from other properties on every access.
func fillUninitialized(t *translation.Translation, cat catalog.Catalog, r *rng.RNG) (*translation.Translation, *rng.RNG, *adt.Bottom) {
	shapePaths, err := analyze.ShapePaths(t)
	if err != nil {
		return t, r, err
	}

	cur, curR := t, r
	for _, fp := range shapePaths {
		fe, ok := cur.LookupField(fp)
		if !ok {
			return cur, curR, adt.Errf(adt.StructuralError, "no such field %s", fp)
		}
		gpi, ok := adt.IsGPI(fe)
		if !ok {
			return cur, curR, adt.Errf(adt.StructuralError, "field %s is not a graphical primitive", fp)
		}
		for _, sch := range cat.Schema(gpi.ShapeType) {
			if sch.Name == "name" {
				continue
			}
			if _, ok := cat.ComputedProperty(gpi.ShapeType, sch.Name); ok {
				continue
			}
			if _, ok := gpi.Props.Get(sch.Name); ok {
				continue
			}
			pp := adt.PropertyPath{BForm: fp.BForm, Field: fp.Field, Property: sch.Name}
			v := sch.Sample(curR)
			var te adt.TagExpr
			if cat.Pending(gpi.ShapeType, sch.Name) {
				te = adt.PendingTag{V: v}
			} else {
				te = adt.DoneTag{V: v}
			}
			nt, berr := cur.InsertProperty(pp, te, true)
			if berr != nil {
				return cur, curR, berr
			}
			cur = nt
			fe, _ = cur.LookupField(fp)
			gpi, _ = adt.IsGPI(fe)
		}
	}
	return cur, curR, nil
}

// resolveExpr reports whether e is a Vary marker (a bare AFloat or a
// vector literal with at least one Vary element) and, if so, the value it
// resolves to.
func resolveExpr(e adt.Expr, canvas Canvas, r *rng.RNG) (adt.Value, bool) {
	switch x := e.(type) {
	case adt.AFloat:
		if !x.Vary {
			return nil, false
		}
		return adt.Float{X: sampleScalar(r, canvas)}, true
	case adt.VectorExpr:
		anyVary := false
		elems := make([]float64, len(x.Elems))
		for i, el := range x.Elems {
			af, ok := el.(adt.AFloat)
			if !ok {
				return nil, false
			}
			if af.Vary {
				elems[i] = sampleScalar(r, canvas)
				anyVary = true
				continue
			}
			elems[i] = af.Val
		}
		if !anyVary {
			return nil, false
		}
		return adt.VectorVal{Elems: elems}, true
	default:
		return nil, false
	}
}

func resolveVaryMarkers(t *translation.Translation, canvas Canvas, r *rng.RNG) (*translation.Translation, *rng.RNG, *adt.Bottom) {
	type hit struct {
		fieldPath adt.FieldPath
		propPath  *adt.PropertyPath
		v         adt.Value
	}

	var hits []hit
	curR := r
	err := t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		fp := adt.FieldPath{BForm: adt.BindingForm{Kind: adt.SubstanceBound, Name: object}, Field: field}
		if gpi, ok := adt.IsGPI(fe); ok {
			for _, name := range gpi.Props.Keys() {
				te, _ := gpi.Props.Get(name)
				opt, ok := te.(adt.OptEvalTag)
				if !ok {
					continue
				}
				if v, ok := resolveExpr(opt.E, canvas, curR); ok {
					pp := adt.PropertyPath{BForm: fp.BForm, Field: fp.Field, Property: name}
					hits = append(hits, hit{propPath: &pp, v: v})
				}
			}
			return nil
		}
		opt, ok := fe.(adt.OptEvalTag)
		if !ok {
			return nil
		}
		if v, ok := resolveExpr(opt.E, canvas, curR); ok {
			hits = append(hits, hit{fieldPath: fp, v: v})
		}
		return nil
	})
	if err != nil {
		return t, curR, err
	}

	cur := t
	for _, h := range hits {
		if h.propPath != nil {
			nt, berr := cur.InsertProperty(*h.propPath, adt.DoneTag{V: h.v}, true)
			if berr != nil {
				return cur, curR, berr
			}
			cur = nt
			continue
		}
		nt, berr := cur.InsertField(h.fieldPath, adt.DoneTag{V: h.v}, true)
		if berr != nil {
			return cur, curR, berr
		}
		cur = nt
	}
	return cur, curR, nil
}
