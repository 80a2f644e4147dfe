package eval

import "github.com/xiaoyxue/penrose/internal/core/adt"

// Overlay is the varying-value overlay of: an immutable map,
// consulted before the translation during one evaluation pass, built fresh
// from a varying-state vector for each energy/shape evaluation.
type Overlay map[string]adt.TagExpr

// NewOverlay builds an overlay pairing each path with its current scalar
// value, as adt.DoneTag so a lookup behaves exactly like a memoized field.
func NewOverlay(paths []adt.Path, values []float64) Overlay {
	o := make(Overlay, len(paths))
	for i, p := range paths {
		o[p.String()] = adt.DoneTag{V: adt.Float{X: values[i]}}
	}
	return o
}

func (o Overlay) lookup(p adt.Path) (adt.TagExpr, bool) {
	te, ok := o[p.String()]
	return te, ok
}
