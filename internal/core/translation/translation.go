// Package translation implements the two-level object-name -> field-name
// store: lookup, override-gated insertion, and deterministic folds over
// every (object, field, field-expr) triple.
//
// A Translation is the source of truth for a compiled diagram. It is never
// mutated in place across an API boundary: every operation that changes it
// returns a new, updated value.
package translation

import (
	"github.com/xiaoyxue/penrose/internal/core/adt"
)

// object holds one object's fields in insertion order, mirroring the
// ordered-arc convention used for adt.PropertyDict.
type object struct {
	keys   []string
	fields map[string]adt.FieldExpr
}

func newObject() *object {
	return &object{fields: map[string]adt.FieldExpr{}}
}

func (o *object) set(field string, fe adt.FieldExpr) {
	if _, ok := o.fields[field]; !ok {
		o.keys = append(o.keys, field)
	}
	o.fields[field] = fe
}

func (o *object) clone() *object {
	n := &object{
		keys:   append([]string(nil), o.keys...),
		fields: make(map[string]adt.FieldExpr, len(o.fields)),
	}
	for k, v := range o.fields {
		n.fields[k] = v
	}
	return n
}

// Translation is the record `{ map : object-name -> field-name -> FieldExpr,
// warnings : [string] }`.
type Translation struct {
	objOrder []string
	objects  map[string]*object
	Warnings []string
}

func New() *Translation {
	return &Translation{objects: map[string]*object{}}
}

func (t *Translation) ensureObject(name string) *object {
	o, ok := t.objects[name]
	if !ok {
		o = newObject()
		t.objects[name] = o
		t.objOrder = append(t.objOrder, name)
	}
	return o
}

// Objects returns the object names in deterministic (insertion) order.
func (t *Translation) Objects() []string {
	out := make([]string, len(t.objOrder))
	copy(out, t.objOrder)
	return out
}

// Fields returns object's field names in deterministic order, or nil if
// the object does not exist.
func (t *Translation) Fields(object string) []string {
	o, ok := t.objects[object]
	if !ok {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// LookupField returns the field expression at p, if any.
func (t *Translation) LookupField(p adt.FieldPath) (adt.FieldExpr, bool) {
	o, ok := t.objects[p.BForm.Name]
	if !ok {
		return nil, false
	}
	fe, ok := o.fields[p.Field]
	return fe, ok
}

// LookupProperty returns the TagExpr at a property path. It fails
// (ok==false) if the field is absent, is not a GPI, or the property is
// absent from the GPI's property dict.
func (t *Translation) LookupProperty(p adt.PropertyPath) (adt.TagExpr, bool) {
	fe, ok := t.LookupField(adt.FieldPath{BForm: p.BForm, Field: p.Field})
	if !ok {
		return nil, false
	}
	gpi, ok := adt.IsGPI(fe)
	if !ok {
		return nil, false
	}
	te, ok := gpi.Props.Get(p.Property)
	return te, ok
}

// InsertField inserts fe at p. It fails with a StructuralError when the
// target already exists and override is false.
func (t *Translation) InsertField(p adt.FieldPath, fe adt.FieldExpr, override bool) (*Translation, *adt.Bottom) {
	if o, ok := t.objects[p.BForm.Name]; ok {
		if _, exists := o.fields[p.Field]; exists && !override {
			return t, adt.Errf(adt.StructuralError, "path %s already exists", p)
		}
	}
	nt, o := t.cloneObjectFor(p.BForm.Name)
	o.set(p.Field, fe)
	return nt, nil
}

// InsertProperty inserts v at a property path whose field must already be
// a GPI.
func (t *Translation) InsertProperty(p adt.PropertyPath, v adt.TagExpr, override bool) (*Translation, *adt.Bottom) {
	fe, ok := t.LookupField(adt.FieldPath{BForm: p.BForm, Field: p.Field})
	if !ok {
		return t, adt.Errf(adt.StructuralError, "no such field %s.%s", p.BForm.Name, p.Field)
	}
	gpi, ok := adt.IsGPI(fe)
	if !ok {
		return t, adt.Errf(adt.StructuralError, "field %s.%s is not a graphical primitive", p.BForm.Name, p.Field)
	}
	if _, exists := gpi.Props.Get(p.Property); exists && !override {
		return t, adt.Errf(adt.StructuralError, "path %s already exists", p)
	}
	nt, o := t.cloneObjectFor(p.BForm.Name)
	newGPI := &adt.GPI{ShapeType: gpi.ShapeType, Props: gpi.Props.Clone()}
	newGPI.Props.Set(p.Property, v)
	o.set(p.Field, newGPI)
	return nt, nil
}

// InsertGPI installs a graphical primitive at object.field.
func (t *Translation) InsertGPI(object, field, shapeType string, props *adt.PropertyDict, override bool) (*Translation, *adt.Bottom) {
	bf := adt.BindingForm{Kind: adt.SubstanceBound, Name: object}
	return t.InsertField(adt.FieldPath{BForm: bf, Field: field}, &adt.GPI{ShapeType: shapeType, Props: props}, override)
}

// shallowClone copies the object index but shares untouched *object
// pointers lazily -- callers that mutate an object must clone it first
// (see InsertField/InsertProperty).
func (t *Translation) shallowClone() *Translation {
	nt := &Translation{
		objOrder: append([]string(nil), t.objOrder...),
		objects:  make(map[string]*object, len(t.objects)),
		Warnings: append([]string(nil), t.Warnings...),
	}
	for k, v := range t.objects {
		nt.objects[k] = v
	}
	return nt
}

// cloneObjectFor returns a mutable copy of object name installed back into
// t, used by InsertField/InsertProperty so that setting a field never
// touches an *object still shared with the original translation.
func (t *Translation) cloneObjectFor(name string) (*Translation, *object) {
	nt := t.shallowClone()
	old, ok := nt.objects[name]
	var cloned *object
	if ok {
		cloned = old.clone()
	} else {
		cloned = newObject()
		nt.objOrder = append(nt.objOrder, name)
	}
	nt.objects[name] = cloned
	return nt, cloned
}

// FoldFunc is invoked once per (object, field, field-expr) triple.
type FoldFunc func(object, field string, fe adt.FieldExpr) *adt.Bottom

// Fold traverses every (object, field, field-expr) triple in deterministic,
// insertion-ordered fashion per object and per field.
func (t *Translation) Fold(fn FoldFunc) *adt.Bottom {
	for _, oname := range t.objOrder {
		o := t.objects[oname]
		for _, fname := range o.keys {
			if err := fn(oname, fname, o.fields[fname]); err != nil {
				return err
			}
		}
	}
	return nil
}

// ClearWarnings returns a copy of t with no accumulated warnings, used by
// resample to reset translation state.
func (t *Translation) ClearWarnings() *Translation {
	nt := t.shallowClone()
	nt.Warnings = nil
	return nt
}

// AddWarning appends a non-fatal note to the translation.
func (t *Translation) AddWarning(msg string) *Translation {
	nt := t.shallowClone()
	nt.Warnings = append(nt.Warnings, msg)
	return nt
}

const maxAliasDepth = 500

// ResolveAlias follows a chain of OptEval(EPath q) self-aliases starting
// at p until it reaches a path whose field is not itself a bare path
// reference. A field that resolves back to itself is a fatal structural
// error -- "detect the degenerate self-alias and fail loudly rather than
// loop".
func ResolveAlias(t *Translation, p adt.FieldPath) (adt.FieldPath, *adt.Bottom) {
	seen := map[string]bool{}
	cur := p
	for depth := 0; depth < maxAliasDepth; depth++ {
		key := cur.String()
		if seen[key] {
			return cur, adt.Errf(adt.StructuralError, "alias cycle at %s", cur)
		}
		seen[key] = true

		fe, ok := t.LookupField(cur)
		if !ok {
			return cur, nil
		}
		opt, ok := fe.(adt.OptEvalTag)
		if !ok {
			return cur, nil
		}
		ref, ok := opt.E.(adt.EPath)
		if !ok {
			return cur, nil
		}
		next, ok := ref.P.(adt.FieldPath)
		if !ok {
			return cur, nil
		}
		cur = next
	}
	return cur, adt.Errf(adt.StructuralError, "alias chain exceeds max depth at %s", cur)
}
