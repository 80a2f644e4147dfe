// Package registry implements the comp_dict/obj_dict/constr_dict
// name-indexed function tables, backed by a sync.Map per table so lookups
// stay lock-free on the hot path.
package registry

import (
	"sync"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/rng"
)

// CompFunc computes a value from already-evaluated arguments, optionally
// drawing from rng (e.g. a jitter computation); it returns the advanced
// RNG explicitly rather than mutating a shared generator.
type CompFunc func(args []adt.Value, r *rng.RNG) (adt.Value, *rng.RNG, *adt.Bottom)

// ObjFunc and ConstrFunc are deterministic given their arguments. Args are
// ArgVal rather than bare Value because a default per-shape declaration
// (analyze.Declarations) passes the shape itself as its sole argument; most
// objectives/constraints unwrap straight to Value via requireFloats/
// requireTuples, but a shape-level one like lengthPositive reads its
// properties directly off the GpiArg.
type ObjFunc func(args []adt.ArgVal) (float64, *adt.Bottom)
type ConstrFunc func(args []adt.ArgVal) (float64, *adt.Bottom)

// Registry holds the three name -> function tables the evaluator and
// energy assembler consult.
type Registry struct {
	comp    sync.Map // string -> CompFunc
	obj     sync.Map // string -> ObjFunc
	constr  sync.Map // string -> ConstrFunc
}

func New() *Registry {
	return &Registry{}
}

func (r *Registry) RegisterComp(name string, f CompFunc)       { r.comp.Store(name, f) }
func (r *Registry) RegisterObj(name string, f ObjFunc)          { r.obj.Store(name, f) }
func (r *Registry) RegisterConstr(name string, f ConstrFunc)    { r.constr.Store(name, f) }

func (r *Registry) Comp(name string) (CompFunc, bool) {
	v, ok := r.comp.Load(name)
	if !ok {
		return nil, false
	}
	return v.(CompFunc), true
}

func (r *Registry) Obj(name string) (ObjFunc, bool) {
	v, ok := r.obj.Load(name)
	if !ok {
		return nil, false
	}
	return v.(ObjFunc), true
}

func (r *Registry) Constr(name string) (ConstrFunc, bool) {
	v, ok := r.constr.Load(name)
	if !ok {
		return nil, false
	}
	return v.(ConstrFunc), true
}
