// Package state assembles the analyzer, sampler, evaluator, layering
// solver and energy assembler into the single object an optimizer driver
// works against: a State snapshot carrying the sampled translation, the
// optimizer-visible varying-state vector, and the draw order.
package state

import (
	"math"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/analyze"
	"github.com/xiaoyxue/penrose/internal/core/catalog"
	"github.com/xiaoyxue/penrose/internal/core/energy"
	"github.com/xiaoyxue/penrose/internal/core/eval"
	"github.com/xiaoyxue/penrose/internal/core/layer"
	"github.com/xiaoyxue/penrose/internal/core/rng"
	"github.com/xiaoyxue/penrose/internal/core/sample"
	"github.com/xiaoyxue/penrose/internal/core/translation"
	"github.com/xiaoyxue/penrose/internal/registry"
)

// Params is the optimizer configuration a State is built and resampled
// with.
type Params struct {
	Canvas    sample.Canvas
	Seed      uint64
	Weight    float64
	Resamples int
}

// DefaultParams matches the defaults internal/shapeset and the CLI assume
// when a fixture doesn't override them.
func DefaultParams() Params {
	return Params{
		Canvas:    sample.Canvas{Width: 400, Height: 400},
		Seed:      rng.DefaultSeed,
		Weight:    energy.InitWeight,
		Resamples: 500,
	}
}

// State is the optimizer-facing snapshot of a compiled diagram: the
// sampled translation, every path the analyzer discovered, the current
// varying-state vector, and the collaborators needed to re-evaluate it.
type State struct {
	Translation        *translation.Translation
	ShapePaths         []adt.FieldPath
	ShapeOrdering      []string
	ShapeProperties    []analyze.ShapeProperty
	VaryingPaths       []adt.Path
	UninitializedPaths []adt.Path
	PendingPaths       []adt.Path
	VaryingState       []float64
	Params             Params

	ctx *eval.Context
	rng *rng.RNG
}

// New builds the initial State from a raw, unsampled translation: it
// discovers varying and uninitialized paths against the original
// translation (their markers are only visible before sampling overwrites
// them), samples every uninitialized shape property and every Vary
// marker, computes the initial layering order, and reads back the
// varying-state vector from the now-sampled translation.
func New(t *translation.Translation, cat catalog.Catalog, reg *registry.Registry, params Params) (*State, *adt.Bottom) {
	ctx := eval.NewContext(cat, reg)
	r := rng.New(params.Seed)

	varying, err := analyze.VaryingPaths(t, cat)
	if err != nil {
		return nil, err
	}
	uninit, err := analyze.UninitializedPaths(t, cat)
	if err != nil {
		return nil, err
	}

	sampled, r2, err := sample.Translation(t, cat, params.Canvas, r)
	if err != nil {
		return nil, err
	}

	pending, err := analyze.PendingPaths(sampled)
	if err != nil {
		return nil, err
	}
	shapePaths, err := analyze.ShapePaths(sampled)
	if err != nil {
		return nil, err
	}
	shapeProps, err := analyze.ShapeProperties(sampled)
	if err != nil {
		return nil, err
	}

	shapeNames := make([]string, len(shapePaths))
	for i, p := range shapePaths {
		shapeNames[i] = p.String()
	}
	ordering, ok, lerr := layer.Solve(sampled, shapeNames)
	if lerr != nil {
		return nil, lerr
	}
	if !ok {
		sampled = sampled.AddWarning("layering cycle detected; falling back to declaration order")
		ordering = shapeNames
	}

	vstate, r3, err := readPaths(ctx, sampled, varying, r2)
	if err != nil {
		return nil, err
	}

	return &State{
		Translation:        sampled,
		ShapePaths:         shapePaths,
		ShapeOrdering:      ordering,
		ShapeProperties:    shapeProps,
		VaryingPaths:       varying,
		UninitializedPaths: uninit,
		PendingPaths:       pending,
		VaryingState:       vstate,
		Params:             params,
		ctx:                ctx,
		rng:                r3,
	}, nil
}

func readPaths(ctx *eval.Context, t *translation.Translation, paths []adt.Path, r *rng.RNG) ([]float64, *rng.RNG, *adt.Bottom) {
	out := make([]float64, len(paths))
	cur := r
	for i, p := range paths {
		arg, _, r2, err := ctx.Eval(0, adt.EPath{P: p}, t, eval.Overlay{}, cur)
		if err != nil {
			return nil, cur, err
		}
		v, ok := arg.(adt.ValArg)
		if !ok {
			return nil, cur, adt.Errf(adt.StructuralError, "varying path %s resolved to a graphical primitive", p)
		}
		f, ok := v.V.(adt.Float)
		if !ok {
			return nil, cur, adt.Errf(adt.TypeError, "varying path %s is not a scalar", p)
		}
		out[i] = f.X
		cur = r2
	}
	return out, cur, nil
}

func (s *State) with(t *translation.Translation, r *rng.RNG, vstate []float64) *State {
	next := *s
	next.Translation = t
	next.rng = r
	next.VaryingState = vstate
	return &next
}

// EvalTranslation evaluates every declared shape under the current
// varying-state overlay and returns the concrete shape list in draw
// order, plus the resulting State (translation/RNG may have advanced via
// memoization or a jittering computation reached during evaluation).
func EvalTranslation(s *State) ([]*adt.Shape, *State, *adt.Bottom) {
	overlay := eval.NewOverlay(s.VaryingPaths, s.VaryingState)
	cur, curR := s.Translation, s.rng
	shapes := make(map[string]*adt.Shape, len(s.ShapePaths))
	for _, fp := range s.ShapePaths {
		arg, t2, r2, err := s.ctx.Eval(0, adt.EPath{P: fp}, cur, overlay, curR)
		if err != nil {
			return nil, s, err
		}
		g, ok := arg.(adt.GpiArg)
		if !ok {
			return nil, s, adt.Errf(adt.StructuralError, "shape path %s did not evaluate to a graphical primitive", fp)
		}
		shapes[fp.String()] = g.G
		cur, curR = t2, r2
	}
	out := make([]*adt.Shape, 0, len(s.ShapeOrdering))
	for _, name := range s.ShapeOrdering {
		if sh, ok := shapes[name]; ok {
			out = append(out, sh)
		}
	}
	return out, s.with(cur, curR, s.VaryingState), nil
}

// EvalEnergy computes the total energy at the current varying state.
func EvalEnergy(s *State) (float64, *State, *adt.Bottom) {
	return EvalEnergyOn(s, s.VaryingState)
}

// EvalEnergyOn computes the total energy the translation would have under
// vstate, without committing it to s.VaryingState.
func EvalEnergyOn(s *State, vstate []float64) (float64, *State, *adt.Bottom) {
	overlay := eval.NewOverlay(s.VaryingPaths, vstate)
	total, t2, r2, err := energy.Eval(s.ctx, s.Translation, overlay, s.rng, s.Params.Weight)
	if err != nil {
		return 0, s, err
	}
	return total, s.with(t2, r2, s.VaryingState), nil
}

// ResampleOne draws a fresh varying-state vector, independently for each
// varying path, uniformly over the canvas.
func ResampleOne(s *State) (*State, *adt.Bottom) {
	vstate := make([]float64, len(s.VaryingPaths))
	r := s.rng
	for i := range vstate {
		vstate[i] = sample.Scalar(r, s.Params.Canvas)
	}
	return s.with(s.Translation, r, vstate), nil
}

// ResampleBest draws n independent varying-state vectors (s.Params.Resamples
// when n <= 0) and keeps whichever scores the lowest energy, threading the
// translation and RNG forward across every trial so the result is
// deterministic given the State's seed.
func ResampleBest(s *State, n int) (*State, *adt.Bottom) {
	if n <= 0 {
		n = s.Params.Resamples
	}
	if n <= 0 {
		n = 500
	}

	cur := s
	var bestVState []float64
	bestEnergy := math.Inf(1)

	for i := 0; i < n; i++ {
		candidate, err := ResampleOne(cur)
		if err != nil {
			return s, err
		}
		e, scored, err := EvalEnergyOn(candidate, candidate.VaryingState)
		if err != nil {
			return s, err
		}
		if e < bestEnergy {
			bestEnergy = e
			bestVState = candidate.VaryingState
		}
		cur = scored
	}

	return cur.with(cur.Translation, cur.rng, bestVState), nil
}

// ComputeLayering recomputes the draw order for t from scratch, without
// requiring a full State.
func ComputeLayering(t *translation.Translation) ([]string, bool, *adt.Bottom) {
	shapePaths, err := analyze.ShapePaths(t)
	if err != nil {
		return nil, false, err
	}
	names := make([]string, len(shapePaths))
	for i, p := range shapePaths {
		names[i] = p.String()
	}
	return layer.Solve(t, names)
}
