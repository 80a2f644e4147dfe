// Package energy assembles the scalar optimization objective: the sum of
// every declared objective's cost plus every declared constraint's
// violation, weighted so that satisfying constraints dominates minimizing
// objectives.
package energy

import (
	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/analyze"
	"github.com/xiaoyxue/penrose/internal/core/eval"
	"github.com/xiaoyxue/penrose/internal/core/rng"
	"github.com/xiaoyxue/penrose/internal/core/translation"
)

const (
	// InitWeight is the starting penalty multiplier a caller ramps up
	// across an optimization run.
	InitWeight = 1e-3
	// ConstrWeight scales every constraint violation relative to the
	// objectives, so that a single violated constraint costs far more
	// than any plausible sum of objective terms.
	ConstrWeight = 1e4
)

// Eval computes the total energy of t under overlay, with constraint
// violations scaled by w (the caller's current penalty weight). It
// returns the advanced translation and RNG so repeated evaluation across
// an optimization run keeps memoization and PRNG state threaded through.
func Eval(c *eval.Context, t *translation.Translation, overlay eval.Overlay, r *rng.RNG, w float64) (float64, *translation.Translation, *rng.RNG, *adt.Bottom) {
	objs, constrs, err := analyze.Declarations(t, c.Cat)
	if err != nil {
		return 0, t, r, err
	}

	total := 0.0
	curT, curR := t, r

	for _, d := range objs {
		args, t2, r2, err := c.EvalExprs(0, d.Args, curT, overlay, curR)
		if err != nil {
			return 0, t2, r2, err
		}
		fn, ok := c.Reg.Obj(d.Name)
		if !ok {
			return 0, t2, r2, adt.Errf(adt.RegistryError, "unknown objective %q", d.Name)
		}
		cost, err := fn(args)
		if err != nil {
			return 0, t2, r2, err
		}
		total += cost
		curT, curR = t2, r2
	}

	for _, d := range constrs {
		args, t2, r2, err := c.EvalExprs(0, d.Args, curT, overlay, curR)
		if err != nil {
			return 0, t2, r2, err
		}
		fn, ok := c.Reg.Constr(d.Name)
		if !ok {
			return 0, t2, r2, adt.Errf(adt.RegistryError, "unknown constraint %q", d.Name)
		}
		violation, err := fn(args)
		if err != nil {
			return 0, t2, r2, err
		}
		total += ConstrWeight * w * violation
		curT, curR = t2, r2
	}

	return total, curT, curR, nil
}
