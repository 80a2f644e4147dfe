package registry

import (
	"math"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/rng"
)

func requireFloats(args []adt.Value, n int) ([]float64, *adt.Bottom) {
	if len(args) != n {
		return nil, adt.Errf(adt.RegistryError, "expected %d arguments, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, ok := a.(adt.Float)
		if !ok {
			return nil, adt.Errf(adt.RegistryError, "argument %d: expected float, got %s", i, a.Kind())
		}
		out[i] = f.X
	}
	return out, nil
}

func requireTuples(args []adt.Value, n int) ([]adt.Tuple, *adt.Bottom) {
	if len(args) != n {
		return nil, adt.Errf(adt.RegistryError, "expected %d arguments, got %d", n, len(args))
	}
	out := make([]adt.Tuple, n)
	for i, a := range args {
		switch v := a.(type) {
		case adt.Tuple:
			out[i] = v
		case adt.VectorVal:
			if len(v.Elems) != 2 {
				return nil, adt.Errf(adt.RegistryError, "argument %d: expected a 2-vector", i)
			}
			out[i] = adt.Tuple{A: v.Elems[0], B: v.Elems[1]}
		default:
			return nil, adt.Errf(adt.RegistryError, "argument %d: expected point-like value, got %s", i, a.Kind())
		}
	}
	return out, nil
}

// argValues unwraps a ArgVal slice down to Value, failing with a
// RegistryError at the first GpiArg (a shape reached where a plain value
// was expected) -- used by the ObjFunc/ConstrFunc registrations below that
// take ordinary property values rather than a whole shape.
func argValues(args []adt.ArgVal) ([]adt.Value, *adt.Bottom) {
	out := make([]adt.Value, len(args))
	for i, a := range args {
		v, ok := a.(adt.ValArg)
		if !ok {
			return nil, adt.Errf(adt.RegistryError, "argument %d is a graphical primitive, expected a value", i)
		}
		out[i] = v.V
	}
	return out, nil
}

// requireShapeVectors reads n named vector-valued properties straight off a
// single shape argument, for a constraint/objective declared at the
// shape level (analyze.Declarations' default-constraint/objective path,
// whose sole argument is the shape itself rather than its properties).
func requireShapeVectors(args []adt.ArgVal, names ...string) ([]adt.Tuple, *adt.Bottom) {
	if len(args) != 1 {
		return nil, adt.Errf(adt.RegistryError, "expected 1 shape argument, got %d", len(args))
	}
	g, ok := args[0].(adt.GpiArg)
	if !ok {
		return nil, adt.Errf(adt.RegistryError, "expected a graphical primitive argument")
	}
	out := make([]adt.Tuple, len(names))
	for i, name := range names {
		v, ok := g.G.Get(name)
		if !ok {
			return nil, adt.Errf(adt.RegistryError, "shape %s has no property %q", g.G.Name(), name)
		}
		vec, ok := v.(adt.VectorVal)
		if !ok || len(vec.Elems) != 2 {
			return nil, adt.Errf(adt.RegistryError, "property %q is not a 2-vector", name)
		}
		out[i] = adt.Tuple{A: vec.Elems[0], B: vec.Elems[1]}
	}
	return out, nil
}

// Builtins returns a Registry pre-populated with a small set of
// computations, objectives and constraints sufficient to exercise the
// energy assembler and evaluator end to end.
func Builtins() *Registry {
	r := New()

	r.RegisterComp("add", func(args []adt.Value, rg *rng.RNG) (adt.Value, *rng.RNG, *adt.Bottom) {
		xs, err := requireFloats(args, 2)
		if err != nil {
			return nil, rg, err
		}
		return adt.Float{X: xs[0] + xs[1]}, rg, nil
	})

	r.RegisterComp("mul", func(args []adt.Value, rg *rng.RNG) (adt.Value, *rng.RNG, *adt.Bottom) {
		xs, err := requireFloats(args, 2)
		if err != nil {
			return nil, rg, err
		}
		return adt.Float{X: xs[0] * xs[1]}, rg, nil
	})

	r.RegisterComp("dist", func(args []adt.Value, rg *rng.RNG) (adt.Value, *rng.RNG, *adt.Bottom) {
		pts, err := requireTuples(args, 2)
		if err != nil {
			return nil, rg, err
		}
		dx := pts[0].A - pts[1].A
		dy := pts[0].B - pts[1].B
		return adt.Float{X: math.Hypot(dx, dy)}, rg, nil
	})

	r.RegisterComp("jitter", func(args []adt.Value, rg *rng.RNG) (adt.Value, *rng.RNG, *adt.Bottom) {
		xs, err := requireFloats(args, 1)
		if err != nil {
			return nil, rg, err
		}
		return adt.Float{X: xs[0] + rg.FloatRange(-1, 1)}, rg, nil
	})

	// dist is also registered as an objective: minimizing the distance
	// between two points.
	r.RegisterObj("dist", func(args []adt.ArgVal) (float64, *adt.Bottom) {
		vals, err := argValues(args)
		if err != nil {
			return 0, err
		}
		pts, err := requireTuples(vals, 2)
		if err != nil {
			return 0, err
		}
		dx := pts[0].A - pts[1].A
		dy := pts[0].B - pts[1].B
		return math.Hypot(dx, dy), nil
	})

	r.RegisterObj("equal", func(args []adt.ArgVal) (float64, *adt.Bottom) {
		vals, err := argValues(args)
		if err != nil {
			return 0, err
		}
		xs, err := requireFloats(vals, 2)
		if err != nil {
			return 0, err
		}
		d := xs[0] - xs[1]
		return d * d, nil
	})

	// greaterThan(x) costs -x when x < 0 and zero otherwise; x == 0 costs
	// nothing.
	r.RegisterConstr("greaterThan", func(args []adt.ArgVal) (float64, *adt.Bottom) {
		vals, err := argValues(args)
		if err != nil {
			return 0, err
		}
		xs, err := requireFloats(vals, 1)
		if err != nil {
			return 0, err
		}
		return math.Max(0, -xs[0]), nil
	})

	// lengthPositive is declared by Line's default per-shape constraint
	// (analyze.Declarations), whose sole argument is the shape itself, so
	// it reads start/end directly off the GpiArg rather than unwrapping to
	// plain Values.
	r.RegisterConstr("lengthPositive", func(args []adt.ArgVal) (float64, *adt.Bottom) {
		pts, err := requireShapeVectors(args, "start", "end")
		if err != nil {
			return 0, err
		}
		dx := pts[0].A - pts[1].A
		dy := pts[0].B - pts[1].B
		return math.Max(0, 1-math.Hypot(dx, dy)), nil
	})

	return r
}
