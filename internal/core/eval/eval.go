// Package eval implements the recursive expression evaluator: memoization
// into the translation, a depth bound against unresolved cycles, and a
// varying-value overlay consulted ahead of the translation.
//
// Every function here returns the (possibly updated) translation and RNG
// explicitly rather than mutating either in place.
package eval

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v2"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/catalog"
	"github.com/xiaoyxue/penrose/internal/core/rng"
	"github.com/xiaoyxue/penrose/internal/core/translation"
	"github.com/xiaoyxue/penrose/internal/registry"
)

// MaxEvalDepth bounds recursive evaluation so an unresolved reference
// cycle fails loudly instead of overflowing the stack.
const MaxEvalDepth = 500

// Context bundles the evaluator's external collaborators: the shape
// catalog (for computed properties) and the computation registry.
type Context struct {
	Cat      catalog.Catalog
	Reg      *registry.Registry
	MaxDepth int
}

func NewContext(cat catalog.Catalog, reg *registry.Registry) *Context {
	return &Context{Cat: cat, Reg: reg, MaxDepth: MaxEvalDepth}
}

func fieldPath(object, field string) adt.FieldPath {
	return adt.FieldPath{BForm: adt.BindingForm{Kind: adt.SubstanceBound, Name: object}, Field: field}
}

// Eval evaluates e at the given recursion depth, returning an ArgVal plus
// the (possibly memoized) translation and (possibly advanced) rng.
func (c *Context) Eval(depth int, e adt.Expr, t *translation.Translation, ov Overlay, r *rng.RNG) (adt.ArgVal, *translation.Translation, *rng.RNG, *adt.Bottom) {
	if depth >= c.MaxDepth {
		return nil, t, r, adt.Errf(adt.StructuralError, "cycle-depth-exceeded (max %d)", c.MaxDepth)
	}

	switch x := e.(type) {
	case adt.Lit:
		return adt.ValArg{V: x.V}, t, r, nil

	case adt.AFloat:
		if x.Vary {
			return nil, t, r, adt.Errf(adt.StructuralError, "uninitialized-vary: Vary float reached evaluator")
		}
		return adt.ValArg{V: adt.Float{X: x.Val}}, t, r, nil

	case adt.EPath:
		return c.evalPath(depth, x.P, t, ov, r)

	case adt.CompApp:
		vals, t2, r2, err := c.evalArgValues(depth, x.Args, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		fn, ok := c.Reg.Comp(x.Name)
		if !ok {
			return nil, t2, r2, adt.Errf(adt.RegistryError, "unknown computation %q", x.Name)
		}
		v, r3, err := fn(vals, r2)
		if err != nil {
			return nil, t2, r3, err
		}
		return adt.ValArg{V: v}, t2, r3, nil

	case adt.UnaryExpr:
		arg, t2, r2, err := c.Eval(depth+1, x.X, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		v, err := unaryOp(x.Op, argValue(arg))
		if err != nil {
			return nil, t2, r2, err
		}
		return adt.ValArg{V: v}, t2, r2, nil

	case adt.BinaryExpr:
		lhs, t2, r2, err := c.Eval(depth+1, x.X, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		rhs, t3, r3, err := c.Eval(depth+1, x.Y, t2, ov, r2)
		if err != nil {
			return nil, t3, r3, err
		}
		v, err := binOp(x.Op, argValue(lhs), argValue(rhs))
		if err != nil {
			return nil, t3, r3, err
		}
		return adt.ValArg{V: v}, t3, r3, nil

	case adt.ListExpr:
		vals, t2, r2, err := c.evalArgValues(depth, x.Elems, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		elems := make([]float64, len(vals))
		for i, v := range vals {
			f, ok := v.(adt.Float)
			if !ok {
				return nil, t2, r2, adt.Errf(adt.TypeError, "list element %d is not a float", i)
			}
			elems[i] = f.X
		}
		return adt.ValArg{V: adt.ListVal{Elems: elems}}, t2, r2, nil

	case adt.TupleExpr:
		a, t2, r2, err := c.Eval(depth+1, x.A, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		b, t3, r3, err := c.Eval(depth+1, x.B, t2, ov, r2)
		if err != nil {
			return nil, t3, r3, err
		}
		af, ok := argValue(a).(adt.Float)
		if !ok {
			return nil, t3, r3, adt.Errf(adt.TypeError, "tuple element 0 is not a float")
		}
		bf, ok := argValue(b).(adt.Float)
		if !ok {
			return nil, t3, r3, adt.Errf(adt.TypeError, "tuple element 1 is not a float")
		}
		return adt.ValArg{V: adt.Tuple{A: af.X, B: bf.X}}, t3, r3, nil

	case adt.VectorExpr:
		vals, t2, r2, err := c.evalArgValues(depth, x.Elems, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		elems := make([]float64, len(vals))
		for i, v := range vals {
			f, ok := v.(adt.Float)
			if !ok {
				return nil, t2, r2, adt.Errf(adt.TypeError, "vector element %d is not a float", i)
			}
			elems[i] = f.X
		}
		return adt.ValArg{V: adt.VectorVal{Elems: elems}}, t2, r2, nil

	case adt.MatrixExpr:
		rows := make([][]float64, len(x.Rows))
		cur, curR := t, r
		for i, row := range x.Rows {
			vals, t2, r2, err := c.evalArgValues(depth, row, cur, ov, curR)
			if err != nil {
				return nil, t2, r2, err
			}
			elems := make([]float64, len(vals))
			for j, v := range vals {
				f, ok := v.(adt.Float)
				if !ok {
					return nil, t2, r2, adt.Errf(adt.TypeError, "matrix element [%d][%d] is not a float", i, j)
				}
				elems[j] = f.X
			}
			rows[i] = elems
			cur, curR = t2, r2
		}
		return adt.ValArg{V: adt.MatrixVal{Rows: rows}}, cur, curR, nil

	case adt.VectorAccess:
		arg, t2, r2, err := c.Eval(depth+1, x.X, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		v, ok := argValue(arg).(adt.VectorVal)
		if !ok {
			return nil, t2, r2, adt.Errf(adt.TypeError, "accessor on non-vector value")
		}
		if x.Index < 0 || x.Index >= len(v.Elems) {
			return nil, t2, r2, adt.Errf(adt.StructuralError, "vector index %d out of bounds", x.Index)
		}
		return adt.ValArg{V: adt.Float{X: v.Elems[x.Index]}}, t2, r2, nil

	case adt.ListAccess:
		arg, t2, r2, err := c.Eval(depth+1, x.X, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		v, ok := argValue(arg).(adt.ListVal)
		if !ok {
			return nil, t2, r2, adt.Errf(adt.TypeError, "accessor on non-list value")
		}
		if x.Index < 0 || x.Index >= len(v.Elems) {
			return nil, t2, r2, adt.Errf(adt.StructuralError, "list index %d out of bounds", x.Index)
		}
		return adt.ValArg{V: adt.Float{X: v.Elems[x.Index]}}, t2, r2, nil

	case adt.MatrixAccess:
		arg, t2, r2, err := c.Eval(depth+1, x.X, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		v, ok := argValue(arg).(adt.MatrixVal)
		if !ok {
			return nil, t2, r2, adt.Errf(adt.TypeError, "accessor on non-matrix value")
		}
		if x.Row < 0 || x.Row >= len(v.Rows) || x.Col < 0 || x.Col >= len(v.Rows[x.Row]) {
			return nil, t2, r2, adt.Errf(adt.StructuralError, "matrix index [%d][%d] out of bounds", x.Row, x.Col)
		}
		return adt.ValArg{V: adt.Float{X: v.Rows[x.Row][x.Col]}}, t2, r2, nil

	case adt.ShapeCtor:
		return nil, t, r, adt.Errf(adt.StructuralError, "inline primitive used as an expression")

	case adt.Layering, adt.ObjFn, adt.ConstrFn, adt.AvoidFn, adt.PluginAccess:
		return nil, t, r, adt.Errf(adt.StructuralError, "declarative-only expression used in an evaluation context")

	default:
		return nil, t, r, adt.Errf(adt.StructuralError, "unhandled expression type %T", e)
	}
}

// EvalExprs folds Eval over a list of expressions, left to right, and
// returns the results in input order.
func (c *Context) EvalExprs(depth int, exprs []adt.Expr, t *translation.Translation, ov Overlay, r *rng.RNG) ([]adt.ArgVal, *translation.Translation, *rng.RNG, *adt.Bottom) {
	out := make([]adt.ArgVal, len(exprs))
	cur, curR := t, r
	for i, e := range exprs {
		v, t2, r2, err := c.Eval(depth, e, cur, ov, curR)
		if err != nil {
			return nil, t2, r2, err
		}
		out[i] = v
		cur, curR = t2, r2
	}
	return out, cur, curR, nil
}

func (c *Context) evalArgValues(depth int, exprs []adt.Expr, t *translation.Translation, ov Overlay, r *rng.RNG) ([]adt.Value, *translation.Translation, *rng.RNG, *adt.Bottom) {
	args, t2, r2, err := c.EvalExprs(depth+1, exprs, t, ov, r)
	if err != nil {
		return nil, t2, r2, err
	}
	vals := make([]adt.Value, len(args))
	for i, a := range args {
		vals[i] = argValue(a)
	}
	return vals, t2, r2, nil
}

func argValue(a adt.ArgVal) adt.Value {
	if v, ok := a.(adt.ValArg); ok {
		return v.V
	}
	return nil
}

// evalPath dispatches on the Path variant and handles the overlay,
// memoization and alias-propagation rules for field and property lookups.
func (c *Context) evalPath(depth int, p adt.Path, t *translation.Translation, ov Overlay, r *rng.RNG) (adt.ArgVal, *translation.Translation, *rng.RNG, *adt.Bottom) {
	if te, ok := ov.lookup(p); ok {
		return c.evalTagExpr(depth, p, te, t, ov, r, false)
	}

	switch x := p.(type) {
	case adt.FieldPath:
		fe, ok := t.LookupField(x)
		if !ok {
			return nil, t, r, adt.Errf(adt.StructuralError, "unknown path %s", x)
		}
		if gpi, ok := adt.IsGPI(fe); ok {
			return c.evalGPI(depth, x, gpi, t, ov, r)
		}
		return c.evalTagExpr(depth, x, fe.(adt.TagExpr), t, ov, r, true)

	case adt.PropertyPath:
		fp := fieldPath(x.BForm.Name, x.Field)
		fe, ok := t.LookupField(fp)
		if !ok {
			return nil, t, r, adt.Errf(adt.StructuralError, "unknown field %s", fp)
		}
		gpi, ok := adt.IsGPI(fe)
		if !ok {
			return nil, t, r, adt.Errf(adt.StructuralError, "field %s is not a graphical primitive", fp)
		}
		if cp, ok := c.Cat.ComputedProperty(gpi.ShapeType, x.Property); ok {
			argExprs := make([]adt.Expr, len(cp.ArgProperties))
			for i, prop := range cp.ArgProperties {
				argExprs[i] = adt.EPath{P: adt.PropertyPath{BForm: x.BForm, Field: x.Field, Property: prop}}
			}
			vals, t2, r2, err := c.evalArgValues(depth, argExprs, t, ov, r)
			if err != nil {
				return nil, t2, r2, err
			}
			return adt.ValArg{V: cp.Compute(vals)}, t2, r2, nil
		}
		te, ok := gpi.Props.Get(x.Property)
		if !ok {
			return nil, t, r, adt.Errf(adt.StructuralError, "unknown property %s", x)
		}
		return c.evalTagExpr(depth, x, te, t, ov, r, true)

	case adt.AccessPath:
		arg, t2, r2, err := c.evalPath(depth+1, x.Inner, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		v := argValue(arg)
		if mv, ok := v.(adt.MatrixVal); ok && len(x.Indices) == 2 {
			row, col := x.Indices[0], x.Indices[1]
			if row < 0 || row >= len(mv.Rows) || col < 0 || col >= len(mv.Rows[row]) {
				return nil, t2, r2, adt.Errf(adt.StructuralError, "access index [%d][%d] out of bounds", row, col)
			}
			return adt.ValArg{V: adt.Float{X: mv.Rows[row][col]}}, t2, r2, nil
		}
		for _, idx := range x.Indices {
			switch vv := v.(type) {
			case adt.VectorVal:
				if idx < 0 || idx >= len(vv.Elems) {
					return nil, t2, r2, adt.Errf(adt.StructuralError, "access index %d out of bounds", idx)
				}
				v = adt.Float{X: vv.Elems[idx]}
			case adt.ListVal:
				if idx < 0 || idx >= len(vv.Elems) {
					return nil, t2, r2, adt.Errf(adt.StructuralError, "access index %d out of bounds", idx)
				}
				v = adt.Float{X: vv.Elems[idx]}
			default:
				return nil, t2, r2, adt.Errf(adt.TypeError, "access into non-vector path %s", x.Inner)
			}
		}
		return adt.ValArg{V: v}, t2, r2, nil

	case adt.LocalVarPath:
		return nil, t, r, adt.Errf(adt.StructuralError, "unresolved local variable %s", x)

	default:
		return nil, t, r, adt.Errf(adt.StructuralError, "unhandled path type %T", p)
	}
}

// evalTagExpr evaluates a field or property's current TagExpr, memoizing
// an OptEval result back into the translation when allowMemo is true (it
// is false for overlay-sourced lookups, which are never written back).
func (c *Context) evalTagExpr(depth int, p adt.Path, te adt.TagExpr, t *translation.Translation, ov Overlay, r *rng.RNG, allowMemo bool) (adt.ArgVal, *translation.Translation, *rng.RNG, *adt.Bottom) {
	switch x := te.(type) {
	case adt.DoneTag:
		return adt.ValArg{V: x.V}, t, r, nil

	case adt.PendingTag:
		return adt.ValArg{V: x.V}, t, r, nil

	case adt.OptEvalTag:
		arg, t2, r2, err := c.Eval(depth+1, x.E, t, ov, r)
		if err != nil {
			return nil, t2, r2, err
		}
		if v, ok := arg.(adt.ValArg); ok {
			if !allowMemo {
				return arg, t2, r2, nil
			}
			t3, err := memoize(t2, p, v.V)
			if err != nil {
				return nil, t2, r2, err
			}
			return arg, t3, r2, nil
		}
		// Gpi results arose from an alias lookup; do not memoize at p.
		return arg, t2, r2, nil

	default:
		return nil, t, r, adt.Errf(adt.StructuralError, "unhandled tag expr type %T", te)
	}
}

func memoize(t *translation.Translation, p adt.Path, v adt.Value) (*translation.Translation, *adt.Bottom) {
	switch x := p.(type) {
	case adt.FieldPath:
		nt, err := t.InsertField(x, adt.DoneTag{V: v}, true)
		if err != nil {
			return t, err
		}
		return nt, nil
	case adt.PropertyPath:
		nt, err := t.InsertProperty(x, adt.DoneTag{V: v}, true)
		if err != nil {
			return t, err
		}
		return nt, nil
	default:
		// Access paths are expanded at lookup time and never memoized
		// directly.
		return t, nil
	}
}

// evalGPI evaluates every property of a graphical primitive in turn,
// collecting a new property dict and injecting the synthetic "name"
// property
func (c *Context) evalGPI(depth int, fp adt.FieldPath, gpi *adt.GPI, t *translation.Translation, ov Overlay, r *rng.RNG) (adt.ArgVal, *translation.Translation, *rng.RNG, *adt.Bottom) {
	shape := adt.NewShape(gpi.ShapeType)
	cur, curR := t, r
	for _, name := range gpi.Props.Keys() {
		pp := adt.PropertyPath{BForm: fp.BForm, Field: fp.Field, Property: name}
		arg, t2, r2, err := c.evalPath(depth+1, pp, cur, ov, curR)
		if err != nil {
			return nil, t2, r2, err
		}
		v := argValue(arg)
		if v == nil {
			return nil, t2, r2, adt.Errf(adt.StructuralError, "property %s evaluated to a graphical primitive", pp)
		}
		shape.Set(name, v)
		cur, curR = t2, r2
	}
	shape.Set("name", adt.Str{S: fp.BForm.Name + "." + fp.Field})
	return adt.GpiArg{G: shape}, cur, curR, nil
}

func unaryOp(op adt.UnaryOp, v adt.Value) (adt.Value, *adt.Bottom) {
	switch x := v.(type) {
	case adt.Float:
		if op == adt.NegOp {
			return adt.Float{X: -x.X}, nil
		}
		return x, nil
	case adt.Int:
		if op == adt.NegOp {
			var d apd.Decimal
			d.Neg(&x.X)
			return adt.Int{X: d}, nil
		}
		return x, nil
	default:
		return nil, adt.Errf(adt.TypeError, "unary operator on non-numeric value %s", v.Kind())
	}
}

var apdCtx = func() apd.Context {
	c := apd.BaseContext
	c.Precision = 30
	return c
}()

func binOp(op adt.BinOp, l, r adt.Value) (adt.Value, *adt.Bottom) {
	lf, lok := l.(adt.Float)
	rf, rok := r.(adt.Float)
	if lok && rok {
		return floatOp(op, lf.X, rf.X)
	}
	li, liok := l.(adt.Int)
	ri, riok := r.(adt.Int)
	if liok && riok {
		return intOp(op, li, ri)
	}
	return nil, adt.Errf(adt.TypeError, "binary operator %s on mismatched kinds %s, %s", op, l.Kind(), r.Kind())
}

func floatOp(op adt.BinOp, a, b float64) (adt.Value, *adt.Bottom) {
	switch op {
	case adt.AddOp:
		return adt.Float{X: a + b}, nil
	case adt.SubOp:
		return adt.Float{X: a - b}, nil
	case adt.MulOp:
		return adt.Float{X: a * b}, nil
	case adt.DivOp:
		if b == 0 {
			return nil, adt.Errf(adt.DomainError, "division by zero")
		}
		return adt.Float{X: a / b}, nil
	case adt.ExpOp:
		return adt.Float{X: math.Pow(a, b)}, nil
	default:
		return nil, adt.Errf(adt.TypeError, "unknown binary operator %s", op)
	}
}

func intOp(op adt.BinOp, a, b adt.Int) (adt.Value, *adt.Bottom) {
	switch op {
	case adt.AddOp:
		var d apd.Decimal
		apdCtx.Add(&d, &a.X, &b.X)
		return adt.Int{X: d}, nil
	case adt.SubOp:
		var d apd.Decimal
		apdCtx.Sub(&d, &a.X, &b.X)
		return adt.Int{X: d}, nil
	case adt.MulOp:
		var d apd.Decimal
		apdCtx.Mul(&d, &a.X, &b.X)
		return adt.Int{X: d}, nil
	case adt.DivOp:
		bi, _ := b.X.Int64()
		if bi == 0 {
			return nil, adt.Errf(adt.DomainError, "division by zero")
		}
		var d apd.Decimal
		if _, err := apdCtx.QuoInteger(&d, &a.X, &b.X); err != nil {
			return nil, adt.Errf(adt.DomainError, "%v", err)
		}
		return adt.Int{X: d}, nil
	case adt.ExpOp:
		ai, _ := a.X.Int64()
		bi, _ := b.X.Int64()
		if bi < 0 {
			return nil, adt.Errf(adt.DomainError, "negative integer exponent")
		}
		z := new(big.Int).Exp(big.NewInt(ai), big.NewInt(bi), nil)
		var d apd.Decimal
		d.SetString(z.String())
		return adt.Int{X: d}, nil
	default:
		return nil, adt.Errf(adt.TypeError, "unknown binary operator %s", op)
	}
}
