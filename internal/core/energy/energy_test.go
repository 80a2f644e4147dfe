package energy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/eval"
	"github.com/xiaoyxue/penrose/internal/core/rng"
	"github.com/xiaoyxue/penrose/internal/core/translation"
	"github.com/xiaoyxue/penrose/internal/registry"
	"github.com/xiaoyxue/penrose/internal/shapeset"
)

func fp(object, field string) adt.FieldPath {
	return adt.FieldPath{BForm: adt.BindingForm{Name: object}, Field: field}
}

func TestEvalSumsExplicitObjectiveAndConstraint(t *testing.T) {
	ctx := eval.NewContext(shapeset.New(), registry.Builtins())

	tr, err := translation.New().InsertField(fp("decl", "obj"),
		adt.OptEvalTag{E: adt.ObjFn{Name: "equal", Args: []adt.Expr{adt.AFloat{Val: 3}, adt.AFloat{Val: 5}}}}, false)
	require.Nil(t, err)
	tr, err = tr.InsertField(fp("decl", "constr"),
		adt.OptEvalTag{E: adt.ConstrFn{Name: "greaterThan", Args: []adt.Expr{adt.AFloat{Val: -1}}}}, false)
	require.Nil(t, err)

	total, _, _, berr := Eval(ctx, tr, eval.Overlay{}, rng.New(1), InitWeight)
	require.Nil(t, berr)

	wantObj := 4.0 // (3-5)^2
	wantConstr := ConstrWeight * InitWeight * 1.0
	assert.InDelta(t, wantObj+wantConstr, total, 1e-9)
}

func TestEvalIncludesDefaultShapeConstraints(t *testing.T) {
	ctx := eval.NewContext(shapeset.New(), registry.Builtins())
	props := adt.NewPropertyDict()
	props.Set("start", adt.DoneTag{V: adt.VectorVal{Elems: []float64{0, 0}}})
	props.Set("end", adt.DoneTag{V: adt.VectorVal{Elems: []float64{0, 0}}})
	tr, err := translation.New().InsertGPI("l1", "shape", "Line", props, false)
	require.Nil(t, err)

	total, _, _, berr := Eval(ctx, tr, eval.Overlay{}, rng.New(1), InitWeight)
	require.Nil(t, berr)
	assert.Greater(t, total, 0.0, "a zero-length line violates lengthPositive")
}

func TestEvalUnknownObjectiveIsRegistryError(t *testing.T) {
	ctx := eval.NewContext(shapeset.New(), registry.Builtins())
	tr, err := translation.New().InsertField(fp("decl", "obj"),
		adt.OptEvalTag{E: adt.ObjFn{Name: "nope", Args: nil}}, false)
	require.Nil(t, err)

	_, _, _, berr := Eval(ctx, tr, eval.Overlay{}, rng.New(1), InitWeight)
	require.NotNil(t, berr)
	assert.Equal(t, adt.RegistryError, berr.Code)
}

func TestConstrWeightDominatesObjectives(t *testing.T) {
	assert.True(t, math.Abs(ConstrWeight) > 1)
}
