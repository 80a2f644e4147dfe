package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/rng"
)

func TestLookupMiss(t *testing.T) {
	r := New()
	_, ok := r.Comp("nope")
	assert.False(t, ok)
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	r.RegisterObj("double", func(args []adt.ArgVal) (float64, *adt.Bottom) {
		f := args[0].(adt.ValArg).V.(adt.Float)
		return f.X * 2, nil
	})
	fn, ok := r.Obj("double")
	require.True(t, ok)
	got, err := fn([]adt.ArgVal{adt.ValArg{V: adt.Float{X: 3}}})
	require.Nil(t, err)
	assert.Equal(t, 6.0, got)
}

func TestBuiltinAddAndMul(t *testing.T) {
	r := Builtins()
	rg := rng.New(1)

	add, ok := r.Comp("add")
	require.True(t, ok)
	v, _, err := add([]adt.Value{adt.Float{X: 2}, adt.Float{X: 3}}, rg)
	require.Nil(t, err)
	assert.Equal(t, adt.Float{X: 5}, v)

	mul, ok := r.Comp("mul")
	require.True(t, ok)
	v, _, err = mul([]adt.Value{adt.Float{X: 2}, adt.Float{X: 3}}, rg)
	require.Nil(t, err)
	assert.Equal(t, adt.Float{X: 6}, v)
}

func TestBuiltinDistObjective(t *testing.T) {
	r := Builtins()
	fn, ok := r.Obj("dist")
	require.True(t, ok)
	got, err := fn([]adt.ArgVal{
		adt.ValArg{V: adt.VectorVal{Elems: []float64{0, 0}}},
		adt.ValArg{V: adt.VectorVal{Elems: []float64{3, 4}}},
	})
	require.Nil(t, err)
	assert.Equal(t, 5.0, got)
}

func TestGreaterThanConstraint(t *testing.T) {
	r := Builtins()
	fn, ok := r.Constr("greaterThan")
	require.True(t, ok)

	violated, err := fn([]adt.ArgVal{adt.ValArg{V: adt.Float{X: -1}}})
	require.Nil(t, err)
	assert.Equal(t, 1.0, violated)

	satisfied, err := fn([]adt.ArgVal{adt.ValArg{V: adt.Float{X: 5}}})
	require.Nil(t, err)
	assert.Equal(t, 0.0, satisfied)
}

func TestRequireFloatsRejectsWrongArity(t *testing.T) {
	_, err := requireFloats([]adt.Value{adt.Float{X: 1}}, 2)
	require.NotNil(t, err)
	assert.Equal(t, adt.RegistryError, err.Code)
}

func TestRequireTuplesAcceptsVectorVal(t *testing.T) {
	pts, err := requireTuples([]adt.Value{
		adt.VectorVal{Elems: []float64{1, 2}},
		adt.Tuple{A: 3, B: 4},
	}, 2)
	require.Nil(t, err)
	assert.Equal(t, adt.Tuple{A: 1, B: 2}, pts[0])
	assert.Equal(t, adt.Tuple{A: 3, B: 4}, pts[1])
}

func TestLengthPositiveConstraintReadsShapeProperties(t *testing.T) {
	r := Builtins()
	fn, ok := r.Constr("lengthPositive")
	require.True(t, ok)

	shape := adt.NewShape("Line")
	shape.Set("name", adt.Str{S: "l1.shape"})
	shape.Set("start", adt.VectorVal{Elems: []float64{0, 0}})
	shape.Set("end", adt.VectorVal{Elems: []float64{0, 0}})

	violated, err := fn([]adt.ArgVal{adt.GpiArg{G: shape}})
	require.Nil(t, err)
	assert.Equal(t, 1.0, violated, "a zero-length line fully violates lengthPositive")

	shape.Set("end", adt.VectorVal{Elems: []float64{3, 4}})
	satisfied, err := fn([]adt.ArgVal{adt.GpiArg{G: shape}})
	require.Nil(t, err)
	assert.Equal(t, 0.0, satisfied, "a line of length 5 already clears the length-1 floor")
}

func TestRequireShapeVectorsRejectsPlainValue(t *testing.T) {
	_, err := requireShapeVectors([]adt.ArgVal{adt.ValArg{V: adt.Float{X: 1}}}, "start", "end")
	require.NotNil(t, err)
	assert.Equal(t, adt.RegistryError, err.Code)
}

func TestJitterAdvancesRNGDeterministically(t *testing.T) {
	r := Builtins()
	fn, ok := r.Comp("jitter")
	require.True(t, ok)

	rg1 := rng.New(42)
	v1, _, err := fn([]adt.Value{adt.Float{X: 10}}, rg1)
	require.Nil(t, err)

	rg2 := rng.New(42)
	v2, _, err := fn([]adt.Value{adt.Float{X: 10}}, rg2)
	require.Nil(t, err)

	assert.Equal(t, v1, v2, "same seed must reproduce the same jitter")
}
