package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaoyxue/penrose/internal/core/adt"
)

func fp(object, field string) adt.FieldPath {
	return adt.FieldPath{BForm: adt.BindingForm{Name: object}, Field: field}
}

func TestInsertFieldRejectsOverwriteWithoutOverride(t *testing.T) {
	t0 := New()
	t1, err := t0.InsertField(fp("c1", "radius"), adt.DoneTag{V: adt.Float{X: 1}}, false)
	require.Nil(t, err)

	_, err = t1.InsertField(fp("c1", "radius"), adt.DoneTag{V: adt.Float{X: 2}}, false)
	require.NotNil(t, err)
	assert.Equal(t, adt.StructuralError, err.Code)

	t2, err := t1.InsertField(fp("c1", "radius"), adt.DoneTag{V: adt.Float{X: 2}}, true)
	require.Nil(t, err)
	fe, ok := t2.LookupField(fp("c1", "radius"))
	require.True(t, ok)
	assert.Equal(t, adt.DoneTag{V: adt.Float{X: 2}}, fe)
}

func TestInsertFieldDoesNotMutateOriginal(t *testing.T) {
	t0 := New()
	t1, err := t0.InsertField(fp("c1", "radius"), adt.DoneTag{V: adt.Float{X: 1}}, false)
	require.Nil(t, err)

	_, ok := t0.LookupField(fp("c1", "radius"))
	assert.False(t, ok, "original translation must be untouched")

	_, ok = t1.LookupField(fp("c1", "radius"))
	assert.True(t, ok)
}

func TestInsertPropertyRequiresGPIField(t *testing.T) {
	t0 := New()
	t1, err := t0.InsertField(fp("c1", "radius"), adt.DoneTag{V: adt.Float{X: 1}}, false)
	require.Nil(t, err)

	pp := adt.PropertyPath{BForm: adt.BindingForm{Name: "c1"}, Field: "radius", Property: "x"}
	_, err = t1.InsertProperty(pp, adt.DoneTag{V: adt.Float{X: 1}}, false)
	require.NotNil(t, err)
	assert.Equal(t, adt.StructuralError, err.Code)
}

func TestInsertPropertyOnGPI(t *testing.T) {
	t0 := New()
	t1, err := t0.InsertGPI("c1", "shape", "Circle", adt.NewPropertyDict(), false)
	require.Nil(t, err)

	pp := adt.PropertyPath{BForm: adt.BindingForm{Name: "c1"}, Field: "shape", Property: "radius"}
	t2, err := t1.InsertProperty(pp, adt.DoneTag{V: adt.Float{X: 20}}, false)
	require.Nil(t, err)

	// original GPI's property dict is untouched
	fe, _ := t1.LookupField(fp("c1", "shape"))
	gpi, _ := adt.IsGPI(fe)
	_, ok := gpi.Props.Get("radius")
	assert.False(t, ok)

	v, ok := t2.LookupProperty(pp)
	require.True(t, ok)
	assert.Equal(t, adt.DoneTag{V: adt.Float{X: 20}}, v)
}

func TestFoldVisitsInInsertionOrder(t *testing.T) {
	t0 := New()
	t1, _ := t0.InsertField(fp("b", "x"), adt.DoneTag{V: adt.Float{X: 1}}, false)
	t2, _ := t1.InsertField(fp("a", "y"), adt.DoneTag{V: adt.Float{X: 2}}, false)
	t3, _ := t2.InsertField(fp("b", "z"), adt.DoneTag{V: adt.Float{X: 3}}, false)

	var seen [][2]string
	err := t3.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		seen = append(seen, [2]string{object, field})
		return nil
	})
	require.Nil(t, err)
	assert.Equal(t, [][2]string{{"b", "x"}, {"b", "z"}, {"a", "y"}}, seen)
}

func TestAddWarningAndClearWarnings(t *testing.T) {
	t0 := New()
	t1 := t0.AddWarning("layering cycle")
	assert.Equal(t, []string{"layering cycle"}, t1.Warnings)
	assert.Empty(t, t0.Warnings)

	t2 := t1.ClearWarnings()
	assert.Empty(t, t2.Warnings)
}

func TestResolveAliasFollowsChain(t *testing.T) {
	t0 := New()
	t1, _ := t0.InsertField(fp("base", "shape"), &adt.GPI{ShapeType: "Circle", Props: adt.NewPropertyDict()}, false)
	t2, _ := t1.InsertField(fp("alias1", "shape"), adt.OptEvalTag{E: adt.EPath{P: fp("base", "shape")}}, false)
	t3, _ := t2.InsertField(fp("alias2", "shape"), adt.OptEvalTag{E: adt.EPath{P: fp("alias1", "shape")}}, false)

	resolved, err := ResolveAlias(t3, fp("alias2", "shape"))
	require.Nil(t, err)
	assert.Equal(t, fp("base", "shape"), resolved)
}

func TestResolveAliasDetectsCycle(t *testing.T) {
	t0 := New()
	t1, _ := t0.InsertField(fp("a", "shape"), adt.OptEvalTag{E: adt.EPath{P: fp("b", "shape")}}, false)
	t2, _ := t1.InsertField(fp("b", "shape"), adt.OptEvalTag{E: adt.EPath{P: fp("a", "shape")}}, false)

	_, err := ResolveAlias(t2, fp("a", "shape"))
	require.NotNil(t, err)
	assert.Equal(t, adt.StructuralError, err.Code)
}
