package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/translation"
)

func fp(object, field string) adt.FieldPath {
	return adt.FieldPath{BForm: adt.BindingForm{Name: object}, Field: field}
}

func withLayering(t *testing.T, above, below adt.FieldPath) *translation.Translation {
	t.Helper()
	name := above.BForm.Name + "_above_" + below.BForm.Name
	tr, err := translation.New().InsertField(fp(name, "layer"),
		adt.OptEvalTag{E: adt.Layering{A: above, B: below}}, false)
	require.Nil(t, err)
	return tr
}

func TestSolveOrdersAboveAfterBelow(t *testing.T) {
	a, b := fp("a", "shape"), fp("b", "shape")
	tr := withLayering(t, a, b)

	order, ok, err := Solve(tr, []string{"a.shape", "b.shape"})
	require.Nil(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"b.shape", "a.shape"}, order)
}

func TestSolveNoEdgesPreservesDeclarationOrder(t *testing.T) {
	order, ok, err := Solve(translation.New(), []string{"b.shape", "a.shape"})
	require.Nil(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"b.shape", "a.shape"}, order)
}

func TestSolveDetectsCycle(t *testing.T) {
	a, b := fp("a", "shape"), fp("b", "shape")
	tr := withLayering(t, a, b)
	tr, err := tr.InsertField(fp("cycle", "layer"), adt.OptEvalTag{E: adt.Layering{A: b, B: a}}, false)
	require.Nil(t, err)

	_, ok, berr := Solve(tr, []string{"a.shape", "b.shape"})
	require.Nil(t, berr, "a cycle is not a malformed-operand error")
	assert.False(t, ok)
}

func TestSolveRejectsUndeclaredOperand(t *testing.T) {
	a, b := fp("a", "shape"), fp("ghost", "shape")
	tr := withLayering(t, a, b)

	_, _, err := Solve(tr, []string{"a.shape"})
	require.NotNil(t, err)
	assert.Equal(t, adt.LayeringError, err.Code)
}

func TestSolveFollowsAliasChain(t *testing.T) {
	real := fp("real", "shape")
	tr, err := translation.New().InsertField(real, &adt.GPI{ShapeType: "Circle", Props: adt.NewPropertyDict()}, false)
	require.Nil(t, err)
	alias := fp("alias", "shape")
	tr, err = tr.InsertField(alias, adt.OptEvalTag{E: adt.EPath{P: real}}, false)
	require.Nil(t, err)
	other := fp("other", "shape")
	tr, err = tr.InsertField(other, &adt.GPI{ShapeType: "Circle", Props: adt.NewPropertyDict()}, false)
	require.Nil(t, err)
	tr, err = tr.InsertField(fp("alias_above_other", "layer"),
		adt.OptEvalTag{E: adt.Layering{A: alias, B: other}}, false)
	require.Nil(t, err)

	order, ok, berr := Solve(tr, []string{"real.shape", "other.shape"})
	require.Nil(t, berr)
	require.True(t, ok)
	assert.Equal(t, []string{"other.shape", "real.shape"}, order)
}

func TestSolveDeterministicTieBreak(t *testing.T) {
	order1, _, _ := Solve(translation.New(), []string{"z", "a", "m"})
	order2, _, _ := Solve(translation.New(), []string{"z", "a", "m"})
	assert.Equal(t, order1, order2)
	assert.Equal(t, []string{"z", "a", "m"}, order1)
}
