package shapeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/rng"
)

func TestCircleSchemaHasPendingPathData(t *testing.T) {
	cat := New()
	sch := cat.Schema("Circle")
	require.NotEmpty(t, sch)
	assert.True(t, cat.Pending("Circle", "pathData"))
	assert.False(t, cat.Pending("Circle", "r"))
}

func TestLineHasLengthPositiveConstraint(t *testing.T) {
	cat := New()
	assert.Equal(t, []string{"lengthPositive"}, cat.DefaultConstraints("Line"))
	assert.Empty(t, cat.DefaultObjectives("Line"))
}

func TestSampleVector2ReturnsTwoComponents(t *testing.T) {
	cat := New()
	var sample func(r *rng.RNG) adt.Value
	for _, sch := range cat.Schema("Circle") {
		if sch.Name == "center" {
			sch := sch
			sample = func(r *rng.RNG) adt.Value { return sch.Sample(r) }
		}
	}
	require.NotNil(t, sample)

	r := rng.New(1)
	v := sample(r)
	vec, ok := v.(adt.VectorVal)
	require.True(t, ok)
	require.Len(t, vec.Elems, 2)
	for _, x := range vec.Elems {
		assert.GreaterOrEqual(t, x, -200.0)
		assert.LessOrEqual(t, x, 200.0)
	}
}

func TestTextFinalDimensionsArePending(t *testing.T) {
	cat := New()
	assert.True(t, cat.Pending("Text", "finalW"))
	assert.True(t, cat.Pending("Text", "finalH"))
}

func TestComputedPropertyAbsentByDefault(t *testing.T) {
	cat := New()
	_, ok := cat.ComputedProperty("Circle", "r")
	assert.False(t, ok)
}
