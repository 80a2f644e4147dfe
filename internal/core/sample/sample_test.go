package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/rng"
	"github.com/xiaoyxue/penrose/internal/core/translation"
	"github.com/xiaoyxue/penrose/internal/shapeset"
)

func fp(object, field string) adt.FieldPath {
	return adt.FieldPath{BForm: adt.BindingForm{Name: object}, Field: field}
}

var canvas400 = Canvas{Width: 400, Height: 400}

func TestScalarStaysWithinCanvasHalfWidth(t *testing.T) {
	r := rng.New(1)
	for i := 0; i < 50; i++ {
		v := Scalar(r, canvas400)
		assert.InDelta(t, 0, v, 200, "draw must land within [-200, 200]")
	}
}

func TestTranslationFillsUninitializedVectorProperty(t *testing.T) {
	cat := shapeset.New()
	props := adt.NewPropertyDict()
	props.Set("r", adt.DoneTag{V: adt.Float{X: 20}})
	// center, strokeWidth, rotation, color, pathData are all left absent.
	tr, err := translation.New().InsertGPI("c1", "shape", "Circle", props, false)
	require.Nil(t, err)

	out, _, berr := Translation(tr, cat, canvas400, rng.New(1))
	require.Nil(t, berr)

	gpi, ok := adt.IsGPI(mustLookup(t, out, fp("c1", "shape")))
	require.True(t, ok)

	// center and color are non-scalar; the fill pass covers them same as
	// any other absent schema property.
	center, ok := gpi.Props.Get("center")
	require.True(t, ok, "center must be filled in by the catalog sampler")
	done, ok := center.(adt.DoneTag)
	require.True(t, ok)
	vec, ok := done.V.(adt.VectorVal)
	require.True(t, ok)
	assert.Len(t, vec.Elems, 2)

	_, ok = gpi.Props.Get("color")
	assert.True(t, ok, "color must be filled in by the catalog sampler")
}

func TestTranslationFillsAbsentScalarProperty(t *testing.T) {
	// r is a scalar, non-unoptimized property: absent from the dict, it
	// must still be filled in, since VaryingPaths/readPaths will ask for
	// it as part of the optimizer-visible varying state.
	cat := shapeset.New()
	tr, err := translation.New().InsertGPI("c1", "shape", "Circle", adt.NewPropertyDict(), false)
	require.Nil(t, err)

	out, _, berr := Translation(tr, cat, canvas400, rng.New(1))
	require.Nil(t, berr)

	gpi, ok := adt.IsGPI(mustLookup(t, out, fp("c1", "shape")))
	require.True(t, ok)

	r, ok := gpi.Props.Get("r")
	require.True(t, ok, "r must be filled in even though it is scalar")
	done, ok := r.(adt.DoneTag)
	require.True(t, ok)
	_, ok = done.V.(adt.Float)
	require.True(t, ok)

	// strokeWidth/rotation are scalar too, and unoptimized, but absence
	// from the dict still means absence from the catalog, not absence
	// from the optimizer -- the fill pass doesn't distinguish.
	_, ok = gpi.Props.Get("strokeWidth")
	assert.True(t, ok, "every absent schema property is filled in, not just optimized ones")
}

func TestTranslationFillsPendingPropertyAsPendingTag(t *testing.T) {
	cat := shapeset.New()
	tr, err := translation.New().InsertGPI("c1", "shape", "Circle", adt.NewPropertyDict(), false)
	require.Nil(t, err)

	out, _, berr := Translation(tr, cat, canvas400, rng.New(1))
	require.Nil(t, berr)

	gpi, ok := adt.IsGPI(mustLookup(t, out, fp("c1", "shape")))
	require.True(t, ok)

	pd, ok := gpi.Props.Get("pathData")
	require.True(t, ok, "pathData must be filled in")
	_, ok = pd.(adt.PendingTag)
	assert.True(t, ok, "a property the catalog marks Pending is tagged PendingTag, not DoneTag")
}

func TestTranslationLeavesExplicitPropertyUntouched(t *testing.T) {
	cat := shapeset.New()
	props := adt.NewPropertyDict()
	props.Set("r", adt.DoneTag{V: adt.Float{X: 20}})
	props.Set("center", adt.DoneTag{V: adt.VectorVal{Elems: []float64{1, 2}}})
	tr, err := translation.New().InsertGPI("c1", "shape", "Circle", props, false)
	require.Nil(t, err)

	out, _, berr := Translation(tr, cat, canvas400, rng.New(1))
	require.Nil(t, berr)

	gpi, _ := adt.IsGPI(mustLookup(t, out, fp("c1", "shape")))
	center, ok := gpi.Props.Get("center")
	require.True(t, ok)
	done := center.(adt.DoneTag)
	assert.Equal(t, []float64{1, 2}, done.V.(adt.VectorVal).Elems)
}

func TestTranslationResolvesVaryScalarField(t *testing.T) {
	tr, err := translation.New().InsertField(fp("x", "f"), adt.OptEvalTag{E: adt.AFloat{Vary: true}}, false)
	require.Nil(t, err)

	out, _, berr := Translation(tr, shapeset.New(), canvas400, rng.New(1))
	require.Nil(t, berr)

	fe, ok := out.LookupField(fp("x", "f"))
	require.True(t, ok)
	done, ok := fe.(adt.DoneTag)
	require.True(t, ok, "a resolved Vary marker must be memoized as Done")
	f, ok := done.V.(adt.Float)
	require.True(t, ok)
	assert.InDelta(t, 0, f.X, 200)
}

func TestTranslationResolvesVaryVectorField(t *testing.T) {
	vec := adt.VectorExpr{Elems: []adt.Expr{adt.AFloat{Vary: true}, adt.AFloat{Val: 7}}}
	tr, err := translation.New().InsertField(fp("x", "f"), adt.OptEvalTag{E: vec}, false)
	require.Nil(t, err)

	out, _, berr := Translation(tr, shapeset.New(), canvas400, rng.New(1))
	require.Nil(t, berr)

	fe, ok := out.LookupField(fp("x", "f"))
	require.True(t, ok)
	done := fe.(adt.DoneTag)
	got := done.V.(adt.VectorVal)
	require.Len(t, got.Elems, 2)
	assert.Equal(t, 7.0, got.Elems[1], "the non-Vary component must be preserved exactly")
}

func TestTranslationLeavesFixedFieldAlone(t *testing.T) {
	tr, err := translation.New().InsertField(fp("x", "f"), adt.OptEvalTag{E: adt.AFloat{Val: 3}}, false)
	require.Nil(t, err)

	out, _, berr := Translation(tr, shapeset.New(), canvas400, rng.New(1))
	require.Nil(t, berr)

	fe, ok := out.LookupField(fp("x", "f"))
	require.True(t, ok)
	assert.Equal(t, adt.OptEvalTag{E: adt.AFloat{Val: 3}}, fe, "a fixed field without Vary is left for the evaluator, not pre-resolved")
}

func TestSameSeedProducesSameSample(t *testing.T) {
	cat := shapeset.New()
	props := adt.NewPropertyDict()
	tr, err := translation.New().InsertGPI("c1", "shape", "Circle", props, false)
	require.Nil(t, err)

	out1, _, berr1 := Translation(tr, cat, canvas400, rng.New(7))
	require.Nil(t, berr1)
	out2, _, berr2 := Translation(tr, cat, canvas400, rng.New(7))
	require.Nil(t, berr2)

	g1, _ := adt.IsGPI(mustLookup(t, out1, fp("c1", "shape")))
	g2, _ := adt.IsGPI(mustLookup(t, out2, fp("c1", "shape")))
	r1, _ := g1.Props.Get("r")
	r2, _ := g2.Props.Get("r")
	assert.Equal(t, r1, r2, "same seed must reproduce the same draws")
}

func mustLookup(t *testing.T, tr *translation.Translation, p adt.FieldPath) adt.FieldExpr {
	t.Helper()
	fe, ok := tr.LookupField(p)
	require.True(t, ok)
	return fe
}
