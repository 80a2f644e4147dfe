package adt

import (
	"github.com/cockroachdb/apd/v2"
	"golang.org/x/text/runes"
)

var illFormed = runes.ReplaceIllFormed()

// Value is a fully-evaluated scalar, vector, matrix, color, path or list
// value, as described in It is a closed sum: every concrete type
// below implements value() and nothing outside this package may add a new
// variant, mirroring the interface-sum style of cue/internal/adt.Value.
type Value interface {
	Kind() Kind
	value()
}

// Float is the scalar representation used for sampling and evaluation. A
// future energy pass may substitute a dual-number-backed scalar for
// autodiff; the evaluator and sampler are written monomorphically against
// Float for now.
type Float struct{ X float64 }

func (Float) Kind() Kind { return FloatKind }
func (Float) value()     {}

// Int stores an exact decimal, rounded to an integral value, so that
// integer div/mod/quotient/remainder match apd-backed
// IntDivideOp/IntModuloOp/IntQuotientOp semantics exactly.
type Int struct{ X apd.Decimal }

func (Int) Kind() Kind { return IntKind }
func (Int) value()     {}

func NewInt(n int64) Int {
	var d apd.Decimal
	d.SetInt64(n)
	return Int{X: d}
}

func (i Int) Int64() (int64, error) { return i.X.Int64() }

type Bool struct{ B bool }

func (Bool) Kind() Kind { return BoolKind }
func (Bool) value()     {}

// Str replaces ill-formed UTF-8 on construction, the same normalization
// OpContext.StringValue applies in cue/internal/adt/context.go.
type Str struct{ S string }

func (Str) Kind() Kind { return StrKind }
func (Str) value()     {}

func NewStr(s string) Str { return Str{S: illFormed.String(s)} }

type Point struct{ X, Y float64 }

func (Point) Kind() Kind { return PointKind }
func (Point) value()     {}

type PointList struct{ Pts []Point }

func (PointList) Kind() Kind { return PointListKind }
func (PointList) value()     {}

// BezierKind distinguishes the segment kinds a PathData sub-path may mix.
type BezierKind int

const (
	LineSeg BezierKind = iota
	QuadSeg
	CubicSeg
)

// PathSeg is one segment of a sub-path: Pts holds 1 (line), 2 (quadratic)
// or 3 (cubic) control points plus the segment's endpoint, matching the
// arities used by SVG path commands.
type PathSeg struct {
	Kind BezierKind
	Pts  []Point
}

type SubPath struct {
	Closed bool
	Start  Point
	Segs   []PathSeg
}

type PathData struct{ Subpaths []SubPath }

func (PathData) Kind() Kind { return PathDataKind }
func (PathData) value()     {}

type ColorSpace int

const (
	RGBA ColorSpace = iota
	HSVA
)

type Color struct {
	Space              ColorSpace
	C1, C2, C3, Alpha  float64
}

func (Color) Kind() Kind { return ColorKind }
func (Color) value()     {}

type Palette struct{ Colors []Color }

func (Palette) Kind() Kind { return PaletteKind }
func (Palette) value()     {}

type File struct{ Path string }

func (File) Kind() Kind { return FileKind }
func (File) value()     {}

type Style struct{ Name string }

func (Style) Kind() Kind { return StyleKind }
func (Style) value()     {}

// ListVal is List<N>: a homogeneous list of scalars.
type ListVal struct{ Elems []float64 }

func (ListVal) Kind() Kind { return ListKind }
func (ListVal) value()     {}

type Tuple struct{ A, B float64 }

func (Tuple) Kind() Kind { return TupleKind }
func (Tuple) value()     {}

// VectorVal is Vector<N>, an ordered, fixed-role list of scalars (used for
// the optimized-vector properties start/end/center, among others).
type VectorVal struct{ Elems []float64 }

func (VectorVal) Kind() Kind { return VectorKind }
func (VectorVal) value()     {}

type MatrixVal struct{ Rows [][]float64 }

func (MatrixVal) Kind() Kind { return MatrixKind }
func (MatrixVal) value()     {}

type ListOfLists struct{ Lists [][]float64 }

func (ListOfLists) Kind() Kind { return ListOfListsKind }
func (ListOfLists) value()     {}

// HMatrix is a six-component affine transform [a b c d e f].
type HMatrix struct{ A, B, C, D, E, F float64 }

func (HMatrix) Kind() Kind { return HMatrixKind }
func (HMatrix) value()     {}

type BBox struct{ MinX, MinY, MaxX, MaxY float64 }

type Polygon struct {
	Positive [][]Point
	Negative [][]Point
	Box      BBox
	Sample   []Point
}

func (Polygon) Kind() Kind { return PolygonKind }
func (Polygon) value()     {}

// ArgVal is the evaluator's result type: either a concrete value or a
// graphical primitive discovered through an alias lookup.
type ArgVal interface {
	isArgVal()
}

type ValArg struct{ V Value }

func (ValArg) isArgVal() {}

type GpiArg struct{ G *Shape }

func (GpiArg) isArgVal() {}
