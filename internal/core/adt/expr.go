package adt

// Expr is the unevaluated expression tree of Like Value and Path
// it is a closed sum: every node type below implements expr() and nothing
// outside this package defines a new case, following the same
// interface-marker idiom as cue/internal/adt.Expr.
type Expr interface {
	expr()
}

// Lit wraps an already-evaluated Value so it can appear as an Expr leaf
// (integer/float/string/bool literal).
type Lit struct{ V Value }

func (Lit) expr() {}

// AFloat is an annotated float: either Fix(f), a literal, or Vary, a
// placeholder for a to-be-sampled free scalar. AFloat must never reach the
// evaluator in its Vary form (see eval.Context.Eval's uninitialized-vary case).
type AFloat struct {
	Vary bool
	Val  float64
}

func (AFloat) expr() {}

// EPath is a reference to a Path.
type EPath struct{ P Path }

func (EPath) expr() {}

// CompApp is a computation-registry call (name, [Expr]).
type CompApp struct {
	Name string
	Args []Expr
}

func (CompApp) expr() {}

// ObjFn is an objective declaration `encourage name(args)`.
type ObjFn struct {
	Name string
	Args []Expr
}

func (ObjFn) expr() {}

// ConstrFn is a constraint declaration `ensure name(args)`.
type ConstrFn struct {
	Name string
	Args []Expr
}

func (ConstrFn) expr() {}

// AvoidFn is a soft-avoid declaration, carried through as a declarative-only
// node alongside ObjFn/ConstrFn.
type AvoidFn struct {
	Name string
	Args []Expr
}

func (AvoidFn) expr() {}

type UnaryExpr struct {
	Op BinOpUnary
	X  Expr
}

// BinOpUnary aliases UnaryOp for readability at call sites.
type BinOpUnary = UnaryOp

func (UnaryExpr) expr() {}

type BinaryExpr struct {
	Op   BinOp
	X, Y Expr
}

func (BinaryExpr) expr() {}

type ListExpr struct{ Elems []Expr }

func (ListExpr) expr() {}

type TupleExpr struct{ A, B Expr }

func (TupleExpr) expr() {}

type VectorExpr struct{ Elems []Expr }

func (VectorExpr) expr() {}

type MatrixExpr struct{ Rows [][]Expr }

func (MatrixExpr) expr() {}

// VectorAccess/MatrixAccess/ListAccess are element accessors over a
// vector-, matrix- or list-valued expression.
type VectorAccess struct {
	X     Expr
	Index int
}

func (VectorAccess) expr() {}

type MatrixAccess struct {
	X        Expr
	Row, Col int
}

func (MatrixAccess) expr() {}

type ListAccess struct {
	X     Expr
	Index int
}

func (ListAccess) expr() {}

// ShapeCtor constructs a graphical primitive. It is valid only as the
// direct body of a field's FieldExpr (translation.InsertGPI); encountering
// it nested inside another expression during evaluation is the "inline
// primitive used as an expression" structural error.
type ShapeCtor struct {
	ShapeType string
	Props     map[string]Expr
	// PropOrder preserves declaration order for deterministic evaluation.
	PropOrder []string
}

func (ShapeCtor) expr() {}

// Layering is a declarative `A above B` pair; valid only as a top-level
// field expression, never inside an evaluation context.
type Layering struct {
	A, B Path
}

func (Layering) expr() {}

// PluginAccess reads a value out of the plugin data blob the upstream
// compiler attaches to the translation; declarative-only like Layering.
type PluginAccess struct {
	Name string
	Key  string
}

func (PluginAccess) expr() {}
