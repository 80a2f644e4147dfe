// Package adt defines the algebraic data types shared by the translation
// store, analyzer, sampler, evaluator, layering solver and energy
// assembler: values, paths, expressions and the tagged storage forms that
// sit in a Translation.
package adt

import "fmt"

// Kind reports the coarse type of a Value, mostly used for error messages
// and for matching a property's declared value-type against a sampled or
// evaluated result.
type Kind uint32

const (
	FloatKind Kind = 1 << iota
	IntKind
	BoolKind
	StrKind
	PointKind
	PointListKind
	PathDataKind
	PaletteKind
	ColorKind
	FileKind
	StyleKind
	ListKind
	TupleKind
	VectorKind
	MatrixKind
	ListOfListsKind
	HMatrixKind
	PolygonKind

	allKinds

	// ScalarKinds are the value kinds a varying path may resolve to.
	ScalarKinds = FloatKind | IntKind
)

func (k Kind) String() string {
	switch k {
	case FloatKind:
		return "float"
	case IntKind:
		return "int"
	case BoolKind:
		return "bool"
	case StrKind:
		return "string"
	case PointKind:
		return "point"
	case PointListKind:
		return "pointlist"
	case PathDataKind:
		return "pathdata"
	case PaletteKind:
		return "palette"
	case ColorKind:
		return "color"
	case FileKind:
		return "file"
	case StyleKind:
		return "style"
	case ListKind:
		return "list"
	case TupleKind:
		return "tuple"
	case VectorKind:
		return "vector"
	case MatrixKind:
		return "matrix"
	case ListOfListsKind:
		return "listoflists"
	case HMatrixKind:
		return "hmatrix"
	case PolygonKind:
		return "polygon"
	default:
		return fmt.Sprintf("<unknown kind %#x>", uint32(k))
	}
}

// BinOp enumerates the binary operators an Expr may carry.
type BinOp int

const (
	AddOp BinOp = iota
	SubOp
	MulOp
	DivOp
	ExpOp
)

func (op BinOp) String() string {
	switch op {
	case AddOp:
		return "+"
	case SubOp:
		return "-"
	case MulOp:
		return "*"
	case DivOp:
		return "/"
	case ExpOp:
		return "^"
	default:
		return "?"
	}
}

// UnaryOp enumerates the unary operators an Expr may carry.
type UnaryOp int

const (
	NegOp UnaryOp = iota
	PosOp
)
