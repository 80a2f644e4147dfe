package adt

import (
	"fmt"
	"strings"
)

// BFormKind distinguishes a substance-bound identifier (declared in the
// .substance program) from a style-bound one (declared in a style block or
// comprehension) BindingForm.
type BFormKind int

const (
	SubstanceBound BFormKind = iota
	StyleBound
)

// BindingForm names the object an object-name/field-name pair is rooted at.
type BindingForm struct {
	Kind BFormKind
	Name string
}

func (b BindingForm) String() string { return b.Name }

// Path is the unique key into a Translation: a field, a property, an
// indexed access into a vector/matrix-valued path, or a local (comprehension)
// variable. All four variants are closed -- the switch in Object and
// throughout the evaluator is exhaustive.
type Path interface {
	isPath()
	// String renders a canonical, hashable form suitable as a map key.
	String() string
}

// FieldPath refers to object.field.
type FieldPath struct {
	BForm BindingForm
	Field string
}

func (FieldPath) isPath() {}
func (p FieldPath) String() string {
	return fmt.Sprintf("%s.%s", p.BForm.Name, p.Field)
}

// PropertyPath refers to object.field.property, where field names a
// graphical primitive.
type PropertyPath struct {
	BForm    BindingForm
	Field    string
	Property string
}

func (PropertyPath) isPath() {}
func (p PropertyPath) String() string {
	return fmt.Sprintf("%s.%s.%s", p.BForm.Name, p.Field, p.Property)
}

// AccessPath selects one or more elements inside a vector- or
// matrix-valued path.
type AccessPath struct {
	Inner   Path
	Indices []int
}

func (AccessPath) isPath() {}
func (p AccessPath) String() string {
	idx := make([]string, len(p.Indices))
	for i, n := range p.Indices {
		idx[i] = fmt.Sprintf("[%d]", n)
	}
	return p.Inner.String() + strings.Join(idx, "")
}

// LocalVarPath refers to a comprehension-local identifier; it is never a
// translation key but appears as an Expr operand during evaluation of a
// Yielder (out of scope for this core, retained for closed-sum fidelity).
type LocalVarPath struct {
	Name string
}

func (LocalVarPath) isPath() {}
func (p LocalVarPath) String() string { return "$" + p.Name }

// Object returns the object name the path is rooted at, for Field and
// Property paths, and recurses through Access. It panics on LocalVarPath,
// which has no object root.
func Object(p Path) string {
	switch x := p.(type) {
	case FieldPath:
		return x.BForm.Name
	case PropertyPath:
		return x.BForm.Name
	case AccessPath:
		return Object(x.Inner)
	default:
		panic(fmt.Sprintf("path %v has no object root", p))
	}
}
