package config

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/translation"
)

// ExprNode is the flat, YAML-decodable wire form of an adt.Expr/adt.FieldExpr.
// adt's expression tree is a closed sum of unexported-marker interfaces, so it
// cannot be unmarshaled directly; a fixture document decodes into ExprNode
// first, then converts field by field into the concrete adt types.
//
// Exactly one of the constructor-ish fields should be set per node; which
// fields are non-zero decides the node's shape in toExpr/toFieldExpr.
type ExprNode struct {
	// Shape/Properties, present together, make this node a graphical
	// primitive constructor (a GPI field).
	Shape      string              `yaml:"shape,omitempty"`
	Properties map[string]ExprNode `yaml:"properties,omitempty"`

	// Above/Below, present together, make this node a layering declaration.
	Above string `yaml:"above,omitempty"`
	Below string `yaml:"below,omitempty"`

	// Fix is a literal scalar field.
	Fix *float64 `yaml:"fix,omitempty"`
	// Vary marks a free scalar to be sampled before optimization.
	Vary bool `yaml:"vary,omitempty"`

	// Ref is a dotted path reference: "object.field" or
	// "object.field.property".
	Ref string `yaml:"ref,omitempty"`

	// Comp/Obj/Constr name a registry call; Args are its operands.
	Comp   string     `yaml:"comp,omitempty"`
	Obj    string     `yaml:"obj,omitempty"`
	Constr string     `yaml:"constr,omitempty"`
	Args   []ExprNode `yaml:"args,omitempty"`

	// Vector is a fixed/vary mix building a VectorExpr.
	Vector []ExprNode `yaml:"vector,omitempty"`
}

// Fixture is a full translation document: object name -> field name ->
// ExprNode.
type Fixture struct {
	Objects map[string]map[string]ExprNode `yaml:"objects"`
}

// LoadFixture parses a YAML fixture document.
func LoadFixture(data []byte) (Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixture{}, err
	}
	return fx, nil
}

// BuildTranslation converts a parsed Fixture into a real translation, field
// by field, objects and then fields each in sorted name order so the
// result is deterministic.
func BuildTranslation(fx Fixture) (*translation.Translation, error) {
	names := make([]string, 0, len(fx.Objects))
	for name := range fx.Objects {
		names = append(names, name)
	}
	slices.Sort(names)

	t := translation.New()
	for _, object := range names {
		fields := fx.Objects[object]
		fieldNames := make([]string, 0, len(fields))
		for name := range fields {
			fieldNames = append(fieldNames, name)
		}
		slices.Sort(fieldNames)

		for _, field := range fieldNames {
			fe, err := toFieldExpr(fields[field])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", object, field, err)
			}
			bform := adt.BindingForm{Kind: adt.SubstanceBound, Name: object}
			nt, berr := t.InsertField(adt.FieldPath{BForm: bform, Field: field}, fe, false)
			if berr != nil {
				return nil, fmt.Errorf("%s.%s: %s", object, field, berr.Error())
			}
			t = nt
		}
	}
	return t, nil
}

func toFieldExpr(n ExprNode) (adt.FieldExpr, error) {
	if n.Shape != "" {
		return toGPI(n)
	}
	if n.Above != "" || n.Below != "" {
		a, err := toRefPath(n.Above)
		if err != nil {
			return nil, err
		}
		b, err := toRefPath(n.Below)
		if err != nil {
			return nil, err
		}
		return adt.OptEvalTag{E: adt.Layering{A: a, B: b}}, nil
	}
	e, err := toExpr(n)
	if err != nil {
		return nil, err
	}
	return adt.OptEvalTag{E: e}, nil
}

func toGPI(n ExprNode) (*adt.GPI, error) {
	props := adt.NewPropertyDict()
	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		e, err := toExpr(n.Properties[name])
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		props.Set(name, adt.OptEvalTag{E: e})
	}
	return &adt.GPI{ShapeType: n.Shape, Props: props}, nil
}

func toExpr(n ExprNode) (adt.Expr, error) {
	switch {
	case n.Fix != nil:
		return adt.AFloat{Val: *n.Fix}, nil
	case n.Vary:
		return adt.AFloat{Vary: true}, nil
	case n.Ref != "":
		p, err := toRefPath(n.Ref)
		if err != nil {
			return nil, err
		}
		return adt.EPath{P: p}, nil
	case n.Comp != "":
		args, err := toExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return adt.CompApp{Name: n.Comp, Args: args}, nil
	case n.Obj != "":
		args, err := toExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return adt.ObjFn{Name: n.Obj, Args: args}, nil
	case n.Constr != "":
		args, err := toExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return adt.ConstrFn{Name: n.Constr, Args: args}, nil
	case n.Vector != nil:
		elems, err := toExprs(n.Vector)
		if err != nil {
			return nil, err
		}
		return adt.VectorExpr{Elems: elems}, nil
	default:
		return nil, fmt.Errorf("empty expression node")
	}
}

func toExprs(ns []ExprNode) ([]adt.Expr, error) {
	out := make([]adt.Expr, len(ns))
	for i, n := range ns {
		e, err := toExpr(n)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// toRefPath parses "object.field" into a FieldPath or "object.field.property"
// into a PropertyPath.
func toRefPath(ref string) (adt.Path, error) {
	parts := strings.Split(ref, ".")
	bform := func(name string) adt.BindingForm {
		return adt.BindingForm{Kind: adt.SubstanceBound, Name: name}
	}
	switch len(parts) {
	case 2:
		return adt.FieldPath{BForm: bform(parts[0]), Field: parts[1]}, nil
	case 3:
		return adt.PropertyPath{BForm: bform(parts[0]), Field: parts[1], Property: parts[2]}, nil
	default:
		return nil, fmt.Errorf("ref %q must be object.field or object.field.property", ref)
	}
}
