// Package catalog declares the external shape-catalog collaborator: given
// a shape-type name, it yields the property schema, the pending-property
// predicate, default objective/constraint names, and computed-property
// descriptors. internal/shapeset provides a concrete, in-process
// implementation; production embedders supply their own.
package catalog

import "github.com/xiaoyxue/penrose/internal/core/adt"

// Rand is the minimal random source a PropSchema's Sample function needs.
// It is satisfied structurally by *rng.RNG without catalog importing rng.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// SampleFunc draws one value for a property from rng, advancing it exactly
// once.
type SampleFunc func(r Rand) adt.Value

// PropSchema is one entry of schema(type) -> [(property, value-type,
// sampler)].
type PropSchema struct {
	Name   string
	Kind   adt.Kind
	Sample SampleFunc
}

// ComputedProperty describes a (type, property) pair backed by a derived
// computation over other properties of the same shape, rather than a
// stored value (e.g. a bounding box computed from points).
type ComputedProperty struct {
	ArgProperties []string
	Compute       func(args []adt.Value) adt.Value
}

// Catalog is the shape-catalog contract the sampler, analyzer and
// evaluator are written against.
type Catalog interface {
	Schema(shapeType string) []PropSchema
	DefaultObjectives(shapeType string) []string
	DefaultConstraints(shapeType string) []string
	Pending(shapeType, property string) bool
	ComputedProperty(shapeType, property string) (ComputedProperty, bool)
}
