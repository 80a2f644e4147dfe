// Package debug renders a State or Translation for verbose CLI output and
// test failure messages, using github.com/kr/pretty to format nested
// structs the same way a failed assertion would.
package debug

import (
	"fmt"

	"github.com/kr/pretty"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/state"
	"github.com/xiaoyxue/penrose/internal/core/translation"
)

// Translation renders every object/field/value triple in a translation,
// one line each, for quick inspection; it does not attempt to reproduce
// the underlying expression tree.
func Translation(t *translation.Translation) string {
	out := ""
	_ = t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		out += fmt.Sprintf("%s.%s = %# v\n", object, field, pretty.Formatter(fe))
		return nil
	})
	return out
}

// State renders a State's discovered paths and varying-state vector.
func State(s *state.State) string {
	return fmt.Sprintf(
		"shapes: %# v\nvarying paths: %# v\nvarying state: %# v\nordering: %# v\n",
		pretty.Formatter(s.ShapePaths),
		pretty.Formatter(s.VaryingPaths),
		pretty.Formatter(s.VaryingState),
		pretty.Formatter(s.ShapeOrdering),
	)
}
