// Package layer implements the layering solver: collecting every
// declared `A above B` pair out of a translation, resolving both operands
// through the translation's alias chain down to a concrete shape, and
// running Kahn's algorithm over the resulting partial order to produce a
// deterministic back-to-front draw order.
package layer

import (
	"sort"

	"github.com/mpvl/unique"

	"github.com/xiaoyxue/penrose/internal/core/adt"
	"github.com/xiaoyxue/penrose/internal/core/translation"
)

// edge records a "before" constraint: Before must be drawn ahead of After.
type edge struct {
	Before, After string
}

func resolveNode(t *translation.Translation, p adt.Path) (string, *adt.Bottom) {
	fp, ok := p.(adt.FieldPath)
	if !ok {
		return "", adt.Errf(adt.LayeringError, "layering operand %s is not a shape path", p)
	}
	resolved, err := translation.ResolveAlias(t, fp)
	if err != nil {
		return "", err
	}
	return resolved.String(), nil
}

// Edges collects every Layering declaration in the translation, in
// declaration order, resolving each operand to its underlying shape.
func Edges(t *translation.Translation) ([]edge, *adt.Bottom) {
	var out []edge
	err := t.Fold(func(object, field string, fe adt.FieldExpr) *adt.Bottom {
		opt, ok := fe.(adt.OptEvalTag)
		if !ok {
			return nil
		}
		lay, ok := opt.E.(adt.Layering)
		if !ok {
			return nil
		}
		above, err := resolveNode(t, lay.A)
		if err != nil {
			return err
		}
		below, err := resolveNode(t, lay.B)
		if err != nil {
			return err
		}
		out = append(out, edge{Before: below, After: above})
		return nil
	})
	return out, err
}

// stringSet is a sorted, deduplicated name set built via mpvl/unique, used
// to validate that a layering operand names an actual shape rather than
// some unrelated field the alias chain happened to resolve to.
type stringSet []string

func (s stringSet) Len() int           { return len(s) }
func (s stringSet) Less(i, j int) bool { return s[i] < s[j] }
func (s stringSet) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s *stringSet) Truncate(n int)    { *s = (*s)[:n] }

func newStringSet(names []string) stringSet {
	s := append(stringSet(nil), names...)
	unique.Sort(&s)
	return s
}

func (s stringSet) contains(name string) bool {
	i := sort.SearchStrings([]string(s), name)
	return i < len(s) && s[i] == name
}

// Solve computes a deterministic topological draw order covering every
// name in shapeNames. Ties among nodes with no remaining predecessor are
// broken by first-declaration order (the order of shapeNames; an operand
// outside shapeNames is rejected), so the same translation always
// yields the same order. ok is false when a layering cycle is detected;
// the returned order is then only a partial, best-effort prefix, and err
// is nil -- a cycle is not malformed input, so the caller is expected to
// fall back to declaration order rather than treat it as fatal. err is
// reserved for operands that don't resolve to a declared shape at all.
func Solve(t *translation.Translation, shapeNames []string) ([]string, bool, *adt.Bottom) {
	edges, err := Edges(t)
	if err != nil {
		return nil, false, err
	}

	valid := newStringSet(shapeNames)
	for _, e := range edges {
		if !valid.contains(e.Before) {
			return nil, false, adt.Errf(adt.LayeringError, "layering operand %s is not a declared shape", e.Before)
		}
		if !valid.contains(e.After) {
			return nil, false, adt.Errf(adt.LayeringError, "layering operand %s is not a declared shape", e.After)
		}
	}

	firstSeen := map[string]int{}
	order := make([]string, 0, len(shapeNames))
	see := func(name string) {
		if _, ok := firstSeen[name]; !ok {
			firstSeen[name] = len(order)
			order = append(order, name)
		}
	}
	for _, name := range shapeNames {
		see(name)
	}

	adj := map[string][]string{}
	indeg := map[string]int{}
	for _, name := range order {
		indeg[name] = 0
	}
	seenEdge := map[edge]bool{}
	for _, e := range edges {
		if seenEdge[e] {
			continue
		}
		seenEdge[e] = true
		adj[e.Before] = append(adj[e.Before], e.After)
		indeg[e.After]++
	}

	avail := make([]string, 0, len(order))
	for _, name := range order {
		if indeg[name] == 0 {
			avail = append(avail, name)
		}
	}

	result := make([]string, 0, len(order))
	for len(avail) > 0 {
		sort.Slice(avail, func(i, j int) bool { return firstSeen[avail[i]] < firstSeen[avail[j]] })
		n := avail[0]
		avail = avail[1:]
		result = append(result, n)
		for _, m := range adj[n] {
			indeg[m]--
			if indeg[m] == 0 {
				avail = append(avail, m)
			}
		}
	}

	if len(result) != len(order) {
		// A cycle, not a malformed operand: the caller falls back to
		// declaration order, so this is not reported as a Bottom.
		return result, false, nil
	}
	return result, true, nil
}
