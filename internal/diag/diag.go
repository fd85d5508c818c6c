// Package diag renders a constraint set and its current assignment for
// human inspection: a plain-text dependency listing and a Graphviz dot
// graph. Rendering is entirely read-only — it recomputes dependency edges
// from each constraint's declared and used inputs rather than touching any
// solver-internal state, so it can run against the result of either solve
// mode without influencing it (spec §6, "diagnostic renderers ... must not
// affect solve results").
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/valueid"
)

// Render produces a human-readable listing: one line per constraint showing
// its inputs (marked with * if currently used per UsedInputs), its outputs,
// and their current values.
func Render(constraints []constraint.Constraint, a *assignment.Assignment) (string, error) {
	var b strings.Builder
	for i, c := range constraints {
		used := map[valueid.ID]bool{}
		if c.HasDynamicInputs() {
			ids, err := c.UsedInputs(a)
			if err != nil {
				return "", fmt.Errorf("diag: used_inputs for constraint %d (%s): %w", i, c, err)
			}
			for _, id := range ids {
				used[id] = true
			}
		} else {
			for _, id := range c.Inputs() {
				used[id] = true
			}
		}

		fmt.Fprintf(&b, "[%d] %s\n", i, c)
		for _, id := range c.Inputs() {
			v, err := a.GetUntyped(id)
			if err != nil {
				return "", fmt.Errorf("diag: reading input %s: %w", id, err)
			}
			marker := ""
			if used[id] {
				marker = "*"
			}
			fmt.Fprintf(&b, "    in%s  %s = %v\n", marker, id, v)
		}
		for _, id := range c.Outputs() {
			v, err := a.GetUntyped(id)
			if err != nil {
				return "", fmt.Errorf("diag: reading output %s: %w", id, err)
			}
			fmt.Fprintf(&b, "    out  %s = %v\n", id, v)
		}
	}
	return b.String(), nil
}

// Dot produces a Graphviz dot graph: one node per ValueID mentioned by any
// constraint, one node per constraint, and edges from a constraint's
// currently-used inputs to it and from it to its outputs.
func Dot(constraints []constraint.Constraint, a *assignment.Assignment) (string, error) {
	var b strings.Builder
	b.WriteString("digraph cba {\n  rankdir=LR;\n")

	varNodes := map[valueid.ID]bool{}
	for i, c := range constraints {
		cname := fmt.Sprintf("c%d", i)
		fmt.Fprintf(&b, "  %s [shape=box, label=%q];\n", cname, c.String())

		var ins []valueid.ID
		if c.HasDynamicInputs() {
			used, err := c.UsedInputs(a)
			if err != nil {
				return "", fmt.Errorf("diag: used_inputs for constraint %d (%s): %w", i, c, err)
			}
			ins = used
		} else {
			ins = c.Inputs()
		}
		for _, id := range ins {
			varNodes[id] = true
			fmt.Fprintf(&b, "  %q -> %s;\n", id.String(), cname)
		}
		for _, id := range c.Outputs() {
			varNodes[id] = true
			fmt.Fprintf(&b, "  %s -> %q;\n", cname, id.String())
		}
	}

	names := make([]string, 0, len(varNodes))
	for id := range varNodes {
		names = append(names, id.String())
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&b, "  %q [shape=ellipse];\n", n)
	}

	b.WriteString("}\n")
	return b.String(), nil
}
