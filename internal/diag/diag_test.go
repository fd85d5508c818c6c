package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

func TestRenderListsInputsOutputsAndValues(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("v", lattice.Powerset[int]())
	a := assignment.New(reg)

	from := valueid.New[lattice.Set[int]]("v", 1)
	to := valueid.New[lattice.Set[int]]("v", 2)
	require.NoError(t, assignment.Set(a, from, lattice.NewSet(1, 2)))

	out, err := Render([]constraint.Constraint{constraint.Subset(from, to)}, a)
	require.NoError(t, err)

	assert.Contains(t, out, "[0] subset(v#1, v#2)")
	assert.Contains(t, out, "in*  v#1")
	assert.Contains(t, out, "out  v#2")
}

func TestRenderMarksOnlyActuallyUsedDynamicInputs(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("v", lattice.Powerset[int]())
	a := assignment.New(reg)

	guard := valueid.New[lattice.Set[int]]("v", 1)
	from := valueid.New[lattice.Set[int]]("v", 2)
	to := valueid.New[lattice.Set[int]]("v", 3)

	out, err := Render([]constraint.Constraint{constraint.SubsetIfElem(9, guard, from, to)}, a)
	require.NoError(t, err)

	assert.Contains(t, out, "in*  v#1")
	assert.Contains(t, out, "in  v#2", "guard not satisfied, so the body input is not yet used")
}

func TestRenderPropagatesUnknownLatticeError(t *testing.T) {
	reg := lattice.NewRegistry()
	a := assignment.New(reg)
	c := constraint.Elem(1, valueid.New[lattice.Set[int]]("missing", 1))

	_, err := Render([]constraint.Constraint{c}, a)
	assert.Error(t, err)
}

func TestDotProducesValidGraphvizShape(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("v", lattice.Powerset[int]())
	a := assignment.New(reg)

	from := valueid.New[lattice.Set[int]]("v", 1)
	to := valueid.New[lattice.Set[int]]("v", 2)

	out, err := Dot([]constraint.Constraint{constraint.Subset(from, to)}, a)
	require.NoError(t, err)

	assert.Contains(t, out, "digraph cba {")
	assert.Contains(t, out, `"v#1" -> c0;`)
	assert.Contains(t, out, `c0 -> "v#2";`)
	assert.Contains(t, out, `"v#1" [shape=ellipse];`)
	assert.Contains(t, out, "}\n")
}

func TestDotNodeNamesAreSorted(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("v", lattice.Powerset[int]())
	a := assignment.New(reg)

	v3 := valueid.New[lattice.Set[int]]("v", 3)
	v1 := valueid.New[lattice.Set[int]]("v", 1)

	out, err := Dot([]constraint.Constraint{constraint.Subset(v3, v1)}, a)
	require.NoError(t, err)

	iV1 := indexOf(out, `"v#1" [shape=ellipse];`)
	iV3 := indexOf(out, `"v#3" [shape=ellipse];`)
	require.NotEqual(t, -1, iV1)
	require.NotEqual(t, -1, iV3)
	assert.Less(t, iV1, iV3, "ellipse nodes are emitted in sorted order")
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
