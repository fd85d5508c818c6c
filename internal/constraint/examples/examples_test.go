package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

func TestElemIf(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("guard", lattice.Powerset[int]())
	reg.Register("ids", lattice.Powerset[valueid.ID]())
	a := assignment.New(reg)

	guard := valueid.New[lattice.Set[int]]("guard", 1)
	out := valueid.New[lattice.Set[valueid.ID]]("ids", 1)
	target := valueid.Untyped("ids", 2)

	c := ElemIf(3, guard, target, out)

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, constraint.Unchanged, status)

	require.NoError(t, assignment.Set(a, guard, lattice.NewSet(3)))
	status, err = c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, constraint.Incremented, status)

	got, err := assignment.Get(a, out)
	require.NoError(t, err)
	assert.True(t, got.Contains(target))

	ok, err := c.Check(a)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCollect(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("ids", lattice.Powerset[valueid.ID]())
	reg.Register("vals", lattice.Powerset[int]())
	a := assignment.New(reg)

	setOfSets := valueid.New[lattice.Set[valueid.ID]]("ids", 1)
	v1 := valueid.New[lattice.Set[int]]("vals", 1)
	v2 := valueid.New[lattice.Set[int]]("vals", 2)
	out := valueid.New[lattice.Set[int]]("vals", 3)

	require.NoError(t, assignment.Set(a, v1, lattice.NewSet(1, 2)))
	require.NoError(t, assignment.Set(a, v2, lattice.NewSet(3)))
	require.NoError(t, assignment.Set(a, setOfSets, lattice.NewSet(v1.Untyped(), v2.Untyped())))

	c := Collect[int](setOfSets, out)

	used, err := c.UsedInputs(a)
	require.NoError(t, err)
	assert.ElementsMatch(t, []valueid.ID{setOfSets.Untyped(), v1.Untyped(), v2.Untyped()}, used)

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, constraint.Incremented, status)

	got, err := assignment.Get(a, out)
	require.NoError(t, err)
	assert.Equal(t, lattice.NewSet(1, 2, 3), got)

	ok, err := c.Check(a)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCollectGrowsAsSetOfSetsGrows(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("ids", lattice.Powerset[valueid.ID]())
	reg.Register("vals", lattice.Powerset[int]())
	a := assignment.New(reg)

	setOfSets := valueid.New[lattice.Set[valueid.ID]]("ids", 1)
	v1 := valueid.New[lattice.Set[int]]("vals", 1)
	out := valueid.New[lattice.Set[int]]("vals", 3)

	c := Collect[int](setOfSets, out)

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, constraint.Unchanged, status)

	require.NoError(t, assignment.Set(a, v1, lattice.NewSet(5)))
	require.NoError(t, assignment.Set(a, setOfSets, lattice.NewSet(v1.Untyped())))

	status, err = c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, constraint.Incremented, status)

	got, err := assignment.Get(a, out)
	require.NoError(t, err)
	assert.Equal(t, lattice.NewSet(5), got)
}

func TestIncrement(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("n", lattice.MaxInt())
	a := assignment.New(reg)

	from := valueid.New[int]("n", 1)
	to := valueid.New[int]("n", 1)
	c := Increment(from, to, 3)

	for i := 0; i < 3; i++ {
		status, err := c.Update(a)
		require.NoError(t, err)
		assert.Equal(t, constraint.Altered, status)
	}

	got, err := assignment.Get(a, to)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, constraint.Unchanged, status)

	ok, err := c.Check(a)
	require.NoError(t, err)
	assert.True(t, ok)
}
