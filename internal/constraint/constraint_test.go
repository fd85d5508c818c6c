package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

func newAssignment(tags ...valueid.Tag) *assignment.Assignment {
	reg := lattice.NewRegistry()
	for _, tag := range tags {
		reg.Register(tag, lattice.Powerset[int]())
	}
	return assignment.New(reg)
}

func TestElem(t *testing.T) {
	a := newAssignment("s")
	s := valueid.New[lattice.Set[int]]("s", 1)
	c := Elem(5, s)

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)

	got, err := assignment.Get(a, s)
	require.NoError(t, err)
	assert.Equal(t, lattice.NewSet(5), got)

	status, err = c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, status)

	ok, err := c.Check(a)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubset(t *testing.T) {
	a := newAssignment("s")
	from := valueid.New[lattice.Set[int]]("s", 1)
	to := valueid.New[lattice.Set[int]]("s", 2)
	c := Subset(from, to)

	ok, err := c.Check(a)
	require.NoError(t, err)
	assert.True(t, ok, "bottom subset bottom holds trivially")

	require.NoError(t, assignment.Set(a, from, lattice.NewSet(1, 2)))

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)

	got, err := assignment.Get(a, to)
	require.NoError(t, err)
	assert.Equal(t, lattice.NewSet(1, 2), got)

	ok, err = c.Check(a)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConstSubset(t *testing.T) {
	reg := lattice.NewRegistry()
	reg.Register("n", lattice.MaxInt())
	a := assignment.New(reg)

	to := valueid.New[int]("n", 1)
	c := ConstSubset(7, to)

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)

	got, err := assignment.Get(a, to)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	ok, err := c.Check(a)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubsetIfElem(t *testing.T) {
	a := newAssignment("s")
	guard := valueid.New[lattice.Set[int]]("s", 1)
	from := valueid.New[lattice.Set[int]]("s", 2)
	to := valueid.New[lattice.Set[int]]("s", 3)
	c := SubsetIfElem(9, guard, from, to)

	require.NoError(t, assignment.Set(a, from, lattice.NewSet(1)))
	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, status, "guard not satisfied yet")

	used, err := c.UsedInputs(a)
	require.NoError(t, err)
	assert.Equal(t, []valueid.ID{guard.Untyped()}, used, "only the guard is used while it fails")

	require.NoError(t, assignment.Set(a, guard, lattice.NewSet(9)))
	status, err = c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)

	got, err := assignment.Get(a, to)
	require.NoError(t, err)
	assert.Equal(t, lattice.NewSet(1), got)

	used, err = c.UsedInputs(a)
	require.NoError(t, err)
	assert.ElementsMatch(t, []valueid.ID{guard.Untyped(), from.Untyped()}, used)
}

func TestSubsetIfBigger(t *testing.T) {
	a := newAssignment("s")
	s := valueid.New[lattice.Set[int]]("s", 1)
	from := valueid.New[lattice.Set[int]]("s", 2)
	to := valueid.New[lattice.Set[int]]("s", 3)
	c := SubsetIfBigger(s, 2, from, to)

	require.NoError(t, assignment.Set(a, s, lattice.NewSet(1, 2)))
	require.NoError(t, assignment.Set(a, from, lattice.NewSet(100)))
	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, status, "size 2 is not > 2")

	require.NoError(t, assignment.Set(a, s, lattice.NewSet(1, 2, 3)))
	status, err = c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)
}

func TestSubsetIfReducedBiggerBoundary(t *testing.T) {
	a := newAssignment("s")
	s := valueid.New[lattice.Set[int]]("s", 1)
	from := valueid.New[lattice.Set[int]]("s", 2)
	to := valueid.New[lattice.Set[int]]("s", 3)
	// |{1,2,3} \ {3}| = 2 elements, threshold n = size-1 = 1: 2 > 1 holds.
	c := SubsetIfReducedBigger(s, 3, 1, from, to)

	require.NoError(t, assignment.Set(a, s, lattice.NewSet(1, 2, 3)))
	require.NoError(t, assignment.Set(a, from, lattice.NewSet(1)))

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)
}

func TestSubsetIfReducedBiggerElementAbsent(t *testing.T) {
	a := newAssignment("s")
	s := valueid.New[lattice.Set[int]]("s", 1)
	from := valueid.New[lattice.Set[int]]("s", 2)
	to := valueid.New[lattice.Set[int]]("s", 3)
	// t is not a member of S, so no reduction happens: |{1,2}| = 2 > 1 holds.
	c := SubsetIfReducedBigger(s, 99, 1, from, to)

	require.NoError(t, assignment.Set(a, s, lattice.NewSet(1, 2)))
	require.NoError(t, assignment.Set(a, from, lattice.NewSet(1)))

	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)
}

func TestSubsetUnary(t *testing.T) {
	a := newAssignment("s")
	from := valueid.New[lattice.Set[int]]("s", 1)
	to := valueid.New[lattice.Set[int]]("s", 2)
	double := func(s lattice.Set[int]) lattice.Set[int] {
		out := make(lattice.Set[int], s.Len())
		for _, x := range s.Elements() {
			out[x*2] = struct{}{}
		}
		return out
	}
	c := SubsetUnary(from, to, double)

	require.NoError(t, assignment.Set(a, from, lattice.NewSet(1, 2)))
	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)

	got, err := assignment.Get(a, to)
	require.NoError(t, err)
	assert.Equal(t, lattice.NewSet(2, 4), got)

	ok, err := c.Check(a)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubsetBinary(t *testing.T) {
	a := newAssignment("s")
	left := valueid.New[lattice.Set[int]]("s", 1)
	right := valueid.New[lattice.Set[int]]("s", 2)
	to := valueid.New[lattice.Set[int]]("s", 3)
	sumCross := func(x, y lattice.Set[int]) lattice.Set[int] {
		out := make(lattice.Set[int], x.Len()*y.Len())
		for _, a := range x.Elements() {
			for _, b := range y.Elements() {
				out[a+b] = struct{}{}
			}
		}
		return out
	}
	c := SubsetBinary(left, right, to, sumCross)

	require.NoError(t, assignment.Set(a, left, lattice.NewSet(1)))
	require.NoError(t, assignment.Set(a, right, lattice.NewSet(2)))
	status, err := c.Update(a)
	require.NoError(t, err)
	assert.Equal(t, Incremented, status)

	got, err := assignment.Get(a, to)
	require.NoError(t, err)
	assert.Equal(t, lattice.NewSet(3), got)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Unchanged", Unchanged.String())
	assert.Equal(t, "Incremented", Incremented.String())
	assert.Equal(t, "Altered", Altered.String())
	assert.Equal(t, "Status(?)", Status(99).String())
}
