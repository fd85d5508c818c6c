package fixture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/solver"
)

func TestScenario1(t *testing.T) {
	prog, err := Load("../../testdata/scenario1.yaml")
	require.NoError(t, err)
	_, a, constraints, ids, err := Build(prog)
	require.NoError(t, err)

	result, _, err := solver.Solve(context.Background(), constraints, a)
	require.NoError(t, err)

	get := func(name string) lattice.Set[int] {
		v, err := result.GetUntyped(ids[name])
		require.NoError(t, err)
		return v.(lattice.Set[int])
	}

	assert.Equal(t, lattice.NewSet(5, 6), get("v1"))
	assert.Equal(t, lattice.NewSet(5, 6), get("v2"))
	assert.Equal(t, lattice.NewSet(5, 6, 7), get("v3"))
	assert.Equal(t, lattice.Set[int]{}, get("v4"))
	assert.Equal(t, lattice.NewSet(7), get("v5"))
	assert.Equal(t, lattice.NewSet(5, 6, 7), get("v6"))
	assert.Equal(t, lattice.Set[int]{}, get("v7"))
	assert.Equal(t, lattice.NewSet(5, 6, 7), get("v9"))
	assert.Equal(t, lattice.Set[int]{}, get("v10"))
	assert.Equal(t, lattice.NewSet(5, 6, 7), get("v11"))
}

func TestScenario2(t *testing.T) {
	prog, err := Load("../../testdata/scenario2.yaml")
	require.NoError(t, err)
	_, a, constraints, ids, err := Build(prog)
	require.NoError(t, err)

	result, _, err := solver.Solve(context.Background(), constraints, a)
	require.NoError(t, err)

	get := func(name string) lattice.Set[int] {
		v, err := result.GetUntyped(ids[name])
		require.NoError(t, err)
		return v.(lattice.Set[int])
	}

	assert.Equal(t, lattice.NewSet(5), get("v1"))
	assert.Equal(t, lattice.NewSet(6, 7), get("v2"))
	assert.Equal(t, lattice.NewSet(6), get("v3"))
	assert.Equal(t, lattice.NewSet(7, 8), get("v4"))
	assert.Equal(t, lattice.NewSet(11, 12), get("v5"))
}

func TestScenario4(t *testing.T) {
	prog, err := Load("../../testdata/scenario4.yaml")
	require.NoError(t, err)
	_, a, constraints, ids, err := Build(prog)
	require.NoError(t, err)

	result, _, err := solver.Solve(context.Background(), constraints, a)
	require.NoError(t, err)

	get := func(name string) lattice.Pair {
		v, err := result.GetUntyped(ids[name])
		require.NoError(t, err)
		return v.(lattice.Pair)
	}

	assert.Equal(t, lattice.Pair{X: 5, Y: 5}, get("v1"))
	assert.Equal(t, lattice.Pair{X: 5, Y: 8}, get("v2"))
	assert.Equal(t, lattice.Pair{X: 8, Y: 5}, get("v3"))
	assert.Equal(t, lattice.Pair{X: 5, Y: 5}, get("v4"))
}

func TestScenario5Reset(t *testing.T) {
	prog, err := Load("../../testdata/scenario5.yaml")
	require.NoError(t, err)
	_, a, constraints, ids, err := Build(prog)
	require.NoError(t, err)

	result, _, err := solver.Solve(context.Background(), constraints, a)
	require.NoError(t, err)

	get := func(name string) int {
		v, err := result.GetUntyped(ids[name])
		require.NoError(t, err)
		return v.(int)
	}

	assert.Equal(t, 10, get("v1"))
	assert.Equal(t, 10, get("v2"))
	assert.Equal(t, 10, get("v3"))
}

func TestBuildUnknownConstraintType(t *testing.T) {
	p := &Program{
		Variables:   map[string]Kind{"v1": KindIntSet},
		Constraints: []Entry{{Type: "not_a_real_constraint"}},
	}
	_, _, _, _, err := Build(p)
	assert.Error(t, err)
}
