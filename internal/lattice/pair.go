package lattice

import "math"

// Pair is the "growing-pair" lattice from spec §3's test suite: two ints
// joined component-wise by minimum, ordered component-wise by ≥. This is a
// deliberately inverted order — smaller numbers are "higher" in the
// lattice — included because the test corpus exercises a user-defined
// lattice whose join is not a natural union/max, to prove the solver core
// doesn't assume anything about what "grow" means beyond the L contract.
type Pair struct {
	X, Y int
}

type pairLattice struct{}

// GrowingPair returns the growing-pair lattice described above.
func GrowingPair() L { return pairLattice{} }

// pairBottom sits below every finite pair under the ≥ order, i.e. it is
// componentwise the largest possible int.
var pairBottom = Pair{X: math.MaxInt, Y: math.MaxInt}

func (pairLattice) Bottom() Value { return pairBottom }

func (pairLattice) Join(dst, src Value) (Value, Change) {
	d := dst.(Pair)
	s := src.(Pair)
	out := Pair{X: min(d.X, s.X), Y: min(d.Y, s.Y)}
	if out == d {
		return d, Unchanged
	}
	return out, Grew
}

// Less implements the lattice's order: a ⊑ b iff a ≥ b componentwise.
func (pairLattice) Less(a, b Value) bool {
	x := a.(Pair)
	y := b.(Pair)
	return x.X >= y.X && x.Y >= y.Y
}

func (pairLattice) Equal(a, b Value) bool {
	return a.(Pair) == b.(Pair)
}
