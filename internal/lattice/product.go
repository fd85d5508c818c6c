package lattice

// Product2 is the canonical product lattice named in spec §3: component-wise
// join and component-wise order over two (possibly different) component
// lattices.
type Product2Value struct {
	A, B Value
}

type product2Lattice struct {
	a, b L
}

// Product2 builds the product of lattices a and b.
func Product2(a, b L) L { return product2Lattice{a: a, b: b} }

func (p product2Lattice) Bottom() Value {
	return Product2Value{A: p.a.Bottom(), B: p.b.Bottom()}
}

func (p product2Lattice) Join(dst, src Value) (Value, Change) {
	d := dst.(Product2Value)
	s := src.(Product2Value)
	newA, changedA := p.a.Join(d.A, s.A)
	newB, changedB := p.b.Join(d.B, s.B)
	if changedA == Unchanged && changedB == Unchanged {
		return d, Unchanged
	}
	return Product2Value{A: newA, B: newB}, Grew
}

func (p product2Lattice) Less(a, b Value) bool {
	x := a.(Product2Value)
	y := b.(Product2Value)
	return p.a.Less(x.A, y.A) && p.b.Less(x.B, y.B)
}

func (p product2Lattice) Equal(a, b Value) bool {
	x := a.(Product2Value)
	y := b.(Product2Value)
	return p.a.Equal(x.A, y.A) && p.b.Equal(x.B, y.B)
}
