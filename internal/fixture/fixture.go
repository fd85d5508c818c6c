// Package fixture loads the YAML "programs" cmd/cba solves: a declared set
// of variables over one of a handful of lattices, plus a list of canned
// constraints wiring them together. It exists so the CLI and the package
// tests can share one definition of each end-to-end scenario from spec.md §8
// instead of re-typing the constraint graph in both places.
//
// The canned constraint shapes (internal/constraint) are expressible here,
// plus the worked-example Increment (type "increment", which gives scenario 5
// a YAML form). The other worked-example constraints in
// internal/constraint/examples (Collect, ElemIf) take a ValueID or a body
// variable as a guard/target in a
// way a flat YAML schema can't name generically, so scenario 6 stays a
// Go-constructed fixture in the solver tests rather than a testdata file.
package fixture

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/constraint/examples"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

// Kind names a lattice a fixture variable can be declared over.
type Kind string

const (
	KindIntSet     Kind = "int_set"
	KindMaxInt     Kind = "maxint"
	KindGrowingPair Kind = "growing_pair"
)

// Func names a built-in transfer function usable by subset_unary/
// subset_binary. Arbitrary lambdas can't round-trip through YAML, so the
// set of available transfers is closed; add to builtinUnary/builtinBinary
// below to extend it.
type Func string

const (
	FuncIncrement Func = "increment" // λs. {x+1 | x∈s}
	FuncSumCross  Func = "sum_cross" // λ(a,b). {x+y | x∈a, y∈b}
)

var builtinUnary = map[Func]func(lattice.Set[int]) lattice.Set[int]{
	FuncIncrement: func(s lattice.Set[int]) lattice.Set[int] {
		out := make(lattice.Set[int], s.Len())
		for _, x := range s.Elements() {
			out[x+1] = struct{}{}
		}
		return out
	},
}

var builtinBinary = map[Func]func(lattice.Set[int], lattice.Set[int]) lattice.Set[int]{
	FuncSumCross: func(a, b lattice.Set[int]) lattice.Set[int] {
		out := make(lattice.Set[int], a.Len()*b.Len())
		for _, x := range a.Elements() {
			for _, y := range b.Elements() {
				out[x+y] = struct{}{}
			}
		}
		return out
	},
}

// Pair mirrors lattice.Pair with YAML tags; lattice.Pair itself carries none.
type Pair struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Entry is one constraint in a Program. Exactly the fields relevant to Type
// are meaningful; the rest are ignored, matching the teacher's tolerant YAML
// decoding style (unknown/unused fields are not an error).
type Entry struct {
	Type string `yaml:"type"`

	Value  int    `yaml:"value"`
	Remove *int   `yaml:"remove"`
	N      int    `yaml:"n"`
	Func   Func   `yaml:"func"`
	Pair   Pair   `yaml:"pair"`
	Set    string `yaml:"set"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
}

// Program is the root of a fixture YAML file.
type Program struct {
	Description string          `yaml:"description"`
	Variables   map[string]Kind `yaml:"variables"`
	Constraints []Entry         `yaml:"constraints"`
}

// Load parses a fixture file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: failed to read %s: %w", path, err)
	}
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("fixture: failed to parse %s: %w", path, err)
	}
	return &p, nil
}

// Build compiles a Program into a lattice registry, a fresh Assignment, and
// the constraint set ready to pass to solver.Solve. Variable names become
// valueid.Tag "var" IDs numbered in sorted order of the names in
// Variables, so output is stable across runs of the same file.
func Build(p *Program) (*lattice.Registry, *assignment.Assignment, []constraint.Constraint, map[string]valueid.ID, error) {
	reg := lattice.NewRegistry()
	const tag valueid.Tag = "var"

	names := make([]string, 0, len(p.Variables))
	for name := range p.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	ids := make(map[string]valueid.ID, len(names))
	kinds := make(map[string]Kind, len(names))
	for i, name := range names {
		ids[name] = valueid.Untyped(tag, i)
		kinds[name] = p.Variables[name]
	}
	reg.Register(tag, soleLatticeFor(kinds))

	a := assignment.New(reg)

	intSet := func(name string) valueid.Typed[lattice.Set[int]] {
		return valueid.FromID[lattice.Set[int]](ids[name])
	}
	maxInt := func(name string) valueid.Typed[int] {
		return valueid.FromID[int](ids[name])
	}
	pairVar := func(name string) valueid.Typed[lattice.Pair] {
		return valueid.FromID[lattice.Pair](ids[name])
	}

	cs := make([]constraint.Constraint, 0, len(p.Constraints))
	for _, e := range p.Constraints {
		var c constraint.Constraint
		switch e.Type {
		case "elem":
			c = constraint.Elem(e.Value, intSet(e.Set))
		case "subset":
			switch kinds[e.From] {
			case KindMaxInt:
				c = constraint.Subset(maxInt(e.From), maxInt(e.To))
			case KindGrowingPair:
				c = constraint.Subset(pairVar(e.From), pairVar(e.To))
			default:
				c = constraint.Subset(intSet(e.From), intSet(e.To))
			}
		case "const_pair":
			c = constraint.ConstSubset(lattice.Pair{X: e.Pair.X, Y: e.Pair.Y}, pairVar(e.To))
		case "subset_if_elem":
			c = constraint.SubsetIfElem(e.Value, intSet(e.Set), intSet(e.From), intSet(e.To))
		case "subset_if_bigger":
			c = constraint.SubsetIfBigger(intSet(e.Set), e.N, intSet(e.From), intSet(e.To))
		case "subset_if_reduced_bigger":
			if e.Remove == nil {
				return nil, nil, nil, nil, fmt.Errorf("fixture: subset_if_reduced_bigger requires remove")
			}
			c = constraint.SubsetIfReducedBigger(intSet(e.Set), *e.Remove, e.N, intSet(e.From), intSet(e.To))
		case "subset_unary":
			f, ok := builtinUnary[e.Func]
			if !ok {
				return nil, nil, nil, nil, fmt.Errorf("fixture: unknown unary func %q", e.Func)
			}
			c = constraint.SubsetUnary(intSet(e.From), intSet(e.To), f)
		case "subset_binary":
			f, ok := builtinBinary[e.Func]
			if !ok {
				return nil, nil, nil, nil, fmt.Errorf("fixture: unknown binary func %q", e.Func)
			}
			c = constraint.SubsetBinary(intSet(e.Left), intSet(e.Right), intSet(e.To), f)
		case "increment":
			c = examples.Increment(maxInt(e.From), maxInt(e.To), e.N)
		default:
			return nil, nil, nil, nil, fmt.Errorf("fixture: unknown constraint type %q", e.Type)
		}
		cs = append(cs, c)
	}

	return reg, a, cs, ids, nil
}

// soleLatticeFor dispatches to a single lattice.L for the "var" tag, since
// this package always registers one lattice per tag: a fixture file must
// use exactly one variable Kind throughout. Mixed-kind fixtures are rejected.
func soleLatticeFor(kinds map[string]Kind) lattice.L {
	seen := make(map[Kind]bool)
	for _, k := range kinds {
		seen[k] = true
	}
	switch {
	case len(seen) == 0:
		return lattice.Powerset[int]()
	case len(seen) == 1:
		for k := range seen {
			return latticeFor(k)
		}
	}
	panic("fixture: mixed variable kinds in one program are not supported")
}

func latticeFor(k Kind) lattice.L {
	switch k {
	case KindMaxInt:
		return lattice.MaxInt()
	case KindGrowingPair:
		return lattice.GrowingPair()
	default:
		return lattice.Powerset[int]()
	}
}

