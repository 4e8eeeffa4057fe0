package solver

import (
	"github.com/Masterminds/semver/v3"
)

// State is the solver's live internal state: the incompatibility store, an
// index from package to the incompatibilities mentioning it, and the partial
// solution.
//
// State is not safe for concurrent mutation. Provenance queries take
// read-only access and expect the state to be stable for the duration of
// the call.
type State struct {
	root Package

	// store is append-only; the index holds positions into it.
	store []*Incompatibility

	// byPackage indexes store positions by every package an
	// incompatibility mentions, in recording order.
	byPackage map[Package][]int

	partial *PartialSolution
}

// NewState creates solver state with the given designated root package.
//
// The root is decided immediately: it stands for the user's requirements and
// has no version of its own, but it must be part of the selected-dependencies
// snapshot for derivations leading to it to be viable.
func NewState(root Package) *State {
	s := &State{
		root:      root,
		byPackage: make(map[Package][]int),
		partial:   &PartialSolution{},
	}
	s.partial.Decide(root, nil)
	return s
}

// Root returns the designated root package.
func (s *State) Root() Package {
	return s.root
}

// IsRoot reports whether p is the designated root package.
func (s *State) IsRoot(p Package) bool {
	return p == s.root
}

// AddDependency records that p1 within v1 depends on p2 within v2.
//
// The root package carries no version range; pass a nil v1 when p1 is the
// root.
func (s *State) AddDependency(p1 Package, v1 *semver.Constraints, p2 Package, v2 *semver.Constraints) {
	s.add(&Incompatibility{
		Kind: KindFromDependencyOf,
		P1:   p1,
		V1:   v1,
		P2:   p2,
		V2:   v2,
	}, p1, p2)
}

// AddNoVersions records that no version of p satisfies v.
func (s *State) AddNoVersions(p Package, v *semver.Constraints) {
	s.add(&Incompatibility{Kind: KindNoVersions, P1: p, V1: v}, p)
}

// AddUnavailable records that p's metadata within v could not be obtained.
func (s *State) AddUnavailable(p Package, v *semver.Constraints) {
	s.add(&Incompatibility{Kind: KindUnavailable, P1: p, V1: v}, p)
}

func (s *State) add(inc *Incompatibility, mentioned ...Package) {
	pos := len(s.store)
	s.store = append(s.store, inc)
	for _, p := range mentioned {
		s.byPackage[p] = append(s.byPackage[p], pos)
	}
}

// Incompatibilities returns every incompatibility mentioning p, in recording
// order. The returned records are shared and must not be modified.
func (s *State) Incompatibilities(p Package) []*Incompatibility {
	positions := s.byPackage[p]
	if len(positions) == 0 {
		return nil
	}
	incs := make([]*Incompatibility, len(positions))
	for i, pos := range positions {
		incs[i] = s.store[pos]
	}
	return incs
}

// Len returns the number of recorded incompatibilities.
func (s *State) Len() int {
	return len(s.store)
}

// PartialSolution returns the solver's partial solution.
func (s *State) PartialSolution() *PartialSolution {
	return s.partial
}
