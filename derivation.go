// Package whydep explains why a package-version is part of a resolution.
//
// Given that a specific distribution was selected during dependency
// resolution, whydep reconstructs the ordered chain of packages that caused
// it to be required, from a top-level requirement down to (but excluding)
// the package itself. Chains can be derived from two sources: a finished
// resolution graph (FromGraph) and the live internal state of a constraint
// solver mid-search (FromState). Both produce the same DerivationChain
// value type.
package whydep

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/depwise/whydep/graph"
	"github.com/depwise/whydep/solver"
)

// DerivationStep is one (package, version) entry in an ancestry chain.
// It is immutable once constructed.
type DerivationStep struct {
	// Name is the package name.
	Name string

	// Version is the selected version of the package.
	Version *semver.Version
}

// NewDerivationStep creates a step from a package name and version.
func NewDerivationStep(name string, version *semver.Version) DerivationStep {
	return DerivationStep{Name: name, Version: version}
}

// String renders the step as "name==version".
func (s DerivationStep) String() string {
	return fmt.Sprintf("%s==%s", s.Name, s.Version)
}

// Equal reports structural equality.
func (s DerivationStep) Equal(o DerivationStep) bool {
	if s.Name != o.Name {
		return false
	}
	if s.Version == nil || o.Version == nil {
		return s.Version == o.Version
	}
	return s.Version.Equal(o.Version)
}

// DerivationChain is the ordered ancestry of a package: the packages that
// caused it to be required, root-ward end first. Neither the root nor the
// package itself is included; the empty chain means the package is a direct
// requirement of the root.
//
// A chain is immutable once constructed. The zero value is the empty chain.
type DerivationChain struct {
	steps []DerivationStep
}

// NewDerivationChain builds a chain from an ordered sequence of steps.
// The steps are copied; the caller keeps ownership of the input.
func NewDerivationChain(steps ...DerivationStep) DerivationChain {
	if len(steps) == 0 {
		return DerivationChain{}
	}
	return DerivationChain{steps: slices.Clone(steps)}
}

// Len returns the number of steps in the chain.
func (c DerivationChain) Len() int {
	return len(c.steps)
}

// IsEmpty reports whether the chain has no steps.
func (c DerivationChain) IsEmpty() bool {
	return len(c.steps) == 0
}

// All returns a restartable iterator over the steps, root-ward end first.
func (c DerivationChain) All() iter.Seq[DerivationStep] {
	return func(yield func(DerivationStep) bool) {
		for _, s := range c.steps {
			if !yield(s) {
				return
			}
		}
	}
}

// Steps returns an owned copy of the steps, root-ward end first.
func (c DerivationChain) Steps() []DerivationStep {
	return slices.Clone(c.steps)
}

// Equal reports structural equality: same steps in the same order.
func (c DerivationChain) Equal(o DerivationChain) bool {
	return slices.EqualFunc(c.steps, o.steps, DerivationStep.Equal)
}

// String renders the chain as its steps joined by " -> ". The empty chain
// renders as the empty string.
func (c DerivationChain) String() string {
	var b strings.Builder
	for i, s := range c.steps {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// FromGraph computes a derivation chain from a finished resolution graph.
//
// target must be the distribution value carried by the graph itself (as
// returned by Find or FindVersion); nodes are matched by pointer identity.
// Only distributions the resolution will install are eligible targets;
// already-installed placeholders are not.
//
// The returned chain is the shortest ancestry path from the root to the
// target's immediate parent, found by breadth-first search over reverse
// dependency edges. Among equal-length paths, whichever the search reaches
// first wins; callers may rely on the chain's length and validity but not
// on which of several shortest chains is returned.
//
// Every distribution in a well-formed graph is locatable and root-reachable.
// FromGraph panics if target is not part of g or cannot reach the root:
// both indicate caller misuse, not a legitimate "no chain" outcome.
func FromGraph(g *graph.Graph, target *graph.Distribution) DerivationChain {
	targetID := graph.NodeID(-1)
	for _, n := range g.Nodes() {
		if n.Dist != nil && !n.Dist.Installed && n.Dist == target {
			targetID = n.ID
			break
		}
	}
	if targetID < 0 {
		panic(fmt.Sprintf("whydep: distribution %s is not part of the resolution graph", target))
	}

	type item struct {
		id   graph.NodeID
		path []DerivationStep
	}

	queue := []item{{id: targetID}}
	seen := make(map[graph.NodeID]bool)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur.id] {
			continue
		}
		seen[cur.id] = true

		n := g.Node(cur.id)
		if n.IsRoot() {
			// The path was assembled target-first; flip it root-ward and
			// drop the target's own step.
			path := slices.Clone(cur.path)
			slices.Reverse(path)
			path = path[:len(path)-1]
			return DerivationChain{steps: path}
		}

		path := append(slices.Clone(cur.path), DerivationStep{Name: n.Dist.Name, Version: n.Dist.Version})
		for _, dependent := range g.Dependents(cur.id) {
			queue = append(queue, item{id: dependent, path: path})
		}
	}

	panic(fmt.Sprintf("whydep: distribution %s cannot reach the root of the resolution graph", target))
}

// FromState computes a derivation chain from live solver state.
//
// It reconstructs an ancestry path for pkg at version by backtracking over
// the "from dependency of" incompatibilities the solver has recorded:
// each such record names a candidate requirer, and a candidate is viable
// only if the partial solution has actually selected a version for it.
// Candidates are tried in recording order and the first path that reaches
// the root wins, so the result is a valid chain but not necessarily the
// shortest one.
//
// Steps for synthetic (nameless) packages are dropped from the output.
//
// The second return value is false when the recorded derivation history does
// not connect pkg at version to the root. That is a normal outcome for
// packages the solver has considered but not integrated into the solution,
// not a fault.
func FromState(pkg solver.Package, version *semver.Version, st *solver.State) (DerivationChain, bool) {
	solution := st.PartialSolution().ExtractSolution()

	type hop struct {
		pkg     solver.Package
		version *semver.Version
	}

	// path is assembled target-first: each level appends its requirer.
	var path []hop

	var fill func(p solver.Package, v *semver.Version) bool
	fill = func(p solver.Package, v *semver.Version) bool {
		if st.IsRoot(p) {
			return true
		}

		for _, inc := range st.Incompatibilities(p) {
			if inc.Kind != solver.KindFromDependencyOf {
				continue
			}
			// The record explains p-at-v only if p is the dependency side
			// and v falls inside the recorded range.
			if inc.P2 != p || inc.V2 == nil || !inc.V2.Check(v) {
				continue
			}
			// A requirer that was never selected cannot be the true cause.
			selected, ok := solution[inc.P1]
			if !ok {
				continue
			}

			path = append(path, hop{pkg: inc.P1, version: selected})
			if fill(inc.P1, selected) {
				return true
			}
			path = path[:len(path)-1]
		}

		return false
	}

	if !fill(pkg, version) {
		return DerivationChain{}, false
	}

	steps := make([]DerivationStep, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].pkg.Name == "" {
			// Synthetic packages (the root included) have no name to show.
			continue
		}
		steps = append(steps, DerivationStep{Name: path[i].pkg.Name, Version: path[i].version})
	}

	return DerivationChain{steps: steps}, true
}
