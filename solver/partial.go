package solver

import (
	"github.com/Masterminds/semver/v3"
)

// SelectedDependencies is a completed package-to-version mapping extracted
// from a partial solution. It is a snapshot: mutating the solver afterwards
// does not change it.
type SelectedDependencies map[Package]*semver.Version

// PartialSolution is the solver's ordered sequence of assignments: decisions
// (a package pinned to an exact version) interleaved with derivations
// (a package narrowed to a range as a consequence of earlier assignments).
type PartialSolution struct {
	assignments []Assignment
}

// Assignment is one entry in the partial solution.
type Assignment struct {
	Package Package

	// Version is set for decisions.
	Version *semver.Version

	// Constraint is set for derivations.
	Constraint *semver.Constraints

	// Decision distinguishes decisions from derivations.
	Decision bool
}

// Decide appends a decision pinning p to v.
func (ps *PartialSolution) Decide(p Package, v *semver.Version) {
	ps.assignments = append(ps.assignments, Assignment{Package: p, Version: v, Decision: true})
}

// Derive appends a derivation narrowing p to c.
func (ps *PartialSolution) Derive(p Package, c *semver.Constraints) {
	ps.assignments = append(ps.assignments, Assignment{Package: p, Constraint: c})
}

// Assignments returns the assignments in order. The returned slice is shared
// and must not be modified.
func (ps *PartialSolution) Assignments() []Assignment {
	return ps.assignments
}

// ExtractSolution returns the selected version of every decided package.
//
// Packages the solver has only derived ranges for (or never considered) are
// absent; lookups against an incomplete solution simply miss.
func (ps *PartialSolution) ExtractSolution() SelectedDependencies {
	selected := make(SelectedDependencies)
	for _, a := range ps.assignments {
		if a.Decision {
			selected[a.Package] = a.Version
		}
	}
	return selected
}
