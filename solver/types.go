package solver

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Package identifies a package known to the solver.
//
// Packages are compared structurally; they are valid map keys. A Package with
// an empty Name is synthetic: something the solver introduced internally
// (the root itself, or expansion artifacts such as extras) that never shows
// up in user-facing output.
type Package struct {
	// Name is the normalized package name, or "" for synthetic packages.
	Name string

	// Root marks the distinguished package standing for the user's direct
	// requirements. The root is nameless: it is not an installable package
	// and carries no version of its own.
	Root bool
}

// RootPackage returns the designated root package.
func RootPackage() Package {
	return Package{Root: true}
}

// Named returns a regular package with the given name.
func Named(name string) Package {
	return Package{Name: name}
}

// String renders the package for diagnostics.
func (p Package) String() string {
	switch {
	case p.Root:
		return "(root)"
	case p.Name == "":
		return "(synthetic)"
	default:
		return p.Name
	}
}

// Kind classifies an incompatibility record.
type Kind int

const (
	// KindNoVersions records that no version of P1 satisfies V1.
	KindNoVersions Kind = iota

	// KindUnavailable records that P1's metadata within V1 could not be
	// obtained.
	KindUnavailable

	// KindFromDependencyOf records that P1 within V1 depends on P2 within
	// V2: any pairing of P1 in V1 with P2 outside V2 is infeasible.
	KindFromDependencyOf
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNoVersions:
		return "no-versions"
	case KindUnavailable:
		return "unavailable"
	case KindFromDependencyOf:
		return "from-dependency-of"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Incompatibility is a combination of package/version assignments the solver
// has proven infeasible.
//
// P2/V2 are set only for KindFromDependencyOf. Incompatibilities are
// immutable once recorded.
type Incompatibility struct {
	Kind Kind
	P1   Package
	V1   *semver.Constraints
	P2   Package
	V2   *semver.Constraints
}

// String renders the incompatibility for diagnostics.
func (i *Incompatibility) String() string {
	switch i.Kind {
	case KindFromDependencyOf:
		return fmt.Sprintf("%s (%s) depends on %s (%s)", i.P1, constraintString(i.V1), i.P2, constraintString(i.V2))
	case KindNoVersions:
		return fmt.Sprintf("no versions of %s satisfy %s", i.P1, constraintString(i.V1))
	case KindUnavailable:
		return fmt.Sprintf("%s (%s) is unavailable", i.P1, constraintString(i.V1))
	default:
		return fmt.Sprintf("%s incompatibility on %s", i.Kind, i.P1)
	}
}

// constraintString tolerates the root's missing version range.
func constraintString(c *semver.Constraints) string {
	if c == nil {
		return "*"
	}
	return c.String()
}
