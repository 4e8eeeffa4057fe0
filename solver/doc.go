// Package solver holds the live internal state of the constraint solver
// that provenance queries read.
//
// The solver records every combination of package/version assignments it has
// proven infeasible as an Incompatibility. The kind relevant to provenance is
// KindFromDependencyOf: "p1 within v1 depends on p2 within v2", the logical
// cause of a dependency edge. State keeps the append-only incompatibility
// store, an index from package to the incompatibilities mentioning it, and
// the partial solution from which a selected-dependencies snapshot can be
// extracted.
//
// The index preserves per-package insertion order. Provenance searches try
// candidate requirers in exactly that order, so recording order determines
// which of several valid derivation chains is reported.
package solver
