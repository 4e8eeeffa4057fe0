package graph

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// NodeID is a stable handle for a node in a resolution graph. It identifies
// the node itself rather than the package it carries, so two nodes with the
// same name and version (a malformed but representable input) remain
// distinguishable.
type NodeID int

// RootID is the NodeID of the distinguished root node present in every graph.
const RootID NodeID = 0

// Distribution is a package resolved to an exact version.
type Distribution struct {
	// Name is the normalized package name.
	Name string

	// Version is the resolved version.
	Version *semver.Version

	// Installed marks a distribution that is satisfied by an existing
	// installation rather than something the resolution will install.
	// Installed distributions are placeholders and are never eligible
	// targets for provenance queries.
	Installed bool
}

// String renders the distribution as "name==version".
func (d *Distribution) String() string {
	if d.Version == nil {
		return d.Name
	}
	return fmt.Sprintf("%s==%s", d.Name, d.Version)
}

// Node is a single node in a resolution graph: either the root node or a
// resolved distribution.
type Node struct {
	// ID is the node's stable handle within its graph.
	ID NodeID

	// Dist is the distribution carried by this node, or nil for the root.
	Dist *Distribution
}

// IsRoot reports whether this is the distinguished root node.
func (n Node) IsRoot() bool {
	return n.Dist == nil && n.ID == RootID
}

// Stats summarizes a resolution graph.
type Stats struct {
	// Distributions is the number of resolved distributions (root excluded).
	Distributions int

	// DirectDependencies is the number of direct dependencies of the root.
	DirectDependencies int

	// TransitiveDependencies is the number of distributions that are not
	// direct dependencies of the root.
	TransitiveDependencies int

	// MaxDepth is the longest dependency path starting at the root,
	// counted in edges.
	MaxDepth int

	// Installed is the number of already-installed placeholder
	// distributions.
	Installed int
}
