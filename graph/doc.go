// Package graph provides the finished resolution graph consumed by
// provenance queries.
//
// A Graph is a directed graph with exactly one distinguished root node plus
// one node per resolved distribution. Edges run from a dependent to each of
// its dependencies, and every edge is recorded in both directions so the
// graph can be walked dependency-ward or dependent-ward.
//
// # Building a Graph
//
// Graphs are usually materialized from a lockfile:
//
//	lf, _ := lockfile.ReadFile("packages.lock")
//	g, _ := lf.Graph()
//
// They can also be assembled directly:
//
//	g := graph.New()
//	a := g.AddDistribution(&graph.Distribution{Name: "a", Version: semver.MustParse("1.0.0")})
//	g.AddEdge(graph.RootID, a)
//
// # Node identity
//
// Nodes are addressed by NodeID, a stable integer handle. Queries that must
// visit each node at most once key their seen-sets by NodeID rather than by
// name/version equality, so even a malformed graph in which the same
// name/version pair appears twice is still traversed safely.
package graph
