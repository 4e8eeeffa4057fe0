package graph

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Graph is a finished, read-only-after-construction resolution graph.
//
// Construction is not safe for concurrent use. Once built, any number of
// goroutines may query the graph concurrently as long as none of them keeps
// calling AddDistribution or AddEdge.
type Graph struct {
	nodes []Node

	// deps[id] lists the nodes id depends on, in insertion order.
	deps [][]NodeID

	// dependents[id] lists the nodes that depend on id, in insertion order.
	dependents [][]NodeID
}

// New creates an empty resolution graph containing only the root node.
func New() *Graph {
	return &Graph{
		nodes:      []Node{{ID: RootID}},
		deps:       make([][]NodeID, 1),
		dependents: make([][]NodeID, 1),
	}
}

// AddDistribution adds a distribution node and returns its handle.
func (g *Graph) AddDistribution(d *Distribution) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Dist: d})
	g.deps = append(g.deps, nil)
	g.dependents = append(g.dependents, nil)
	return id
}

// AddEdge records that from depends on to. Edges are stored in both
// directions; insertion order is preserved on each side.
func (g *Graph) AddEdge(from, to NodeID) {
	g.checkID(from)
	g.checkID(to)
	g.deps[from] = append(g.deps[from], to)
	g.dependents[to] = append(g.dependents[to], from)
}

func (g *Graph) checkID(id NodeID) {
	if id < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("graph: node %d is not part of this graph", id))
	}
}

// Len returns the number of nodes, including the root.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node for a handle.
func (g *Graph) Node(id NodeID) Node {
	g.checkID(id)
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order, root first. The returned slice
// is shared with the graph and must not be modified.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Dependencies returns the nodes id depends on, in insertion order.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	g.checkID(id)
	return g.deps[id]
}

// Dependents returns the nodes that depend on id, in insertion order.
func (g *Graph) Dependents(id NodeID) []NodeID {
	g.checkID(id)
	return g.dependents[id]
}

// Find returns the first distribution with the given name, or nil if the
// graph contains none.
func (g *Graph) Find(name string) *Distribution {
	for _, n := range g.nodes {
		if n.Dist != nil && n.Dist.Name == name {
			return n.Dist
		}
	}
	return nil
}

// FindVersion returns the distribution with the given name and version, or
// nil if the graph contains none.
func (g *Graph) FindVersion(name string, version *semver.Version) *Distribution {
	for _, n := range g.nodes {
		if n.Dist != nil && n.Dist.Name == name && n.Dist.Version != nil && n.Dist.Version.Equal(version) {
			return n.Dist
		}
	}
	return nil
}

// Stats computes summary statistics for the graph.
func (g *Graph) Stats() Stats {
	s := Stats{
		Distributions:      len(g.nodes) - 1,
		DirectDependencies: len(g.deps[RootID]),
	}
	s.TransitiveDependencies = s.Distributions - s.DirectDependencies
	if s.TransitiveDependencies < 0 {
		s.TransitiveDependencies = 0
	}
	for _, n := range g.nodes {
		if n.Dist != nil && n.Dist.Installed {
			s.Installed++
		}
	}
	s.MaxDepth = g.maxDepth()
	return s
}

func (g *Graph) maxDepth() int {
	depths := make(map[NodeID]int)
	onPath := make(map[NodeID]bool)
	var maxDepth int

	var dfs func(id NodeID, depth int)
	dfs = func(id NodeID, depth int) {
		// An edge back onto the current DFS path is a cycle back-edge.
		if onPath[id] {
			return
		}
		if existing, ok := depths[id]; ok && existing >= depth {
			return
		}
		depths[id] = depth
		if depth > maxDepth {
			maxDepth = depth
		}

		onPath[id] = true
		for _, dep := range g.deps[id] {
			dfs(dep, depth+1)
		}
		delete(onPath, id)
	}

	dfs(RootID, 0)
	return maxDepth
}

// HasCycles returns true if the graph contains a dependency cycle.
func (g *Graph) HasCycles() bool {
	visited := make(map[NodeID]bool)
	recStack := make(map[NodeID]bool)

	var hasCycle func(id NodeID) bool
	hasCycle = func(id NodeID) bool {
		visited[id] = true
		recStack[id] = true

		for _, dep := range g.deps[id] {
			if !visited[dep] {
				if hasCycle(dep) {
					return true
				}
			} else if recStack[dep] {
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for _, n := range g.nodes {
		if !visited[n.ID] {
			if hasCycle(n.ID) {
				return true
			}
		}
	}

	return false
}

// FindCycles returns every dependency cycle in the graph.
func (g *Graph) FindCycles() [][]NodeID {
	var cycles [][]NodeID
	visited := make(map[NodeID]bool)
	recStack := make(map[NodeID]bool)
	path := make([]NodeID, 0)

	var findCycles func(id NodeID)
	findCycles = func(id NodeID) {
		visited[id] = true
		recStack[id] = true
		path = append(path, id)

		for _, dep := range g.deps[id] {
			if !visited[dep] {
				findCycles(dep)
			} else if recStack[dep] {
				cycleStart := -1
				for i, n := range path {
					if n == dep {
						cycleStart = i
						break
					}
				}
				if cycleStart >= 0 {
					cycle := make([]NodeID, len(path)-cycleStart)
					copy(cycle, path[cycleStart:])
					cycles = append(cycles, cycle)
				}
			}
		}

		path = path[:len(path)-1]
		recStack[id] = false
	}

	for _, n := range g.nodes {
		if !visited[n.ID] {
			findCycles(n.ID)
		}
	}

	return cycles
}
