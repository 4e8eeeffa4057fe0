package graph

import (
	"bytes"
	"fmt"
	"strings"
)

const separatorWidth = 60 // Width of separator lines in text output

// label returns the display name for a node.
func (g *Graph) label(id NodeID) string {
	n := g.nodes[id]
	if n.IsRoot() {
		return "(root)"
	}
	return n.Dist.String()
}

// ToDOT outputs the graph in Graphviz DOT format.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph resolution {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	for _, n := range g.nodes {
		attrs := fmt.Sprintf(`label="%s"`, g.label(n.ID))
		if n.IsRoot() {
			attrs += ", style=bold"
		} else if n.Dist.Installed {
			attrs += ", style=dashed"
		}
		buf.WriteString(fmt.Sprintf("  %q [%s];\n", g.label(n.ID), attrs))
	}

	buf.WriteString("\n")

	for _, n := range g.nodes {
		for _, dep := range g.deps[n.ID] {
			buf.WriteString(fmt.Sprintf("  %q -> %q;\n", g.label(n.ID), g.label(dep)))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	buf.WriteString("Resolution Graph\n")
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	buf.WriteString(fmt.Sprintf("Distributions: %d\n", stats.Distributions))
	buf.WriteString(fmt.Sprintf("Direct dependencies: %d\n", stats.DirectDependencies))
	buf.WriteString(fmt.Sprintf("Transitive dependencies: %d\n", stats.TransitiveDependencies))
	buf.WriteString(fmt.Sprintf("Max depth: %d\n", stats.MaxDepth))
	if stats.Installed > 0 {
		buf.WriteString(fmt.Sprintf("Already installed: %d\n", stats.Installed))
	}
	buf.WriteString("\nDependency Tree:\n")

	visited := make(map[NodeID]bool)
	g.printTree(&buf, RootID, "", true, visited)

	return buf.String()
}

func (g *Graph) printTree(buf *bytes.Buffer, id NodeID, prefix string, isLast bool, visited map[NodeID]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if id == RootID {
		buf.WriteString(g.label(id))
	} else {
		buf.WriteString(prefix + connector + g.label(id))
	}

	if n := g.nodes[id]; n.Dist != nil && n.Dist.Installed {
		buf.WriteString(" (installed)")
	}

	if visited[id] {
		buf.WriteString(" (circular)\n")
		return
	}
	buf.WriteString("\n")

	visited[id] = true
	defer func() { visited[id] = false }()

	deps := g.deps[id]
	for i, dep := range deps {
		isLastChild := i == len(deps)-1
		childPrefix := prefix
		if id != RootID {
			if isLast {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
		}
		g.printTree(buf, dep, childPrefix, isLastChild, visited)
	}
}
