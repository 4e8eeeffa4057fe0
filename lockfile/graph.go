package lockfile

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/depwise/whydep/graph"
)

// Graph materializes the resolution graph described by the lockfile.
//
// Every locked package becomes a distribution node; the root's requirements
// and each package's dependencies become edges. Cyclic inputs are rejected:
// a resolution graph is acyclic by construction, so a cycle means the
// lockfile was produced (or edited) incorrectly.
func (l *Lockfile) Graph() (*graph.Graph, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	g := graph.New()
	ids := make(map[string]graph.NodeID, len(l.Packages))

	for _, p := range l.Packages {
		v, err := semver.NewVersion(p.Version)
		if err != nil {
			// Validate has already checked every version.
			return nil, fmt.Errorf("package %s: invalid version %q: %w", p.Name, p.Version, err)
		}
		ids[p.Name] = g.AddDistribution(&graph.Distribution{
			Name:      p.Name,
			Version:   v,
			Installed: p.Installed,
		})
	}

	for _, req := range l.Requires {
		g.AddEdge(graph.RootID, ids[req])
	}
	for _, p := range l.Packages {
		for _, dep := range p.Dependencies {
			g.AddEdge(ids[p.Name], ids[dep])
		}
	}

	if g.HasCycles() {
		cycles := g.FindCycles()
		return nil, fmt.Errorf("%w: %s", ErrCyclicDependencies, describeCycle(g, cycles))
	}

	return g, nil
}

// describeCycle renders the first cycle for the error message.
func describeCycle(g *graph.Graph, cycles [][]graph.NodeID) string {
	if len(cycles) == 0 {
		return "cycle detected"
	}
	var s string
	for i, id := range cycles[0] {
		if i > 0 {
			s += " -> "
		}
		s += g.Node(id).Dist.String()
	}
	return s
}
