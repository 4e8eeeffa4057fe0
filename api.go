package whydep

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/depwise/whydep/graph"
)

// Explain returns the derivation chain for the named package in a finished
// resolution graph.
//
// It is a convenience wrapper around FromGraph for callers that hold a name
// rather than a distribution reference. An empty chain means the package is
// a direct requirement of the root.
func Explain(g *graph.Graph, name string, opts ...Option) (DerivationChain, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return DerivationChain{}, err
	}

	dist := g.Find(name)
	if dist == nil {
		return DerivationChain{}, fmt.Errorf("%w: %s", ErrUnknownDistribution, name)
	}
	if dist.Installed {
		return DerivationChain{}, fmt.Errorf("%w: %s", ErrNotInstallable, name)
	}

	chain := FromGraph(g, dist)
	cfg.log().Debug("explained distribution",
		"name", dist.Name,
		"version", dist.Version,
		"chain", chain.String(),
		"steps", chain.Len(),
	)
	return chain, nil
}

// ExplainAll computes derivation chains for several distributions
// concurrently. The result is index-aligned with targets.
//
// The graph is only read, so concurrent queries are safe as long as the
// caller does not mutate it for the duration of the call. Each target must
// be locatable in g; like FromGraph, an unlocatable target is caller misuse
// and panics.
func ExplainAll(ctx context.Context, g *graph.Graph, targets []*graph.Distribution, opts ...Option) ([]DerivationChain, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	chains := make([]DerivationChain, len(targets))

	eg, ctx := errgroup.WithContext(ctx)
	if cfg.concurrency > 0 {
		eg.SetLimit(cfg.concurrency)
	}
	for i, target := range targets {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chains[i] = FromGraph(g, target)
			cfg.log().Debug("explained distribution",
				"name", target.Name,
				"version", target.Version,
				"steps", chains[i].Len(),
			)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return chains, nil
}
