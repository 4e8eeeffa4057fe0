package whydep

import (
	"context"
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/depwise/whydep/graph"
)

func TestExplain(t *testing.T) {
	g, _ := createLinearGraph()

	tests := []struct {
		name string
		want string
	}{
		{"c", "a==1.0.0 -> b==2.0.0"},
		{"b", "a==1.0.0"},
		{"a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := Explain(g, tt.name)
			if err != nil {
				t.Fatalf("Explain(%s) returned error: %v", tt.name, err)
			}
			if got := chain.String(); got != tt.want {
				t.Errorf("Explain(%s) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestExplain_UnknownDistribution(t *testing.T) {
	g, _ := createLinearGraph()

	_, err := Explain(g, "nope")
	if !errors.Is(err, ErrUnknownDistribution) {
		t.Errorf("Explain(nope) error = %v, want ErrUnknownDistribution", err)
	}
}

func TestExplain_InstalledPlaceholder(t *testing.T) {
	g := graph.New()
	id := g.AddDistribution(&graph.Distribution{Name: "a", Version: semver.MustParse("1.0.0"), Installed: true})
	g.AddEdge(graph.RootID, id)

	_, err := Explain(g, "a")
	if !errors.Is(err, ErrNotInstallable) {
		t.Errorf("Explain(a) error = %v, want ErrNotInstallable", err)
	}
}

func TestExplainAll(t *testing.T) {
	g, dists := createLinearGraph()
	targets := []*graph.Distribution{dists["a"], dists["b"], dists["c"]}

	chains, err := ExplainAll(context.Background(), g, targets, WithConcurrency(2))
	if err != nil {
		t.Fatalf("ExplainAll returned error: %v", err)
	}
	if len(chains) != len(targets) {
		t.Fatalf("ExplainAll returned %d chains, want %d", len(chains), len(targets))
	}

	want := []string{"", "a==1.0.0", "a==1.0.0 -> b==2.0.0"}
	for i, w := range want {
		if got := chains[i].String(); got != w {
			t.Errorf("chain[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestExplainAll_CancelledContext(t *testing.T) {
	g, dists := createLinearGraph()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExplainAll(ctx, g, []*graph.Distribution{dists["a"]})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ExplainAll error = %v, want context.Canceled", err)
	}
}

func TestWithConcurrency_Invalid(t *testing.T) {
	g, _ := createLinearGraph()

	if _, err := Explain(g, "a", WithConcurrency(0)); err == nil {
		t.Error("WithConcurrency(0) should be rejected")
	}
}
