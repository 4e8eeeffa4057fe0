package solver

import (
	"testing"

	"github.com/Masterminds/semver/v3"
)

func mustConstraint(t *testing.T, s string) *semver.Constraints {
	t.Helper()
	c, err := semver.NewConstraint(s)
	if err != nil {
		t.Fatalf("invalid constraint %q: %v", s, err)
	}
	return c
}

func TestPackage_String(t *testing.T) {
	tests := []struct {
		pkg  Package
		want string
	}{
		{RootPackage(), "(root)"},
		{Named("requests"), "requests"},
		{Package{}, "(synthetic)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.pkg.String(); got != tt.want {
				t.Errorf("Package.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_IsRoot(t *testing.T) {
	root := RootPackage()
	st := NewState(root)

	if !st.IsRoot(root) {
		t.Error("IsRoot(root) should be true")
	}
	if st.IsRoot(Named("a")) {
		t.Error("IsRoot(a) should be false")
	}
	if st.IsRoot(Package{}) {
		t.Error("IsRoot(synthetic) should be false")
	}
}

func TestState_IndexInsertionOrder(t *testing.T) {
	root := RootPackage()
	a := Named("a")
	b := Named("b")

	st := NewState(root)
	st.AddDependency(a, mustConstraint(t, "1.0.0"), b, mustConstraint(t, ">=1.0.0"))
	st.AddNoVersions(b, mustConstraint(t, ">=9.0.0"))
	st.AddDependency(root, nil, b, mustConstraint(t, ">=1.0.0"))

	incs := st.Incompatibilities(b)
	if len(incs) != 3 {
		t.Fatalf("expected 3 incompatibilities mentioning b, got %d", len(incs))
	}
	if incs[0].Kind != KindFromDependencyOf || incs[0].P1 != a {
		t.Errorf("first record should be a's dependency, got %s", incs[0])
	}
	if incs[1].Kind != KindNoVersions {
		t.Errorf("second record should be no-versions, got %s", incs[1])
	}
	if incs[2].Kind != KindFromDependencyOf || incs[2].P1 != root {
		t.Errorf("third record should be the root's dependency, got %s", incs[2])
	}
}

func TestState_IndexesBothSides(t *testing.T) {
	st := NewState(RootPackage())
	a := Named("a")
	b := Named("b")
	st.AddDependency(a, mustConstraint(t, "1.0.0"), b, mustConstraint(t, ">=1.0.0"))

	if got := len(st.Incompatibilities(a)); got != 1 {
		t.Errorf("a should be indexed once, got %d", got)
	}
	if got := len(st.Incompatibilities(b)); got != 1 {
		t.Errorf("b should be indexed once, got %d", got)
	}
	if got := len(st.Incompatibilities(Named("c"))); got != 0 {
		t.Errorf("c should not be indexed, got %d", got)
	}
	if st.Len() != 1 {
		t.Errorf("store should hold 1 record, got %d", st.Len())
	}
}

func TestPartialSolution_ExtractSolution(t *testing.T) {
	root := RootPackage()
	a := Named("a")
	b := Named("b")
	c := Named("c")

	st := NewState(root)
	ps := st.PartialSolution()
	ps.Decide(a, semver.MustParse("1.0.0"))
	ps.Derive(b, mustConstraint(t, ">=2.0.0"))
	ps.Decide(c, semver.MustParse("3.0.0"))

	solution := ps.ExtractSolution()

	if _, ok := solution[root]; !ok {
		t.Error("the root should be part of the solution")
	}
	if v := solution[a]; v == nil || !v.Equal(semver.MustParse("1.0.0")) {
		t.Errorf("solution[a] = %v, want 1.0.0", v)
	}
	if v := solution[c]; v == nil || !v.Equal(semver.MustParse("3.0.0")) {
		t.Errorf("solution[c] = %v, want 3.0.0", v)
	}
	if _, ok := solution[b]; ok {
		t.Error("derived-only packages must not be part of the solution")
	}
}

func TestPartialSolution_SnapshotIsStable(t *testing.T) {
	st := NewState(RootPackage())
	a := Named("a")
	st.PartialSolution().Decide(a, semver.MustParse("1.0.0"))

	solution := st.PartialSolution().ExtractSolution()
	st.PartialSolution().Decide(Named("b"), semver.MustParse("2.0.0"))

	if _, ok := solution[Named("b")]; ok {
		t.Error("the extracted solution must be a snapshot, not a live view")
	}
}

func TestIncompatibility_String(t *testing.T) {
	a := Named("a")
	b := Named("b")

	tests := []struct {
		inc  *Incompatibility
		want string
	}{
		{
			&Incompatibility{Kind: KindFromDependencyOf, P1: a, V1: mustConstraint(t, "1.0.0"), P2: b, V2: mustConstraint(t, ">=2.0.0")},
			"a (1.0.0) depends on b (>=2.0.0)",
		},
		{
			&Incompatibility{Kind: KindFromDependencyOf, P1: RootPackage(), P2: b, V2: mustConstraint(t, ">=2.0.0")},
			"(root) (*) depends on b (>=2.0.0)",
		},
		{
			&Incompatibility{Kind: KindNoVersions, P1: a, V1: mustConstraint(t, ">=9.0.0")},
			"no versions of a satisfy >=9.0.0",
		},
		{
			&Incompatibility{Kind: KindUnavailable, P1: a, V1: mustConstraint(t, "<1.0.0")},
			"a (<1.0.0) is unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.inc.String(); got != tt.want {
				t.Errorf("Incompatibility.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
