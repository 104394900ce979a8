package ecosystem

import "testing"

func TestSetDeadIsMonotonicAndKeepsFirstCause(t *testing.T) {
	o := newOrganism(1, KindDeer, Loc(0, 0), 0)
	if !o.IsAlive() {
		t.Fatal("new organisms start alive")
	}
	o.SetDead(CauseEaten)
	o.SetDead(CauseStarvation)
	if o.IsAlive() {
		t.Fatal("SetDead must be terminal")
	}
	if o.Cause != CauseEaten {
		t.Fatalf("cause = %v, want %v", o.Cause, CauseEaten)
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		parsed, ok := ParseKind(k.String())
		if !ok || parsed != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), parsed, ok)
		}
	}
	if _, ok := ParseKind("wolf"); ok {
		t.Fatal("unknown kinds must not parse")
	}
	if got := Kind(42).String(); got != "unknown" {
		t.Fatalf("out-of-range kind = %q", got)
	}
	if got := CauseOvercrowding.String(); got != "overcrowding" {
		t.Fatalf("cause name = %q", got)
	}
}
