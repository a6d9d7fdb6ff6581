package calyx_test

import (
	"testing"

	calyx "github.com/calyxir/calyx-sub005"
	"github.com/calyxir/calyx-sub005/lib"
)

// driver returns a primitive permanently driving n, used to provoke
// wiring conflicts.
func driver(n int64) *calyx.Component {
	return lib.Const(8, n)
}

func conflictComp(t *testing.T, a, b int64) *calyx.Component {
	t.Helper()
	c, err := calyx.NewBuilder("m", "", "out[8]").
		Instance("c1", driver(a)).
		Instance("c2", driver(b)).
		Instance("w", lib.Wire(8)).
		Connect("c1.out", "w.in").
		Connect("c2.out", "w.in").
		Connect("w.out", "output.out").
		Control(calyx.Enable("c1", "c2", "w")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestEval_wiringConflict(t *testing.T) {
	c := conflictComp(t, 5, 7)
	_, err := calyx.Compute(c, nil, nil, nil)
	if err == nil {
		t.Fatal("expected wiring conflict")
	}
	if !calyx.IsWiringConflict(err) {
		t.Fatalf("expected wiring conflict, got %v", err)
	}
}

func TestEval_sameValueNoConflict(t *testing.T) {
	c := conflictComp(t, 5, 5)
	res, err := calyx.Compute(c, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := res.Outputs["out"].Observed(); !ok || n != 5 {
		t.Fatalf("out = %v, expected 5", res.Outputs["out"])
	}
}

// succ emits its input plus one, driving 0 when undriven. Fed back
// onto itself it never stabilizes.
func succ() *calyx.Component {
	return &calyx.Component{
		Name: "succ",
		In:   []calyx.Port{{Name: "in", Width: 8}},
		Out:  []calyx.Port{{Name: "out", Width: 8}},
		Comb: func(in map[string]calyx.Value, _ *calyx.Memory) (map[string]calyx.Value, error) {
			n, _ := in["in"].Observed()
			return map[string]calyx.Value{"out": calyx.Settled(n + 1)}, nil
		},
	}
}

func TestEval_divergentFixpoint(t *testing.T) {
	c, err := calyx.NewBuilder("m", "", "out[8]").
		Instance("s", succ()).
		Connect("s.out", "s.in").
		Connect("s.out", "output.out").
		Control(calyx.Enable("s")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	_, err = calyx.Compute(c, nil, nil, nil)
	if err == nil {
		t.Fatal("expected divergent fixpoint")
	}
	if !calyx.IsDivergentFixpoint(err) {
		t.Fatalf("expected divergent fixpoint, got %v", err)
	}
}

// Re-running a compute step with the same inputs and memory must
// reproduce the state exactly.
func TestEval_idempotence(t *testing.T) {
	c, err := calyx.NewBuilder("m", "a[8], b[8]", "out[8]").
		Instance("add", lib.Add(8)).
		Instance("mul", lib.Mul(8)).
		Connect("a", "add.left").
		Connect("b", "add.right").
		Connect("add.out", "mul.left").
		Connect("b", "mul.right").
		Connect("mul.out", "output.out").
		Control(calyx.Enable("add", "mul")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	in := map[string]calyx.Value{"a": calyx.Settled(3), "b": calyx.Settled(4)}
	r1, err := calyx.Compute(c, in, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := calyx.Compute(c, in, r1.Memory, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(r1.State) != len(r2.State) {
		t.Fatalf("state size changed: %d != %d", len(r1.State), len(r2.State))
	}
	for k, v := range r1.State {
		if !r2.State.Get(k).Equal(v) {
			t.Fatalf("state at %v changed: %v != %v", k, v, r2.State.Get(k))
		}
	}
	if n, _ := r1.Outputs["out"].Observed(); n != 28 {
		t.Fatalf("out = %v, expected 28", r1.Outputs["out"])
	}
}

func TestEval_inactiveRecordsAbsent(t *testing.T) {
	c, err := calyx.NewBuilder("m", "a[8]", "out[8]").
		Instance("w", lib.Wire(8)).
		Connect("a", "w.in").
		Connect("w.out", "output.out").
		Control(calyx.Disable("w")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	res, err := calyx.Compute(c, map[string]calyx.Value{"a": calyx.Settled(1)}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.State.Get(calyx.PortRef{Inst: "w", Port: "out"}).IsAbsent() {
		t.Fatal("inactive instance port should be absent")
	}
	if !res.Outputs["out"].IsAbsent() {
		t.Fatal("output driven by inactive instance should be absent")
	}
}
