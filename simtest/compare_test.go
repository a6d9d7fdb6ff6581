package simtest_test

import (
	"testing"

	calyx "github.com/calyxir/calyx-sub005"
	"github.com/calyxir/calyx-sub005/lib"
	"github.com/calyxir/calyx-sub005/simtest"
)

// a + b built from two subtractors: a - (0 - b).
func addFromSub(t *testing.T) *calyx.Component {
	t.Helper()
	c, err := calyx.NewBuilder("addsub", "left[32], right[32]", "out[32]").
		Instance("zero", lib.Const(32, 0)).
		Instance("neg", lib.Sub(32)).
		Instance("sub", lib.Sub(32)).
		Connect("zero.out", "neg.left").
		Connect("right", "neg.right").
		Connect("left", "sub.left").
		Connect("neg.out", "sub.right").
		Connect("sub.out", "output.out").
		Control(calyx.Enable("zero", "neg", "sub")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCompareComponents(t *testing.T) {
	simtest.CompareComponents(t, lib.Add(32), addFromSub(t), []map[string]int64{
		{"left": 0, "right": 0},
		{"left": 3, "right": 4},
		{"left": -5, "right": 2},
		{"left": 1 << 30, "right": 1 << 30},
	})
}

// a register against a composite wrapping one: memory must thread
// across vectors in both.
func TestCompareComponents_stateful(t *testing.T) {
	wrapped, err := calyx.NewBuilder("wrapreg", "in[8]", "out[8]").
		Instance("r", lib.Register(8)).
		Connect("in", "r.in").
		Connect("r.out", "output.out").
		Control(calyx.Enable("r")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	simtest.CompareComponents(t, lib.Register(8), wrapped, []map[string]int64{
		{"in": 1},
		{"in": 2},
		{"in": 2},
		{"in": 7},
	})
}

func TestRun(t *testing.T) {
	res := simtest.Run(t, lib.Add(8), map[string]int64{"left": 2, "right": 3}, nil)
	if n, ok := res.Outputs["out"].Observed(); !ok || n != 5 {
		t.Fatalf("out = %v, expected 5", res.Outputs["out"])
	}
}
