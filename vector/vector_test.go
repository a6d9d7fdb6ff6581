package vector_test

import (
	"encoding/json"
	"strings"
	"testing"

	calyx "github.com/calyxir/calyx-sub005"
	"github.com/calyxir/calyx-sub005/lib"
	"github.com/calyxir/calyx-sub005/vector"
)

func TestLoad(t *testing.T) {
	v, err := vector.Load(strings.NewReader(`{
		"inputs": {"left": 3, "right": 4},
		"memory": {"r": 7, "m": [1, 2, 3], "sub": {"r": 9}},
		"outputs": {"out": 7}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Inputs["left"].Equal(calyx.Settled(3)) || !v.Inputs["right"].Equal(calyx.Settled(4)) {
		t.Fatalf("inputs = %v", v.Inputs)
	}
	if !v.Memory.At("r").Value.Equal(calyx.Settled(7)) {
		t.Fatalf("memory r = %v, expected 7", v.Memory.At("r"))
	}
	if cells := v.Memory.At("m").Cells; len(cells) != 3 || cells[2] != 3 {
		t.Fatalf("memory m = %v, expected [1 2 3]", cells)
	}
	if !v.Memory.At("sub").At("r").Value.Equal(calyx.Settled(9)) {
		t.Fatalf("memory sub.r = %v, expected 9", v.Memory.At("sub").At("r"))
	}
	if v.Expect["out"] != 7 {
		t.Fatalf("expect = %v", v.Expect)
	}
}

func TestLoad_errors(t *testing.T) {
	td := []struct {
		name string
		in   string
	}{
		{"bad json", `{"inputs":`},
		{"bad memory node", `{"memory": {"r": "seven"}}`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if _, err := vector.Load(strings.NewReader(d.in)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

// Drive a design from a loaded vector and check the reported result
// round-trips through Load.
func TestReport(t *testing.T) {
	c, err := calyx.NewBuilder("addreg", "left[32], right[32]", "out[32]").
		Instance("add", lib.Add(32)).
		Instance("r", lib.Register(32)).
		Connect("left", "add.left").
		Connect("right", "add.right").
		Connect("add.out", "r.in").
		Connect("r.out", "output.out").
		Control(calyx.Enable("add", "r")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	v, err := vector.Load(strings.NewReader(`{
		"inputs": {"left": 3, "right": 4},
		"memory": {"r": 10}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := calyx.Compute(c, v.Inputs, v.Memory, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := vector.Report(res)
	if err != nil {
		t.Fatal(err)
	}

	var raw struct {
		Outputs map[string]*int64          `json:"outputs"`
		Memory  map[string]json.RawMessage `json:"memory"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("report is not valid JSON: %v\n%s", err, b)
	}
	// the register observes the previously committed 10 this step
	if n := raw.Outputs["out"]; n == nil || *n != 10 {
		t.Fatalf("reported out = %v, expected 10\n%s", n, b)
	}
	var rmem int64
	if err := json.Unmarshal(raw.Memory["r"], &rmem); err != nil || rmem != 7 {
		t.Fatalf("reported memory r = %s, expected 7", raw.Memory["r"])
	}

	// the memory section feeds back into Load unchanged
	rt, err := vector.Load(strings.NewReader(`{"memory": ` + string(mustField(t, b, "memory")) + `}`))
	if err != nil {
		t.Fatal(err)
	}
	if !rt.Memory.At("r").Value.Equal(calyx.Settled(7)) {
		t.Fatalf("round-tripped memory r = %v, expected 7", rt.Memory.At("r"))
	}
}

func TestReport_absentOutput(t *testing.T) {
	c, err := calyx.NewBuilder("m", "a[8]", "out[8]").
		Instance("w", lib.Wire(8)).
		Connect("a", "w.in").
		Connect("w.out", "output.out").
		Control(calyx.Disable("w")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	res, err := calyx.Compute(c, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := vector.Report(res)
	if err != nil {
		t.Fatal(err)
	}
	var raw struct {
		Outputs map[string]*int64 `json:"outputs"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	n, ok := raw.Outputs["out"]
	if !ok || n != nil {
		t.Fatalf("absent output should report as null, got %v\n%s", n, b)
	}
}

func mustField(t *testing.T, b []byte, name string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	return m[name]
}
