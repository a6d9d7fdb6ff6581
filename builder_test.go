package calyx_test

import (
	"strings"
	"testing"

	calyx "github.com/calyxir/calyx-sub005"
	"github.com/calyxir/calyx-sub005/lib"
)

func TestBuilder_valid(t *testing.T) {
	c, err := calyx.NewBuilder("main", "left[32], right[32]", "out[32]").
		Instance("add", lib.Add(32)).
		Connect("left", "add.left").
		Connect("right", "add.right").
		Connect("add.out", "output.out").
		Control(calyx.Enable("add")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	if c.Primitive() {
		t.Fatal("composite component reported primitive")
	}
	if c.Stateful() {
		t.Fatal("pure combinational component reported stateful")
	}
	if len(c.Order) != 1 || c.Order[0] != "add" {
		t.Fatalf("Order = %v", c.Order)
	}
}

func TestBuilder_errors(t *testing.T) {
	td := []struct {
		name  string
		build func() (*calyx.Component, error)
		match string
	}{
		{"width mismatch", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[8]", "out[32]").
				Instance("add", lib.Add(32)).
				Connect("a", "add.left").
				Component()
		}, "width mismatch"},
		{"unknown instance", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[32]", "").
				Connect("a", "nope.in").
				Component()
		}, "no such instance"},
		{"unknown input port", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[32]", "").
				Instance("add", lib.Add(32)).
				Connect("b", "add.left").
				Component()
		}, "no such input port"},
		{"driving an input", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[32]", "").
				Instance("add", lib.Add(32)).
				Connect("add.out", "input.a").
				Component()
		}, "cannot be driven"},
		{"output as source", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[32]", "out[32]").
				Instance("add", lib.Add(32)).
				Connect("output.out", "add.left").
				Component()
		}, "cannot drive"},
		{"duplicate instance", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[32]", "").
				Instance("add", lib.Add(32)).
				Instance("add", lib.Add(32)).
				Component()
		}, "duplicate instance"},
		{"reserved instance name", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[32]", "").
				Instance("input", lib.Add(32)).
				Component()
		}, "invalid instance name"},
		{"control names unknown instance", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[32]", "").
				Instance("add", lib.Add(32)).
				Control(calyx.Enable("mul")).
				Component()
		}, "unknown instance"},
		{"condition on unknown port", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[32]", "").
				Instance("add", lib.Add(32)).
				Control(calyx.If("add.nope", calyx.Enable("add"), nil)).
				Component()
		}, "no such port"},
		{"bad port spec", func() (*calyx.Component, error) {
			return calyx.NewBuilder("m", "a[", "").Component()
		}, "missing closing bracket"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := d.build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), d.match) {
				t.Fatalf("error %q does not mention %q", err, d.match)
			}
		})
	}
}

func TestBuilder_split(t *testing.T) {
	c, err := calyx.NewBuilder("m", "a[32]", "out[32]").
		Instance("add", lib.Add(32)).
		Split("plus", "add").
		Connect("a", "plus.left").
		Connect("a", "plus.right").
		Connect("plus.out", "output.out").
		Control(calyx.Enable("plus")).
		Component()
	if err != nil {
		t.Fatal(err)
	}
	res, err := calyx.Compute(c, map[string]calyx.Value{"a": calyx.Settled(21)}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := res.Outputs["out"].Observed(); !ok || n != 42 {
		t.Fatalf("out = %v, expected 42", res.Outputs["out"])
	}
}
