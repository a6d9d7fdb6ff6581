package calyx_test

import (
	"testing"

	calyx "github.com/calyxir/calyx-sub005"
)

func TestWiringConflictError_message(t *testing.T) {
	td := []struct {
		name string
		err  *calyx.WiringConflictError
		want string
	}{
		{"with sources", &calyx.WiringConflictError{
			Inst: "w", Port: "in",
			Sources: []calyx.PortRef{{Inst: "c1", Port: "out"}, {Inst: "c2", Port: "out"}},
		}, "wiring conflict on w.in driven by c1.out, c2.out"},
		{"no sources", &calyx.WiringConflictError{Inst: "w", Port: "in"},
			"wiring conflict on w.in"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if got := d.err.Error(); got != d.want {
				t.Fatalf("Error() = %q, expected %q", got, d.want)
			}
		})
	}
}
