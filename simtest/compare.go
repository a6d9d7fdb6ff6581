// Package simtest provides utility functions for testing components.
//
package simtest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	calyx "github.com/calyxir/calyx-sub005"
)

// Inputs converts plain numbers into an input mapping.
//
func Inputs(in map[string]int64) map[string]calyx.Value {
	out := make(map[string]calyx.Value, len(in))
	for k, v := range in {
		out[k] = calyx.Settled(v)
	}
	return out
}

// Run computes one step of c and fails the test on any engine error.
//
func Run(t *testing.T, c *calyx.Component, in map[string]int64, mem *calyx.Memory) *calyx.Result {
	t.Helper()
	res, err := calyx.Compute(c, Inputs(in), mem, nil)
	if err != nil {
		t.Fatalf("%s: %+v", c.Name, err)
	}
	return res
}

// observed flattens output values to plain numbers for diffing;
// absent ports are left out.
func observed(out map[string]calyx.Value) map[string]int64 {
	m := make(map[string]int64, len(out))
	for k, v := range out {
		if n, ok := v.Observed(); ok {
			m[k] = n
		}
	}
	return m
}

// CompareComponents drives two components with the same input
// vectors, threading each component's memory across vectors, and
// fails the test on the first diverging output. Both components must
// expose the same port interface.
//
func CompareComponents(t *testing.T, a, b *calyx.Component, vectors []map[string]int64) {
	t.Helper()
	var amem, bmem *calyx.Memory
	for i, in := range vectors {
		ra := Run(t, a, in, amem)
		rb := Run(t, b, in, bmem)
		amem, bmem = ra.Memory, rb.Memory
		if diff := cmp.Diff(observed(ra.Outputs), observed(rb.Outputs)); diff != "" {
			t.Fatalf("vector %d: %s vs %s outputs mismatch (-%s +%s):\n%s",
				i, a.Name, b.Name, a.Name, b.Name, diff)
		}
	}
}
