// Package lib provides the primitive component library: gates,
// arithmetic units, registers and addressed storage, ready to be
// instantiated through the builder API.
//
package lib

import (
	"strconv"

	calyx "github.com/calyxir/calyx-sub005"
)

// common port names
const (
	pLeft  = "left"
	pRight = "right"
	pIn    = "in"
	pOut   = "out"
)

func ports(width int, names ...string) []calyx.Port {
	out := make([]calyx.Port, len(names))
	for i, n := range names {
		out[i] = calyx.Port{Name: n, Width: width}
	}
	return out
}

// binOp builds a two-input combinational primitive. The output stays
// absent until both inputs have observable values.
//
func binOp(name string, width, outWidth int, fn func(a, b int64) int64) *calyx.Component {
	return &calyx.Component{
		Name: name + strconv.Itoa(width),
		In:   ports(width, pLeft, pRight),
		Out:  ports(outWidth, pOut),
		Comb: func(in map[string]calyx.Value, _ *calyx.Memory) (map[string]calyx.Value, error) {
			a, aok := in[pLeft].Observed()
			b, bok := in[pRight].Observed()
			if !aok || !bok {
				return nil, nil
			}
			return map[string]calyx.Value{pOut: calyx.Settled(fn(a, b))}, nil
		},
	}
}

func unOp(name string, width int, fn func(a int64) int64) *calyx.Component {
	return &calyx.Component{
		Name: name + strconv.Itoa(width),
		In:   ports(width, pIn),
		Out:  ports(width, pOut),
		Comb: func(in map[string]calyx.Value, _ *calyx.Memory) (map[string]calyx.Value, error) {
			a, ok := in[pIn].Observed()
			if !ok {
				return nil, nil
			}
			return map[string]calyx.Value{pOut: calyx.Settled(fn(a))}, nil
		},
	}
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
