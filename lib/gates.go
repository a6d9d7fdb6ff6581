package lib

import (
	"strconv"

	calyx "github.com/calyxir/calyx-sub005"
)

// And returns a bitwise AND gate.
//
func And(width int) *calyx.Component {
	return binOp("and", width, width, func(a, b int64) int64 { return a & b })
}

// Or returns a bitwise OR gate.
//
func Or(width int) *calyx.Component {
	return binOp("or", width, width, func(a, b int64) int64 { return a | b })
}

// Xor returns a bitwise XOR gate.
//
func Xor(width int) *calyx.Component {
	return binOp("xor", width, width, func(a, b int64) int64 { return a ^ b })
}

// Not returns a bitwise complement.
//
func Not(width int) *calyx.Component {
	return unOp("not", width, func(a int64) int64 { return ^a })
}

// Eq returns a comparator driving 1 when both inputs are equal.
//
func Eq(width int) *calyx.Component {
	return binOp("eq", width, 1, func(a, b int64) int64 { return b2i(a == b) })
}

// Neq returns a comparator driving 1 when the inputs differ.
//
func Neq(width int) *calyx.Component {
	return binOp("neq", width, 1, func(a, b int64) int64 { return b2i(a != b) })
}

// Lt returns a comparator driving 1 when left < right.
//
func Lt(width int) *calyx.Component {
	return binOp("lt", width, 1, func(a, b int64) int64 { return b2i(a < b) })
}

// Gt returns a comparator driving 1 when left > right.
//
func Gt(width int) *calyx.Component {
	return binOp("gt", width, 1, func(a, b int64) int64 { return b2i(a > b) })
}

// Mux returns a two-way multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(width int) *calyx.Component {
	return &calyx.Component{
		Name: "mux" + strconv.Itoa(width),
		In:   append(ports(width, "a", "b"), calyx.Port{Name: "sel", Width: 1}),
		Out:  ports(width, pOut),
		Comb: func(in map[string]calyx.Value, _ *calyx.Memory) (map[string]calyx.Value, error) {
			sel, ok := in["sel"].Observed()
			if !ok {
				return nil, nil
			}
			src := in["a"]
			if sel != 0 {
				src = in["b"]
			}
			n, ok := src.Observed()
			if !ok {
				return nil, nil
			}
			return map[string]calyx.Value{pOut: calyx.Settled(n)}, nil
		},
	}
}

// Const returns a source permanently driving n.
//
func Const(width int, n int64) *calyx.Component {
	return &calyx.Component{
		Name: "const" + strconv.Itoa(width),
		Out:  ports(width, pOut),
		Comb: func(map[string]calyx.Value, *calyx.Memory) (map[string]calyx.Value, error) {
			return map[string]calyx.Value{pOut: calyx.Settled(n)}, nil
		},
	}
}

// Wire returns an identity buffer.
//
func Wire(width int) *calyx.Component {
	return unOp("wire", width, func(a int64) int64 { return a })
}

// Probe returns a sink invoking fn with the value observed on its
// input at every evaluation. Test harnesses and visualizers hook in
// here.
//
func Probe(width int, fn func(calyx.Value)) *calyx.Component {
	return &calyx.Component{
		Name: "probe" + strconv.Itoa(width),
		In:   ports(width, pIn),
		Comb: func(in map[string]calyx.Value, _ *calyx.Memory) (map[string]calyx.Value, error) {
			fn(in[pIn])
			return nil, nil
		},
	}
}
