package lib

import (
	log "github.com/sirupsen/logrus"

	calyx "github.com/calyxir/calyx-sub005"
)

// Add returns a combinational adder.
//
//	Inputs: left, right
//	Outputs: out
//	Function: out = left + right
//
func Add(width int) *calyx.Component {
	return binOp("add", width, width, func(a, b int64) int64 { return a + b })
}

// Sub returns a combinational subtractor.
//
//	Inputs: left, right
//	Outputs: out
//	Function: out = left - right
//
func Sub(width int) *calyx.Component {
	return binOp("sub", width, width, func(a, b int64) int64 { return a - b })
}

// Mul returns a combinational multiplier.
//
func Mul(width int) *calyx.Component {
	return binOp("mul", width, width, func(a, b int64) int64 { return a * b })
}

// Div returns a combinational divider. A zero divisor is not fatal:
// hardware units must still drive a signal, so the division logs a
// warning and emits the Indeterminate sentinel instead.
//
func Div(width int) *calyx.Component {
	return binOp("div", width, width, func(a, b int64) int64 {
		if b == 0 {
			log.WithFields(log.Fields{"dividend": a}).Warn("division by zero")
			return calyx.Indeterminate
		}
		return a / b
	})
}

// Rem returns a combinational remainder unit with the same zero
// divisor handling as Div.
//
func Rem(width int) *calyx.Component {
	return binOp("rem", width, width, func(a, b int64) int64 {
		if b == 0 {
			log.WithFields(log.Fields{"dividend": a}).Warn("remainder by zero")
			return calyx.Indeterminate
		}
		return a % b
	})
}

// Incr returns a unit adding one to its input.
//
func Incr(width int) *calyx.Component {
	return unOp("incr", width, func(a int64) int64 { return a + 1 })
}

// Decr returns a unit subtracting one from its input.
//
func Decr(width int) *calyx.Component {
	return unOp("decr", width, func(a int64) int64 { return a - 1 })
}

// Lsh returns a left shifter.
//
func Lsh(width int) *calyx.Component {
	return binOp("lsh", width, width, func(a, b int64) int64 { return a << uint64(b&63) })
}

// Rsh returns a right shifter.
//
func Rsh(width int) *calyx.Component {
	return binOp("rsh", width, width, func(a, b int64) int64 { return a >> uint64(b&63) })
}
