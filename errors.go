package calyx

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A WiringConflictError reports two or more sources asserting
// different settled values onto the same input slot during one
// fixpoint round. It aborts the whole Compute call: a stabilized but
// inconsistent state is unsound to report.
//
type WiringConflictError struct {
	Inst    string
	Port    string
	Sources []PortRef
}

func (e *WiringConflictError) Error() string {
	var b strings.Builder
	b.WriteString("wiring conflict on ")
	b.WriteString(e.Inst)
	b.WriteByte('.')
	b.WriteString(e.Port)
	for i, s := range e.Sources {
		if i == 0 {
			b.WriteString(" driven by ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// A DivergentFixpointError reports a worklist that failed to empty
// within the iteration cap, usually an unintended combinational cycle.
// Pending lists the instances still on the worklist.
//
type DivergentFixpointError struct {
	Component string
	Pending   []string
}

func (e *DivergentFixpointError) Error() string {
	return "fixpoint in " + e.Component + " diverged after " +
		strconv.Itoa(maxRounds) + " rounds; pending: " + strings.Join(e.Pending, ", ")
}

// A MalformedControlError reports an unrecognized control AST node.
// This indicates a builder bug, not a runtime data issue.
//
type MalformedControlError struct {
	Component string
	Node      Node
}

func (e *MalformedControlError) Error() string {
	return "malformed control in " + e.Component + ": unrecognized node"
}

// A MissingAddressError reports an access to an address outside a
// storage component's pre-declared domain.
//
type MissingAddressError struct {
	Inst string
	Addr int64
	Size int64
}

func (e *MissingAddressError) Error() string {
	return "missing address " + strconv.FormatInt(e.Addr, 10) + " in " +
		e.Inst + " (size " + strconv.FormatInt(e.Size, 10) + ")"
}

// IsWiringConflict reports whether err was caused by a wiring conflict.
//
func IsWiringConflict(err error) bool {
	var e *WiringConflictError
	return errors.As(err, &e)
}

// IsDivergentFixpoint reports whether err was caused by a fixpoint
// that failed to stabilize.
//
func IsDivergentFixpoint(err error) bool {
	var e *DivergentFixpointError
	return errors.As(err, &e)
}

// IsMalformedControl reports whether err was caused by an
// unrecognized control node.
//
func IsMalformedControl(err error) bool {
	var e *MalformedControlError
	return errors.As(err, &e)
}

// IsMissingAddress reports whether err was caused by an out-of-domain
// storage access.
//
func IsMissingAddress(err error) bool {
	var e *MissingAddressError
	return errors.As(err, &e)
}
