package calyx

import (
	"math"
	"strconv"
)

// Indeterminate is the sentinel number substituted for results that a
// component cannot represent, such as a division by zero. Arithmetic
// units must still drive their outputs, so the engine logs a warning
// and emits this value instead of aborting.
const Indeterminate int64 = math.MinInt64

// Kind discriminates the three states a port value can hold during one
// evaluation step.
type Kind uint8

// Value kinds.
const (
	// KindAbsent marks a port that no driver has produced a value for
	// this step.
	KindAbsent Kind = iota
	// KindSettled marks a concrete data value.
	KindSettled
	// KindBlocked marks a value in flight through a register-like
	// element: the dirty half is being written this step while the
	// clean half is still the externally observable value.
	KindBlocked
)

// A Value is the datum flowing on a port during evaluation. The zero
// Value is Absent.
//
type Value struct {
	kind  Kind
	dirty int64
	clean int64
}

// Absent returns the absent value.
//
func Absent() Value { return Value{} }

// Settled returns a concrete data value.
//
func Settled(n int64) Value { return Value{kind: KindSettled, dirty: n} }

// Blocked returns an in-flight register value. dirty is the number
// being latched this step, clean the previously committed number that
// combinational readers still observe.
//
func Blocked(dirty, clean int64) Value {
	return Value{kind: KindBlocked, dirty: dirty, clean: clean}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether no driver has produced a value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsSettled reports whether the value is a concrete datum.
func (v Value) IsSettled() bool { return v.kind == KindSettled }

// IsBlocked reports whether the value is in flight through a register.
func (v Value) IsBlocked() bool { return v.kind == KindBlocked }

// Num returns the concrete number held by a settled value. It panics
// on any other kind; callers must check the kind first.
//
func (v Value) Num() int64 {
	if v.kind != KindSettled {
		panic("Num called on non-settled value")
	}
	return v.dirty
}

// Dirty returns the number being written through a blocked value.
//
func (v Value) Dirty() int64 {
	if v.kind != KindBlocked {
		panic("Dirty called on non-blocked value")
	}
	return v.dirty
}

// Clean returns the previously committed number of a blocked value.
//
func (v Value) Clean() int64 {
	if v.kind != KindBlocked {
		panic("Clean called on non-blocked value")
	}
	return v.clean
}

// Observed returns the number a combinational reader sees: the datum
// itself for a settled value, the clean half for a blocked one. The
// second return is false for an absent value.
//
func (v Value) Observed() (int64, bool) {
	switch v.kind {
	case KindSettled:
		return v.dirty, true
	case KindBlocked:
		return v.clean, true
	}
	return 0, false
}

// Truthy reports whether the observed number is non-zero. An absent
// value is never truthy.
//
func (v Value) Truthy() bool {
	n, ok := v.Observed()
	return ok && n != 0
}

// Equal reports whether two values have the same kind and numbers.
//
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.dirty == o.dirty && v.clean == o.clean
}

func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "_"
	case KindSettled:
		return strconv.FormatInt(v.dirty, 10)
	case KindBlocked:
		return "!" + strconv.FormatInt(v.dirty, 10) + "/" + strconv.FormatInt(v.clean, 10)
	}
	return "?"
}
