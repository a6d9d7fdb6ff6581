package lib

import (
	"strconv"

	calyx "github.com/calyxir/calyx-sub005"
)

// Register returns a stateful identity register.
//
//	Inputs: in
//	Outputs: out
//	Function: out observes the previously committed value; a driven
//	input latches at the end of the control step.
//
// While the input is driven, out carries a blocked value whose dirty
// half is the incoming datum and whose clean half is the committed
// one, so combinational readers within the same step keep seeing the
// old value.
//
func Register(width int) *calyx.Component {
	return &calyx.Component{
		Name: "reg" + strconv.Itoa(width),
		In:   ports(width, pIn),
		Out:  ports(width, pOut),
		Comb: func(in map[string]calyx.Value, mem *calyx.Memory) (map[string]calyx.Value, error) {
			old := int64(0)
			if mem != nil {
				if n, ok := mem.Value.Observed(); ok {
					old = n
				}
			}
			v, ok := in[pIn].Observed()
			if !ok {
				return map[string]calyx.Value{pOut: calyx.Settled(old)}, nil
			}
			return map[string]calyx.Value{pOut: calyx.Blocked(v, old)}, nil
		},
		Mem: func(old *calyx.Memory, sample map[string]calyx.Value) (*calyx.Memory, error) {
			v, ok := sample[pIn].Observed()
			if !ok {
				if old != nil {
					return old, nil
				}
				return &calyx.Memory{Value: calyx.Settled(0)}, nil
			}
			return &calyx.Memory{Value: calyx.Settled(v)}, nil
		},
	}
}
