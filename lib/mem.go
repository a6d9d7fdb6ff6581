package lib

import (
	"strconv"

	"github.com/pkg/errors"

	calyx "github.com/calyxir/calyx-sub005"
)

// Mem returns an addressed storage unit with size cells of the given
// width. Reads are combinational and observe the pre-update cell;
// writes latch at the end of the control step when the write port is
// non-zero. Any access outside [0, size) is fatal.
//
//	Inputs: addr, in, write
//	Outputs: out
//
func Mem(width int, size int64) *calyx.Component {
	name := "mem" + strconv.Itoa(width) + "x" + strconv.FormatInt(size, 10)
	cell := func(cells []int64, addr int64) int64 {
		if addr < int64(len(cells)) {
			return cells[addr]
		}
		return 0
	}
	return &calyx.Component{
		Name: name,
		In: []calyx.Port{
			{Name: "addr", Width: width},
			{Name: pIn, Width: width},
			{Name: "write", Width: 1},
		},
		Out: ports(width, pOut),
		Comb: func(in map[string]calyx.Value, mem *calyx.Memory) (map[string]calyx.Value, error) {
			addr, ok := in["addr"].Observed()
			if !ok {
				return nil, nil
			}
			if addr < 0 || addr >= size {
				return nil, errors.WithStack(&calyx.MissingAddressError{Inst: name, Addr: addr, Size: size})
			}
			var cells []int64
			if mem != nil {
				cells = mem.Cells
			}
			old := cell(cells, addr)
			if in["write"].Truthy() {
				if v, ok := in[pIn].Observed(); ok {
					return map[string]calyx.Value{pOut: calyx.Blocked(v, old)}, nil
				}
			}
			return map[string]calyx.Value{pOut: calyx.Settled(old)}, nil
		},
		Mem: func(old *calyx.Memory, sample map[string]calyx.Value) (*calyx.Memory, error) {
			if !sample["write"].Truthy() {
				return old, nil
			}
			addr, aok := sample["addr"].Observed()
			v, vok := sample[pIn].Observed()
			if !aok || !vok {
				return old, nil
			}
			if addr < 0 || addr >= size {
				return nil, errors.WithStack(&calyx.MissingAddressError{Inst: name, Addr: addr, Size: size})
			}
			cells := make([]int64, size)
			if old != nil {
				copy(cells, old.Cells)
			}
			cells[addr] = v
			return &calyx.Memory{Cells: cells}, nil
		},
	}
}
