package calyx

// A Memory is one node of the persistent state tree. It mirrors the
// component hierarchy: a stateful primitive stores its value (or
// cells, for addressed storage) in its own node, while a composite
// holds one sub-node per stateful sub-instance. Memory nodes are
// never mutated; updates build new nodes so that forked execution
// tuples cannot alias each other's state.
//
type Memory struct {
	Value Value
	Cells []int64
	Sub   map[string]*Memory
}

// At returns the sub-node for the named instance, or nil. Safe to
// call on a nil receiver.
//
func (m *Memory) At(name string) *Memory {
	if m == nil {
		return nil
	}
	return m.Sub[name]
}

// With returns a copy of m with the named sub-node replaced. The
// receiver may be nil.
//
func (m *Memory) With(name string, sub *Memory) *Memory {
	n := &Memory{}
	if m != nil {
		n.Value = m.Value
		n.Cells = m.Cells
		n.Sub = make(map[string]*Memory, len(m.Sub)+1)
		for k, v := range m.Sub {
			n.Sub[k] = v
		}
	} else {
		n.Sub = make(map[string]*Memory, 1)
	}
	n.Sub[name] = sub
	return n
}
