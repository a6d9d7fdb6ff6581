package calyx

// A CombFn is a component's combinational procedure. It receives the
// sampled input port values and the component's current memory
// snapshot and returns the driven output port values. It must not
// retain or mutate its arguments.
//
type CombFn func(in map[string]Value, mem *Memory) (map[string]Value, error)

// A MemFn is a component's memory procedure. It receives the previous
// memory node and the final stabilized sample of the component's
// ports, and returns the next memory node. It runs strictly after
// combinational stabilization.
//
type MemFn func(old *Memory, sample map[string]Value) (*Memory, error)

// A Component is a node in the design hierarchy: ports, a table of
// named sub-instances, a connectivity graph over (instance, port)
// pairs, and a control program. Primitive components carry their own
// combinational and memory procedures; composite components get
// derived ones from the builder. Components are constructed once and
// immutable thereafter.
//
type Component struct {
	Name string
	In   []Port
	Out  []Port

	// Parts maps sub-instance names to their definitions. Order holds
	// the instantiation order, used to seed the evaluator worklist.
	Parts map[string]*Component
	Order []string

	// Splits maps alias instance names to real ones.
	Splits map[string]string

	Control Node
	Comb    CombFn
	Mem     MemFn
	Graph   *Graph
}

// Primitive reports whether the component has no internal structure.
//
func (c *Component) Primitive() bool { return c.Graph == nil }

// Stateful reports whether the component (or any sub-instance,
// recursively) holds persistent state.
//
func (c *Component) Stateful() bool {
	if c.Mem != nil {
		return true
	}
	for _, p := range c.Parts {
		if p.Stateful() {
			return true
		}
	}
	return false
}

// InPort returns the named input port.
func (c *Component) InPort(name string) (Port, bool) { return findPort(c.In, name) }

// OutPort returns the named output port.
func (c *Component) OutPort(name string) (Port, bool) { return findPort(c.Out, name) }

// resolveAlias follows the split table to the real instance name. The
// hop count is bounded so a cyclic table cannot hang the resolver.
func (c *Component) resolveAlias(name string) string {
	for i := 0; i <= len(c.Splits); i++ {
		t, ok := c.Splits[name]
		if !ok {
			break
		}
		name = t
	}
	return name
}

func identityComb(in map[string]Value, _ *Memory) (map[string]Value, error) {
	out := make(map[string]Value, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out, nil
}

// InputStub returns the degenerate component standing for one of the
// enclosing component's input ports. It exposes the wildcard port and
// an identity combinational procedure.
//
func InputStub(width int) *Component {
	return &Component{
		Name: "input-stub",
		In:   []Port{{Name: Wildcard, Width: width}},
		Out:  []Port{{Name: Wildcard, Width: width}},
		Comb: identityComb,
	}
}

// OutputStub returns the boundary component standing for one of the
// enclosing component's output ports.
//
func OutputStub(width int) *Component {
	return &Component{
		Name: "output-stub",
		In:   []Port{{Name: Wildcard, Width: width}},
		Out:  []Port{{Name: Wildcard, Width: width}},
		Comb: identityComb,
	}
}
