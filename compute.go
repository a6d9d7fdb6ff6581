package calyx

import (
	"github.com/pkg/errors"
)

// A Tuple is the record threaded through the control interpreter:
// external inputs (fixed for one Compute call), the inactive set
// (changed only at control leaves), the accumulated port state, the
// working memory tree, and the history of tuples after each
// sequential step.
//
type Tuple struct {
	Inputs   map[string]Value
	Inactive map[string]bool
	State    State
	Memory   *Memory
	History  []*Tuple
}

// read returns the value on a condition port: the current state,
// pre-merged with the external inputs.
//
func (t *Tuple) read(ref PortRef) Value {
	if v, ok := t.State[ref]; ok && !v.IsAbsent() {
		return v
	}
	if ref.Inst == InputInst {
		return t.Inputs[ref.Port]
	}
	return Absent()
}

func (t *Tuple) withInactive(inactive map[string]bool) *Tuple {
	n := *t
	n.Inactive = inactive
	return &n
}

// snapshot returns a copy of the tuple suitable for the history list.
func (t *Tuple) snapshot() *Tuple {
	n := *t
	n.History = nil
	return &n
}

// A StepFn is invoked once per control leaf with the tuple resulting
// from that leaf. External visualizers and test harnesses hook in
// here; leaves completed before a failure still fire.
//
type StepFn func(*Tuple)

// A Result carries the final outcome of one Compute call.
//
type Result struct {
	// Outputs is the final state projected onto the component's own
	// output ports.
	Outputs map[string]Value
	// State is the full stabilized port state.
	State State
	// Memory is the advanced persistent state tree. Feed it back into
	// the next Compute call.
	Memory *Memory
}

// Compute runs the component's control program against the given
// external inputs and persistent memory and returns the stable port
// values and the advanced memory tree. The supplied memory is not
// mutated; onStep may be nil.
//
func Compute(c *Component, inputs map[string]Value, mem *Memory, onStep StepFn) (*Result, error) {
	return c.run(inputs, mem, onStep, true)
}

// run is the engine entry point. Only the outermost invocation
// commits memory back to the caller: nested runs (a composite
// evaluated combinationally inside a parent's fixpoint) discard their
// working memory so that state advances exactly once per toplevel
// call.
//
func (c *Component) run(inputs map[string]Value, mem *Memory, onStep StepFn, toplevel bool) (*Result, error) {
	if c.Primitive() {
		return c.runPrimitive(inputs, mem, toplevel)
	}

	st := make(State, len(inputs))
	for name, v := range inputs {
		st[PortRef{Inst: InputInst, Port: name}] = v
	}
	t := &Tuple{
		Inputs:   inputs,
		Inactive: make(map[string]bool),
		State:    st,
		Memory:   mem,
	}

	node := c.Control
	if node == nil {
		node = Disable()
	}
	ft, err := c.astStep(node, t, onStep)
	if err != nil {
		return nil, errors.Wrap(err, c.Name)
	}

	res := &Result{
		Outputs: c.projectOutputs(ft.State),
		State:   ft.State,
		Memory:  mem,
	}
	if toplevel {
		res.Memory = ft.Memory
	}
	return res, nil
}

// leaf evaluates one control leaf: rebuild the state from the
// external inputs, run the fixpoint with the leaf's inactive set,
// merge the result into the tuple, and advance the working memory
// from the stabilized sample. Combinational readers inside the leaf
// saw only pre-update register values; the latched values become
// observable at the next leaf.
//
func (c *Component) leaf(t *Tuple, inactive map[string]bool, onStep StepFn) (*Tuple, error) {
	st := make(State, len(t.Inputs))
	for name, v := range t.Inputs {
		st[PortRef{Inst: InputInst, Port: name}] = v
	}
	st, err := c.fixpoint(st, t.Memory, inactive)
	if err != nil {
		return nil, err
	}

	merged, err := t.State.union(st, func(inst string) bool {
		if inst == InputInst || inst == OutputInst {
			return true
		}
		return !inactive[inst]
	})
	if err != nil {
		return nil, errors.Wrap(err, c.Name)
	}

	mem, err := c.latch(st, t.Memory, inactive)
	if err != nil {
		return nil, err
	}

	nt := &Tuple{
		Inputs:   t.Inputs,
		Inactive: inactive,
		State:    merged,
		Memory:   mem,
		History:  t.History,
	}
	if onStep != nil {
		onStep(nt)
	}
	return nt, nil
}

// latch runs the memory pass over every active stateful sub-instance,
// feeding each memory procedure its previous node and the final
// stabilized sample, and building a new memory tree.
//
func (c *Component) latch(leaf State, mem *Memory, inactive map[string]bool) (*Memory, error) {
	out := mem
	for _, n := range c.Order {
		if inactive[n] {
			continue
		}
		sub := c.Parts[n]
		if sub.Mem == nil {
			continue
		}
		nm, err := sub.Mem(mem.At(n), c.sample(n, sub, leaf))
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", c.Name, n)
		}
		out = out.With(n, nm)
	}
	return out, nil
}

// runPrimitive evaluates a bare primitive component: one
// combinational pass, then the memory procedure if the call is
// toplevel and the primitive is stateful.
//
func (c *Component) runPrimitive(inputs map[string]Value, mem *Memory, toplevel bool) (*Result, error) {
	out, err := c.Comb(inputs, mem)
	if err != nil {
		return nil, errors.Wrap(err, c.Name)
	}
	st := make(State, len(inputs)+len(out))
	for name, v := range inputs {
		st[PortRef{Inst: InputInst, Port: name}] = v
	}
	outs := make(map[string]Value, len(c.Out))
	for _, p := range c.Out {
		v, ok := out[p.Name]
		if !ok {
			v = Absent()
		}
		outs[p.Name] = v
		st[PortRef{Inst: OutputInst, Port: p.Name}] = v
	}
	res := &Result{Outputs: outs, State: st, Memory: mem}
	if toplevel && c.Mem != nil {
		sample := make(map[string]Value, len(inputs)+len(outs))
		for k, v := range inputs {
			sample[k] = v
		}
		for k, v := range outs {
			sample[k] = v
		}
		nm, err := c.Mem(mem, sample)
		if err != nil {
			return nil, errors.Wrap(err, c.Name)
		}
		res.Memory = nm
	}
	return res, nil
}

// derived procedures for composite components, installed by the
// builder.

// runComb makes a composite usable as a sub-instance: a full control
// run that projects outputs and discards memory changes.
func (c *Component) runComb(in map[string]Value, mem *Memory) (map[string]Value, error) {
	r, err := c.run(in, mem, nil, false)
	if err != nil {
		return nil, err
	}
	return r.Outputs, nil
}

// runMem advances a stateful composite: re-run its control against
// the final sampled boundary, this time committing memory.
func (c *Component) runMem(old *Memory, sample map[string]Value) (*Memory, error) {
	in := make(map[string]Value, len(c.In))
	for _, p := range c.In {
		in[p.Name] = sample[p.Name]
	}
	r, err := c.run(in, old, nil, true)
	if err != nil {
		return nil, err
	}
	return r.Memory, nil
}
