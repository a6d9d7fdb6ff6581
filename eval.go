package calyx

import (
	"github.com/pkg/errors"
)

// maxRounds bounds the worklist iteration of one fixpoint evaluation.
// A worklist still busy after that many rounds means an unintended
// combinational cycle.
const maxRounds = 100

// fixpoint runs the worklist evaluator over the component's
// sub-instances until no instance produces new information. Inactive
// instances record Absent on all their ports. Active instances have
// their inputs resolved from st, their combinational procedure
// invoked with the current memory snapshot, and their sampled inputs
// and outputs saved back into st; any instance downstream of a
// changed output is requeued. Memory is never touched here.
//
func (c *Component) fixpoint(st State, mem *Memory, inactive map[string]bool) (State, error) {
	seen := make(map[string]bool, len(c.Order))
	queue := append([]string(nil), c.Order...)

	for round := 0; len(queue) > 0; round++ {
		if round >= maxRounds {
			return nil, errors.WithStack(&DivergentFixpointError{Component: c.Name, Pending: queue})
		}
		var next []string
		queued := make(map[string]bool)
		for _, n := range queue {
			sub := c.Parts[n]
			if inactive[n] {
				st.recordAbsent(n, sub)
				continue
			}
			in, err := c.resolveInputs(n, sub, st, seen)
			if err != nil {
				return nil, errors.Wrap(err, c.Name)
			}
			out, err := sub.Comb(in, mem.At(n))
			if err != nil {
				return nil, errors.Wrapf(err, "%s.%s", c.Name, n)
			}
			seen[n] = true

			var changed []PortRef
			for p, v := range out {
				ref := PortRef{Inst: n, Port: p}
				if !st[ref].Equal(v) {
					changed = append(changed, ref)
				}
			}
			st.save(n, in)
			st.save(n, out)

			for _, m := range c.Graph.downstream(changed) {
				if inactive[m] || queued[m] {
					continue
				}
				queued[m] = true
				next = append(next, m)
			}
		}
		queue = next
	}
	return st, nil
}

// sample gathers the final values on every port of the named
// sub-instance, the shape handed to memory procedures.
//
func (c *Component) sample(inst string, sub *Component, st State) map[string]Value {
	s := make(map[string]Value, len(sub.In)+len(sub.Out))
	for _, p := range sub.In {
		s[p.Name] = st.Get(PortRef{Inst: inst, Port: p.Name})
	}
	for _, p := range sub.Out {
		s[p.Name] = st.Get(PortRef{Inst: inst, Port: p.Name})
	}
	return s
}
