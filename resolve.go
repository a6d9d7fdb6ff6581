package calyx

// resolveInputs collects the current values on every input port of
// the named sub-instance by following reverse edges in the
// connectivity graph. Blocked upstream values are observed through
// their clean half, so combinational readers never see an in-flight
// register write.
//
// At most one source may contribute a settled value per input port.
// The check is waived until the instance has been evaluated once:
// during the bootstrap round most sources have not produced anything
// yet and transient multi-driver states are harmless.
//
func (c *Component) resolveInputs(inst string, sub *Component, st State, seen map[string]bool) (map[string]Value, error) {
	in := make(map[string]Value, len(sub.In))
	for _, p := range sub.In {
		dst := PortRef{Inst: inst, Port: p.Name}
		var (
			val     Value
			num     int64
			have    bool
			sources []PortRef
		)
		for _, src := range c.Graph.Sources(dst) {
			v := st.Get(PortRef{Inst: c.resolveAlias(src.Inst), Port: src.Port})
			n, ok := v.Observed()
			if !ok {
				continue
			}
			sources = append(sources, src)
			if have && n != num {
				if seen[inst] {
					return nil, &WiringConflictError{Inst: inst, Port: p.Name, Sources: sources}
				}
				continue
			}
			val, num, have = Settled(n), n, true
		}
		if !have {
			val = Absent()
		}
		in[p.Name] = val
	}
	return in, nil
}

// projectOutputs resolves the component's own output ports from the
// stabilized state by following the edges into the "output" sentinel.
//
func (c *Component) projectOutputs(st State) map[string]Value {
	out := make(map[string]Value, len(c.Out))
	for _, p := range c.Out {
		v := Absent()
		for _, src := range c.Graph.Sources(PortRef{Inst: OutputInst, Port: p.Name}) {
			sv := st.Get(PortRef{Inst: c.resolveAlias(src.Inst), Port: src.Port})
			if !sv.IsAbsent() {
				v = sv
			}
		}
		out[p.Name] = v
	}
	return out
}
