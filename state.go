package calyx

// A State is the snapshot of every port value at one point of an
// evaluation. States are treated as immutable outside the evaluator:
// every merge builds a new map, so execution tuples forked for
// parallel control branches cannot alias each other.
//
type State map[PortRef]Value

// Get returns the value recorded for ref, Absent if unset.
//
func (s State) Get(ref PortRef) Value { return s[ref] }

func (s State) clone() State {
	n := make(State, len(s))
	for k, v := range s {
		n[k] = v
	}
	return n
}

// save records an instance's own outputs, the newer write winning.
// Re-emission by the key's owner during fixpoint iteration is the one
// deliberate overwrite the save-union rule allows.
//
func (s State) save(inst string, outs map[string]Value) {
	for p, v := range outs {
		s[PortRef{Inst: inst, Port: p}] = v
	}
}

// recordAbsent marks every port of an inactive instance Absent,
// without clobbering values recorded by an earlier control leaf.
//
func (s State) recordAbsent(inst string, sub *Component) {
	for _, p := range sub.In {
		ref := PortRef{Inst: inst, Port: p.Name}
		if _, ok := s[ref]; !ok {
			s[ref] = Absent()
		}
	}
	for _, p := range sub.Out {
		ref := PortRef{Inst: inst, Port: p.Name}
		if _, ok := s[ref]; !ok {
			s[ref] = Absent()
		}
	}
}

// union merges the state produced by one control leaf into the
// running tuple state. Keys owned by instances active in that leaf
// were recomputed and overwrite; for all others an absent value never
// wins, identical values coalesce, and two different settled values
// are a wiring conflict. Blocked values re-latch, newer write wins.
//
func (s State) union(leaf State, active func(inst string) bool) (State, error) {
	n := s.clone()
	for k, v := range leaf {
		old, ok := n[k]
		switch {
		case !ok || old.IsAbsent() || active(k.Inst):
			n[k] = v
		case v.IsAbsent():
			// keep old
		case v.IsBlocked() || old.IsBlocked():
			n[k] = v
		case v.Equal(old):
			// coalesce
		default:
			return nil, &WiringConflictError{Inst: k.Inst, Port: k.Port}
		}
	}
	return n, nil
}

// strictUnion merges the states produced by parallel control branches.
// Unlike union it grants no overwrite exemption and no blocked
// re-latch: an absent value never wins, identical values coalesce, and
// any other combination is a wiring conflict, so branches racing on
// the same port are rejected instead of silently ordered.
//
func (s State) strictUnion(branch State) (State, error) {
	n := s.clone()
	for k, v := range branch {
		old, ok := n[k]
		switch {
		case !ok || old.IsAbsent():
			n[k] = v
		case v.IsAbsent(), v.Equal(old):
			// keep old
		default:
			return nil, &WiringConflictError{Inst: k.Inst, Port: k.Port}
		}
	}
	return n, nil
}
