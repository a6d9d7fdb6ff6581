package calyx

// A Graph is the combinational connectivity of a component: a directed
// multigraph over (instance, port) pairs. The sentinel instances
// "input" and "output" stand for the enclosing component's own ports.
// Edges carry the port width they were validated against.
//
type Graph struct {
	fwd   map[PortRef][]PortRef
	rev   map[PortRef][]PortRef
	width map[[2]PortRef]int
}

// NewGraph returns an empty connectivity graph.
//
func NewGraph() *Graph {
	return &Graph{
		fwd:   make(map[PortRef][]PortRef),
		rev:   make(map[PortRef][]PortRef),
		width: make(map[[2]PortRef]int),
	}
}

// Connect adds a directed edge from src to dst. Direction and width
// validation against the component's port tables is the builder's
// job; the graph only records the wiring.
//
func (g *Graph) Connect(src, dst PortRef, width int) {
	g.fwd[src] = append(g.fwd[src], dst)
	g.rev[dst] = append(g.rev[dst], src)
	g.width[[2]PortRef{src, dst}] = width
}

// Dests returns the references wired downstream of src.
//
func (g *Graph) Dests(src PortRef) []PortRef { return g.fwd[src] }

// Sources returns the references wired upstream of dst.
//
func (g *Graph) Sources(dst PortRef) []PortRef { return g.rev[dst] }

// Width returns the width recorded for the src->dst edge, or 0 if no
// such edge exists.
//
func (g *Graph) Width(src, dst PortRef) int {
	return g.width[[2]PortRef{src, dst}]
}

// downstream collects the distinct instance names reached by edges
// leaving any of the given refs. The "output" sentinel is not an
// instance and is skipped.
//
func (g *Graph) downstream(refs []PortRef) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range refs {
		for _, d := range g.fwd[r] {
			if d.Inst == OutputInst || seen[d.Inst] {
				continue
			}
			seen[d.Inst] = true
			out = append(out, d.Inst)
		}
	}
	return out
}
