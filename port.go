package calyx

// Reserved instance names in a connectivity graph, standing for the
// enclosing component's own input and output ports.
const (
	InputInst  = "input"
	OutputInst = "output"
)

// Wildcard is the port name carried by the boundary stub components.
const Wildcard = "inf#"

// A Port is a named, fixed-width signal endpoint. Ports are immutable;
// identity is by name within the owning component.
//
type Port struct {
	Name  string
	Width int
}

// A PortRef identifies a port on a named sub-instance, or on one of
// the sentinel instances "input" and "output".
//
type PortRef struct {
	Inst string
	Port string
}

func (r PortRef) String() string { return r.Inst + "." + r.Port }

func findPort(ports []Port, name string) (Port, bool) {
	for _, p := range ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}
