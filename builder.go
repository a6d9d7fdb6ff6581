package calyx

import (
	"github.com/pkg/errors"
)

// A Builder assembles an immutable Component from ordinary function
// calls: ports, named sub-instances, connections and a control
// program. It replaces the declarative front-end that authored
// components in the original surface language. Methods chain;
// the first error sticks and is reported by Component().
//
type Builder struct {
	name     string
	in, out  []Port
	parts    map[string]*Component
	order    []string
	splits   map[string]string
	control  Node
	inStubs  map[string]*Component
	outStubs map[string]*Component
	conns    [][2]string
	err      error
}

// NewBuilder starts a component named name with the given input and
// output port specifications (see ParsePorts for the syntax).
//
func NewBuilder(name, ins, outs string) *Builder {
	b := &Builder{
		name:     name,
		parts:    make(map[string]*Component),
		splits:   make(map[string]string),
		inStubs:  make(map[string]*Component),
		outStubs: make(map[string]*Component),
	}
	if name == "" {
		b.err = errors.New("empty component name")
		return b
	}
	var err error
	if b.in, err = ParsePorts(ins); err != nil {
		b.err = errors.Wrap(err, name+" inputs")
		return b
	}
	if b.out, err = ParsePorts(outs); err != nil {
		b.err = errors.Wrap(err, name+" outputs")
		return b
	}
	for _, p := range b.in {
		b.inStubs[p.Name] = InputStub(p.Width)
	}
	for _, p := range b.out {
		b.outStubs[p.Name] = OutputStub(p.Width)
	}
	return b
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Instance adds a named sub-instance of the given component.
//
func (b *Builder) Instance(name string, c *Component) *Builder {
	switch {
	case b.err != nil:
	case !validIdent(name) || name == InputInst || name == OutputInst:
		b.setErr(errors.Errorf("%s: invalid instance name %q", b.name, name))
	case b.parts[name] != nil:
		b.setErr(errors.Errorf("%s: duplicate instance name %q", b.name, name))
	case c == nil:
		b.setErr(errors.Errorf("%s: nil component for instance %q", b.name, name))
	default:
		b.parts[name] = c
		b.order = append(b.order, name)
	}
	return b
}

// Split declares alias as another name for the existing instance
// target, letting connections and control address the same unit under
// two names.
//
func (b *Builder) Split(alias, target string) *Builder {
	switch {
	case b.err != nil:
	case !validIdent(alias) || b.parts[alias] != nil:
		b.setErr(errors.Errorf("%s: invalid split alias %q", b.name, alias))
	default:
		b.splits[alias] = target
	}
	return b
}

// Connect wires src to dst. Both are "instance.port" references; a
// bare name refers to one of the component's own input ports, and
// "output.name" to one of its output ports. For example:
//
//	b.Connect("left", "add.left")
//	b.Connect("add.out", "output.out")
//
func (b *Builder) Connect(src, dst string) *Builder {
	if b.err == nil {
		b.conns = append(b.conns, [2]string{src, dst})
	}
	return b
}

// Control sets the component's control program.
//
func (b *Builder) Control(n Node) *Builder {
	if b.err == nil {
		b.control = n
	}
	return b
}

// Component validates the wiring and control program and returns the
// finished immutable component.
//
func (b *Builder) Component() (*Component, error) {
	if b.err != nil {
		return nil, b.err
	}
	c := &Component{
		Name:   b.name,
		In:     b.in,
		Out:    b.out,
		Parts:  b.parts,
		Order:  b.order,
		Splits: b.splits,
		Graph:  NewGraph(),
	}
	for alias := range b.splits {
		if _, ok := b.parts[c.resolveAlias(alias)]; !ok {
			return nil, errors.Errorf("%s: split %q resolves to no instance", b.name, alias)
		}
	}
	for _, conn := range b.conns {
		if err := b.connect(c, conn[0], conn[1]); err != nil {
			return nil, errors.Wrap(err, b.name)
		}
	}
	if err := b.checkControl(c, b.control); err != nil {
		return nil, errors.Wrap(err, b.name)
	}
	c.Control = b.control
	c.Comb = c.runComb
	if c.Stateful() {
		c.Mem = c.runMem
	}
	return c, nil
}

func (b *Builder) connect(c *Component, src, dst string) error {
	sref, err := ParseRef(src)
	if err != nil {
		return err
	}
	dref, err := ParseRef(dst)
	if err != nil {
		return err
	}
	sw, err := b.refWidth(c, sref, true)
	if err != nil {
		return err
	}
	dw, err := b.refWidth(c, dref, false)
	if err != nil {
		return err
	}
	if sw != dw {
		return errors.Errorf("width mismatch %s(%d) -> %s(%d)", sref, sw, dref, dw)
	}
	// store edges under real instance names so the resolver never
	// chases aliases.
	if sref.Inst != InputInst && sref.Inst != OutputInst {
		sref.Inst = c.resolveAlias(sref.Inst)
	}
	if dref.Inst != InputInst && dref.Inst != OutputInst {
		dref.Inst = c.resolveAlias(dref.Inst)
	}
	c.Graph.Connect(sref, dref, sw)
	return nil
}

// refWidth validates direction and returns the width of the
// referenced port. Sources must be output-capable (an instance output
// or one of the component's own inputs), destinations input-capable.
//
func (b *Builder) refWidth(c *Component, r PortRef, src bool) (int, error) {
	switch r.Inst {
	case InputInst:
		if !src {
			return 0, errors.Errorf("%s: component inputs cannot be driven", r)
		}
		stub, ok := b.inStubs[r.Port]
		if !ok {
			return 0, errors.Errorf("%s: no such input port", r)
		}
		p, _ := stub.OutPort(Wildcard)
		return p.Width, nil
	case OutputInst:
		if src {
			return 0, errors.Errorf("%s: component outputs cannot drive", r)
		}
		stub, ok := b.outStubs[r.Port]
		if !ok {
			return 0, errors.Errorf("%s: no such output port", r)
		}
		p, _ := stub.InPort(Wildcard)
		return p.Width, nil
	}
	sub, ok := b.parts[c.resolveAlias(r.Inst)]
	if !ok {
		return 0, errors.Errorf("%s: no such instance", r)
	}
	if src {
		p, ok := sub.OutPort(r.Port)
		if !ok {
			return 0, errors.Errorf("%s: no such output port on %s", r, sub.Name)
		}
		return p.Width, nil
	}
	p, ok := sub.InPort(r.Port)
	if !ok {
		return 0, errors.Errorf("%s: no such input port on %s", r, sub.Name)
	}
	return p.Width, nil
}

// checkControl verifies that every name and condition reference in
// the control program resolves, so the interpreter never trips over a
// builder mistake at run time.
//
func (b *Builder) checkControl(c *Component, n Node) error {
	if n == nil {
		return nil
	}
	switch n := n.(type) {
	case *EnableNode:
		return b.checkInsts(c, n.Insts)
	case *DisableNode:
		return b.checkInsts(c, n.Insts)
	case *SeqNode:
		for _, ch := range n.Children {
			if err := b.checkControl(c, ch); err != nil {
				return err
			}
		}
	case *ParNode:
		for _, ch := range n.Children {
			if err := b.checkControl(c, ch); err != nil {
				return err
			}
		}
	case *IfNode:
		if err := b.checkCond(c, n.Cond); err != nil {
			return err
		}
		if err := b.checkControl(c, n.Then); err != nil {
			return err
		}
		return b.checkControl(c, n.Else)
	case *WhileNode:
		if err := b.checkCond(c, n.Cond); err != nil {
			return err
		}
		return b.checkControl(c, n.Body)
	case *IfEnabledNode:
		if err := b.checkCond(c, n.Cond); err != nil {
			return err
		}
		if err := b.checkControl(c, n.Then); err != nil {
			return err
		}
		return b.checkControl(c, n.Else)
	default:
		return &MalformedControlError{Component: b.name, Node: n}
	}
	return nil
}

func (b *Builder) checkInsts(c *Component, insts []string) error {
	for _, name := range insts {
		if _, ok := b.parts[c.resolveAlias(name)]; !ok {
			return errors.Errorf("control names unknown instance %q", name)
		}
	}
	return nil
}

func (b *Builder) checkCond(c *Component, ref PortRef) error {
	if ref.Inst == InputInst {
		if _, ok := b.inStubs[ref.Port]; !ok {
			return errors.Errorf("condition %s: no such input port", ref)
		}
		return nil
	}
	sub, ok := b.parts[c.resolveAlias(ref.Inst)]
	if !ok {
		return errors.Errorf("condition %s: no such instance", ref)
	}
	if _, ok := sub.OutPort(ref.Port); !ok {
		if _, ok := sub.InPort(ref.Port); !ok {
			return errors.Errorf("condition %s: no such port on %s", ref, sub.Name)
		}
	}
	return nil
}
