package calyx

import (
	"github.com/pkg/errors"
)

// A Node is one node of a component's control program. The node kinds
// form a closed set; the interpreter rejects anything else as
// malformed control.
//
type Node interface {
	controlNode()
}

// EnableNode activates only the listed sub-instances for one
// evaluator call.
type EnableNode struct{ Insts []string }

// DisableNode deactivates the listed sub-instances for one evaluator
// call.
type DisableNode struct{ Insts []string }

// SeqNode runs its children strictly left to right.
type SeqNode struct{ Children []Node }

// ParNode runs its children with no ordering guarantee. The only
// promise made to observers is that all children's writes end up in
// the resulting state, or a wiring conflict is raised.
type ParNode struct{ Children []Node }

// IfNode branches on a condition port. An absent condition skips the
// node entirely, modeling "condition not yet ready".
type IfNode struct {
	Cond PortRef
	Then Node
	Else Node
}

// WhileNode repeats its body while the condition port observes
// non-zero. As with IfNode, an absent condition means "not yet
// ready", not false.
type WhileNode struct {
	Cond PortRef
	Body Node
}

// IfEnabledNode branches like IfNode but treats an absent condition
// as false. Use it when the condition is driven by a combinational
// path that was only just activated.
type IfEnabledNode struct {
	Cond PortRef
	Then Node
	Else Node
}

func (*EnableNode) controlNode()    {}
func (*DisableNode) controlNode()   {}
func (*SeqNode) controlNode()       {}
func (*ParNode) controlNode()       {}
func (*IfNode) controlNode()        {}
func (*WhileNode) controlNode()     {}
func (*IfEnabledNode) controlNode() {}

// Enable returns a control leaf activating only the named
// sub-instances.
func Enable(insts ...string) Node { return &EnableNode{Insts: insts} }

// Disable returns a control leaf deactivating the named
// sub-instances. Disable() with no arguments activates everything.
func Disable(insts ...string) Node { return &DisableNode{Insts: insts} }

// Seq returns the sequential composition of the given nodes.
func Seq(children ...Node) Node { return &SeqNode{Children: children} }

// Par returns the parallel composition of the given nodes.
func Par(children ...Node) Node { return &ParNode{Children: children} }

// If returns a conditional on the port named by cond ("inst.port", or
// a bare toplevel input name). It panics on a malformed reference.
func If(cond string, then, els Node) Node {
	return &IfNode{Cond: MustRef(cond), Then: then, Else: els}
}

// While returns a loop on the port named by cond. It panics on a
// malformed reference.
func While(cond string, body Node) Node {
	return &WhileNode{Cond: MustRef(cond), Body: body}
}

// IfEnabled returns a conditional that treats an absent condition as
// false. It panics on a malformed reference.
func IfEnabled(cond string, then, els Node) Node {
	return &IfEnabledNode{Cond: MustRef(cond), Then: then, Else: els}
}

// MustRef parses an "instance.port" reference and panics on error.
//
func MustRef(s string) PortRef {
	r, err := ParseRef(s)
	if err != nil {
		panic(err)
	}
	return r
}

// readCond reads a condition port from the tuple, chasing split
// aliases to the real instance name.
//
func (c *Component) readCond(t *Tuple, ref PortRef) Value {
	if ref.Inst != InputInst && ref.Inst != OutputInst {
		ref.Inst = c.resolveAlias(ref.Inst)
	}
	return t.read(ref)
}

// astStep interprets one control node, threading the execution tuple.
//
func (c *Component) astStep(n Node, t *Tuple, onStep StepFn) (*Tuple, error) {
	switch n := n.(type) {
	case *EnableNode:
		// Enable(names) is Disable(all sub-instances - names).
		inactive := make(map[string]bool, len(c.Order))
		for _, name := range c.Order {
			inactive[name] = true
		}
		for _, name := range n.Insts {
			delete(inactive, c.resolveAlias(name))
		}
		return c.leaf(t, inactive, onStep)

	case *DisableNode:
		inactive := make(map[string]bool, len(n.Insts))
		for _, name := range n.Insts {
			inactive[c.resolveAlias(name)] = true
		}
		return c.leaf(t, inactive, onStep)

	case *SeqNode:
		base := t.Inactive
		cur := t
		for _, ch := range n.Children {
			var err error
			cur, err = c.astStep(ch, cur.withInactive(base), onStep)
			if err != nil {
				return nil, err
			}
			cur.History = append(cur.History, cur.snapshot())
		}
		return cur, nil

	case *ParNode:
		// Every child runs against the same starting state, and the
		// children's writes are merged strictly: two branches asserting
		// different values on the same port raise a wiring conflict
		// rather than racing. Memory and history thread through.
		merged := t.State
		mem := t.Memory
		hist := t.History
		for _, ch := range n.Children {
			ct, err := c.astStep(ch, &Tuple{
				Inputs:   t.Inputs,
				Inactive: t.Inactive,
				State:    t.State,
				Memory:   mem,
				History:  hist,
			}, onStep)
			if err != nil {
				return nil, err
			}
			if merged, err = merged.strictUnion(ct.State); err != nil {
				return nil, errors.Wrap(err, c.Name)
			}
			mem = ct.Memory
			hist = ct.History
		}
		return &Tuple{
			Inputs:   t.Inputs,
			Inactive: t.Inactive,
			State:    merged,
			Memory:   mem,
			History:  hist,
		}, nil

	case *IfNode:
		v := c.readCond(t, n.Cond)
		if v.IsAbsent() {
			return t, nil
		}
		if v.Truthy() {
			return c.astStep(n.Then, t, onStep)
		}
		if n.Else == nil {
			return t, nil
		}
		return c.astStep(n.Else, t, onStep)

	case *WhileNode:
		cur := t
		for {
			v := c.readCond(cur, n.Cond)
			if v.IsAbsent() || !v.Truthy() {
				return cur, nil
			}
			var err error
			cur, err = c.astStep(n.Body, cur, onStep)
			if err != nil {
				return nil, err
			}
		}

	case *IfEnabledNode:
		v := c.readCond(t, n.Cond)
		if v.Truthy() {
			return c.astStep(n.Then, t, onStep)
		}
		if n.Else == nil {
			return t, nil
		}
		return c.astStep(n.Else, t, onStep)
	}
	return nil, errors.WithStack(&MalformedControlError{Component: c.Name, Node: n})
}
