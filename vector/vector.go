// Package vector loads JSON test vectors (external inputs and initial
// memory) and serializes simulation results back to JSON.
//
package vector

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	calyx "github.com/calyxir/calyx-sub005"
)

// A Vector is one loaded test vector: external input values, an
// initial memory tree and, optionally, the output values a test
// harness expects.
//
type Vector struct {
	Inputs map[string]calyx.Value
	Memory *calyx.Memory
	Expect map[string]int64
}

type rawVector struct {
	Inputs  map[string]int64           `json:"inputs"`
	Memory  map[string]json.RawMessage `json:"memory"`
	Outputs map[string]int64           `json:"outputs"`
}

// Load reads one vector from r. Memory entries may be scalars
// (register values), arrays (storage cells) or nested objects
// (sub-component memory):
//
//	{"inputs": {"left": 3}, "memory": {"r": 0, "m": [1, 2, 3]}}
//
func Load(r io.Reader) (*Vector, error) {
	var raw rawVector
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode vector")
	}
	v := &Vector{
		Inputs: make(map[string]calyx.Value, len(raw.Inputs)),
		Expect: raw.Outputs,
	}
	for name, n := range raw.Inputs {
		v.Inputs[name] = calyx.Settled(n)
	}
	if len(raw.Memory) > 0 {
		mem, err := decodeMemory(raw.Memory)
		if err != nil {
			return nil, err
		}
		v.Memory = mem
	}
	return v, nil
}

func decodeMemory(raw map[string]json.RawMessage) (*calyx.Memory, error) {
	m := &calyx.Memory{Sub: make(map[string]*calyx.Memory, len(raw))}
	for name, msg := range raw {
		sub, err := decodeNode(msg)
		if err != nil {
			return nil, errors.Wrapf(err, "memory entry %q", name)
		}
		m.Sub[name] = sub
	}
	return m, nil
}

func decodeNode(msg json.RawMessage) (*calyx.Memory, error) {
	var n int64
	if err := json.Unmarshal(msg, &n); err == nil {
		return &calyx.Memory{Value: calyx.Settled(n)}, nil
	}
	var cells []int64
	if err := json.Unmarshal(msg, &cells); err == nil {
		return &calyx.Memory{Cells: cells}, nil
	}
	var sub map[string]json.RawMessage
	if err := json.Unmarshal(msg, &sub); err != nil {
		return nil, errors.New("expected number, array or object")
	}
	return decodeMemory(sub)
}

type rawResult struct {
	Outputs map[string]*int64      `json:"outputs"`
	Memory  map[string]interface{} `json:"memory,omitempty"`
}

// Report serializes a simulation result as JSON: final output port
// values (null for ports left absent) and the memory tree in the same
// shape Load accepts.
//
func Report(res *calyx.Result) ([]byte, error) {
	raw := rawResult{Outputs: make(map[string]*int64, len(res.Outputs))}
	for name, v := range res.Outputs {
		if n, ok := v.Observed(); ok {
			m := n
			raw.Outputs[name] = &m
		} else {
			raw.Outputs[name] = nil
		}
	}
	if res.Memory != nil {
		raw.Memory = encodeMemory(res.Memory)
	}
	b, err := json.MarshalIndent(&raw, "", "  ")
	return b, errors.Wrap(err, "encode result")
}

func encodeMemory(m *calyx.Memory) map[string]interface{} {
	out := make(map[string]interface{}, len(m.Sub))
	for name, sub := range m.Sub {
		switch {
		case len(sub.Sub) > 0:
			out[name] = encodeMemory(sub)
		case sub.Cells != nil:
			out[name] = sub.Cells
		default:
			if n, ok := sub.Value.Observed(); ok {
				out[name] = n
			}
		}
	}
	return out
}
