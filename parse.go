package calyx

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ParsePorts parses a port specification string and returns the
// declared ports. A specification is a comma separated list of port
// names, each optionally followed by a width in brackets. Widths
// default to 1. For example:
//
//	ParsePorts("left[32], right[32], go") // three ports, widths 32, 32 and 1
//
func ParsePorts(spec string) ([]Port, error) {
	var out []Port
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	for _, f := range strings.Split(spec, ",") {
		p, err := parsePort(f)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", spec)
		}
		if _, ok := findPort(out, p.Name); ok {
			return nil, errors.Errorf("in %q: duplicate port name %q", spec, p.Name)
		}
		out = append(out, p)
	}
	return out, nil
}

func parsePort(f string) (Port, error) {
	f = strings.TrimSpace(f)
	i := strings.IndexRune(f, '[')
	if i < 0 {
		if !validIdent(f) {
			return Port{}, errors.Errorf("expected port name, got %q", f)
		}
		return Port{Name: f, Width: 1}, nil
	}
	name := f[:i]
	if !validIdent(name) {
		return Port{}, errors.Errorf("expected port name, got %q", name)
	}
	r := f[i+1:]
	j := strings.IndexRune(r, ']')
	if j < 0 || strings.TrimSpace(r[j+1:]) != "" {
		return Port{}, errors.Errorf("missing closing bracket in %q", f)
	}
	w := 0
	for _, c := range r[:j] {
		if c < '0' || c > '9' {
			return Port{}, errors.Errorf("bad width in %q", f)
		}
		w = w*10 + int(c-'0')
	}
	if w < 1 {
		return Port{}, errors.Errorf("width must be positive in %q", f)
	}
	return Port{Name: name, Width: w}, nil
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case r == '#' || unicode.IsDigit(r):
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ParseRef parses an "instance.port" reference. A reference without a
// dot names a port on the enclosing component's input boundary.
//
func ParseRef(s string) (PortRef, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexRune(s, '.')
	if i < 0 {
		if !validIdent(s) {
			return PortRef{}, errors.Errorf("bad port reference %q", s)
		}
		return PortRef{Inst: InputInst, Port: s}, nil
	}
	inst, port := s[:i], s[i+1:]
	if !validIdent(inst) || !validIdent(port) {
		return PortRef{}, errors.Errorf("bad port reference %q", s)
	}
	return PortRef{Inst: inst, Port: port}, nil
}
