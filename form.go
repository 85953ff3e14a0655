package trac64

import (
	"fmt"
	"strings"
)

// Marker is a numbered placeholder inside a form body, created by ss and
// filled by cl.
type Marker int

// Part is either a literal text chunk (type string) or a Marker.
type Part interface{}

// Form is a named sequence of Parts, in the order they appear in the body.
type Form []Part

// store is the insertion-order-preserving mapping from form name to body.
// Forms persist across calls to Execute.
type store struct {
	names []string
	forms map[string]Form
}

func newStore() *store {
	return &store{forms: make(map[string]Form)}
}

// define sets forms[name] to a single literal chunk, dropping any markers
// that a prior ss had installed. Registers name in insertion order the first
// time it is seen.
func (s *store) define(name, body string) {
	if name == "" {
		return
	}
	if _, exists := s.forms[name]; !exists {
		s.names = append(s.names, name)
	}
	s.forms[name] = Form{body}
}

func (s *store) lookup(name string) (Form, bool) {
	f, ok := s.forms[name]
	return f, ok
}

// replace installs Marker(n) wherever pattern occurs in form's literal
// chunks, left to right, non-overlapping. An empty pattern is a no-op (the
// caller is still responsible for preserving n's ordinal position).
func (s *store) replace(name, pattern string, n int) {
	if pattern == "" {
		return
	}
	body, ok := s.forms[name]
	if !ok {
		return
	}
	s.forms[name] = segment(body, pattern, n)
}

// segment rewrites body, substituting Marker(n) for each non-overlapping
// occurrence of pattern within literal chunks. Matches never cross existing
// markers. Adjacent literal chunks produced by the rewrite are merged, and
// empty literal chunks are dropped.
func segment(body Form, pattern string, n int) Form {
	out := make(Form, 0, len(body))
	for _, part := range body {
		lit, ok := part.(string)
		if !ok {
			out = append(out, part)
			continue
		}
		out = appendSegmented(out, lit, pattern, n)
	}
	return mergeLiterals(out)
}

func appendSegmented(out Form, lit, pattern string, n int) Form {
	i := 0
	for {
		j := strings.Index(lit[i:], pattern)
		if j < 0 {
			out = append(out, lit[i:])
			return out
		}
		j += i
		out = append(out, lit[i:j], Marker(n))
		i = j + len(pattern)
	}
}

func mergeLiterals(in Form) Form {
	out := make(Form, 0, len(in))
	for _, part := range in {
		lit, ok := part.(string)
		if !ok {
			out = append(out, part)
			continue
		}
		if lit == "" {
			continue
		}
		if n := len(out); n > 0 {
			if prev, ok := out[n-1].(string); ok {
				out[n-1] = prev + lit
				continue
			}
		}
		out = append(out, lit)
	}
	return out
}

// allNames returns all form names, in insertion order.
func (s *store) allNames() []string {
	return s.names
}

// delete removes a named form if present; an empty name is a no-op.
func (s *store) delete(name string) {
	if name == "" {
		return
	}
	if _, ok := s.forms[name]; !ok {
		return
	}
	delete(s.forms, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// renderForm renders a form body for display, without filling markers from
// any argument list: literal chunks are shown verbatim, Marker(n) as "#<n>".
func renderForm(body Form) string {
	var sb strings.Builder
	for _, part := range body {
		switch p := part.(type) {
		case string:
			sb.WriteString(p)
		case Marker:
			fmt.Fprintf(&sb, "#%d", int(p))
		}
	}
	return sb.String()
}

// materialize flattens a form body into a single string, filling Marker(k)
// from args[k-1] when present, else the empty string. Excess args are
// ignored; missing markers yield "".
func materialize(body Form, args []string) string {
	var sb strings.Builder
	for _, part := range body {
		switch p := part.(type) {
		case string:
			sb.WriteString(p)
		case Marker:
			if i := int(p) - 1; i >= 0 && i < len(args) {
				sb.WriteString(args[i])
			}
		}
	}
	return sb.String()
}
