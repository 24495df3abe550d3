// Package formval resolves the effective value of form controls (option,
// select, checkbox, radio and generic inputs) over a host-provided node tree,
// compensating for engines that report control state inconsistently.
package formval

import (
	"strings"
)

// Parser resolves the value of one kind of control. ok is false when the
// parser does not apply, in which case the resolver falls back to the
// node's native value.
type Parser interface {
	Parse(r *Resolver, n Node) (v Value, ok bool)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(r *Resolver, n Node) (Value, bool)

func (f ParserFunc) Parse(r *Resolver, n Node) (Value, bool) { return f(r, n) }

// Option configures a Resolver at construction time.
type Option func(*Resolver)

// WithParser registers p under key, which is matched against a control's
// type or its lower-cased tag name. It replaces a built-in entry of the same
// key.
func WithParser(key string, p Parser) Option {
	return func(r *Resolver) {
		if key == "" || p == nil {
			return
		}
		r.parsers[strings.ToLower(key)] = p
	}
}

// Resolver holds the parser registry built for one set of Flags. It is not
// modified after New returns and may be shared between goroutines.
type Resolver struct {
	flags   Flags
	parsers map[string]Parser
}

// New builds a Resolver for hosts described by flags.
func New(flags Flags, opts ...Option) *Resolver {
	r := &Resolver{
		flags: flags,
		parsers: map[string]Parser{
			"option": ParserFunc(parseOption),
			"select": ParserFunc(parseSelect),
		},
	}
	if !flags.On {
		r.parsers["checkbox"] = ParserFunc(parseCheckable)
		r.parsers["radio"] = ParserFunc(parseCheckable)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Flags returns the capability flags the resolver was built with.
func (r *Resolver) Flags() Flags { return r.flags }

// Has reports whether a parser is registered under key.
func (r *Resolver) Has(key string) bool {
	_, ok := r.parsers[key]
	return ok
}

// Get resolves the effective value of n. It never fails: controls without a
// matching parser, or whose parser does not apply, yield their native value
// with carriage returns removed, and a null value reads as "".
func (r *Resolver) Get(n Node) Value {
	if p := r.lookup(n); p != nil {
		if v, ok := p.Parse(r, n); ok {
			return v
		}
	}
	v, ok := n.Value()
	if !ok {
		return StringValue("")
	}
	return StringValue(strings.ReplaceAll(v, "\r", ""))
}

func (r *Resolver) lookup(n Node) Parser {
	if t := n.Type(); t != "" {
		if p, ok := r.parsers[t]; ok {
			return p
		}
	}
	return r.parsers[strings.ToLower(n.NodeName())]
}

// Attribute returns the named attribute of n, or "" when it is absent.
func (r *Resolver) Attribute(n Node, name string) string {
	v, _ := r.attribute(n, name)
	return v
}

// attribute reads name from n. On HTML hosts that conflate attributes and
// properties only explicitly specified attribute nodes count.
func (r *Resolver) attribute(n Node, name string) (string, bool) {
	if r.flags.directAttributes() {
		return n.Attribute(name)
	}
	a, ok := n.AttributeNode(name)
	if !ok || !a.Specified {
		return "", false
	}
	return a.Value, true
}
