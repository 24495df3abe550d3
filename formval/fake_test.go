package formval_test

import (
	"strings"

	"parsifal/formval"
)

// fake is a hand-built host node. Property fields model what a scripted
// engine would report, independently of the attributes.
type fake struct {
	kind     formval.Kind
	name     string
	typ      string
	value    *string
	data     string
	text     *string
	attrs    map[string]string
	defaults map[string]string // attributes the host reports but markup never set
	selected bool
	disabled bool
	index    int

	parent   *fake
	children []*fake
	options  []*fake
}

func strp(s string) *string { return &s }

func el(name string, children ...*fake) *fake {
	f := &fake{kind: formval.ElementKind, name: name, attrs: map[string]string{}}
	for _, c := range children {
		f.append(c)
	}
	return f
}

func txt(data string) *fake { return &fake{kind: formval.TextKind, data: data} }

func (f *fake) append(c *fake) *fake {
	c.parent = f
	f.children = append(f.children, c)
	return f
}

func (f *fake) attr(k, v string) *fake {
	f.attrs[k] = v
	return f
}

func (f *fake) Kind() formval.Kind { return f.kind }
func (f *fake) NodeName() string   { return f.name }
func (f *fake) Type() string       { return f.typ }
func (f *fake) Data() string       { return f.data }

func (f *fake) Value() (string, bool) {
	if f.value == nil {
		return "", false
	}
	return *f.value, true
}

func (f *fake) TextContent() (string, bool) {
	if f.text == nil {
		return "", false
	}
	return *f.text, true
}

func (f *fake) Parent() formval.Node {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fake) FirstChild() formval.Node {
	if len(f.children) == 0 {
		return nil
	}
	return f.children[0]
}

func (f *fake) NextSibling() formval.Node {
	if f.parent == nil {
		return nil
	}
	sib := f.parent.children
	for i, c := range sib {
		if c == f && i+1 < len(sib) {
			return sib[i+1]
		}
	}
	return nil
}

func (f *fake) Attribute(name string) (string, bool) {
	name = strings.ToLower(name)
	if v, ok := f.attrs[name]; ok {
		return v, true
	}
	v, ok := f.defaults[name]
	return v, ok
}

func (f *fake) AttributeNode(name string) (formval.Attr, bool) {
	name = strings.ToLower(name)
	if v, ok := f.attrs[name]; ok {
		return formval.Attr{Value: v, Specified: true}, true
	}
	if v, ok := f.defaults[name]; ok {
		return formval.Attr{Value: v}, true
	}
	return formval.Attr{}, false
}

func (f *fake) Selected() bool     { return f.selected }
func (f *fake) Disabled() bool     { return f.disabled }
func (f *fake) SelectedIndex() int { return f.index }

func (f *fake) Options() []formval.Node {
	if len(f.options) == 0 {
		return nil
	}
	out := make([]formval.Node, len(f.options))
	for i, o := range f.options {
		out[i] = o
	}
	return out
}

func option(value *string, label string) *fake {
	o := el("OPTION", txt(label))
	if value != nil {
		o.attr("value", *value)
	}
	return o
}

// selectOf builds a select whose options are direct children, or children
// of an optgroup when they already have a parent.
func selectOf(typ string, index int, opts ...*fake) *fake {
	s := el("SELECT")
	s.typ = typ
	s.index = index
	for _, o := range opts {
		if o.parent == nil {
			s.append(o)
		} else if o.parent.parent == nil {
			s.append(o.parent)
		}
		s.options = append(s.options, o)
	}
	return s
}
