package htmlnode

import (
	"strings"

	"golang.org/x/net/html"

	"parsifal/formval"
)

var inputTypes = map[string]bool{
	"button": true, "checkbox": true, "color": true, "date": true,
	"datetime-local": true, "email": true, "file": true, "hidden": true,
	"image": true, "month": true, "number": true, "password": true,
	"radio": true, "range": true, "reset": true, "search": true,
	"submit": true, "tel": true, "text": true, "time": true, "url": true,
	"week": true,
}

func (w node) Type() string {
	switch w.tag() {
	case "input":
		typ := strings.ToLower(strings.TrimSpace(GetAttr(w.n, "type")))
		if !inputTypes[typ] {
			return "text"
		}
		return typ
	case "select":
		if HasAttr(w.n, "multiple") {
			return "select-multiple"
		}
		return "select-one"
	case "button":
		switch typ := strings.ToLower(strings.TrimSpace(GetAttr(w.n, "type"))); typ {
		case "reset", "button":
			return typ
		}
		return "submit"
	case "textarea", "output", "fieldset":
		return w.tag()
	}
	return ""
}

func (w node) Value() (string, bool) {
	switch w.tag() {
	case "input":
		if v, ok := lookupAttr(w.n, "value"); ok {
			return v, true
		}
		switch w.Type() {
		case "checkbox", "radio":
			return "on", true
		}
		return "", true
	case "option":
		if v, ok := lookupAttr(w.n, "value"); ok {
			return v, true
		}
		return strings.Join(strings.Fields(collectText(w.n)), " "), true
	case "select":
		for i, sel := range selectedness(w.n) {
			if sel {
				return node{n: options(w.n)[i]}.Value()
			}
		}
		return "", true
	case "textarea", "output":
		return collectText(w.n), true
	case "button", "data", "li", "meter", "progress", "param":
		return GetAttr(w.n, "value"), true
	}
	return "", false
}

func (w node) Options() []formval.Node {
	opts := options(w.n)
	if len(opts) == 0 {
		return nil
	}
	out := make([]formval.Node, len(opts))
	for i, o := range opts {
		out[i] = node{n: o}
	}
	return out
}

func (w node) SelectedIndex() int {
	if w.tag() != "select" {
		return -1
	}
	for i, sel := range selectedness(w.n) {
		if sel {
			return i
		}
	}
	return -1
}

func (w node) Selected() bool {
	if w.tag() != "option" {
		return false
	}
	sel := owningSelect(w.n)
	if sel == nil {
		return HasAttr(w.n, "selected")
	}
	for i, o := range options(sel) {
		if o == w.n {
			return selectedness(sel)[i]
		}
	}
	return false
}

// options lists the option elements of a select or datalist in tree order.
// A select owns its option children and those of its optgroup children.
func options(n *html.Node) []*html.Node {
	var out []*html.Node
	switch {
	case isElement(n, "select"):
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isElement(c, "option") {
				out = append(out, c)
			} else if isElement(c, "optgroup") {
				for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
					if isElement(gc, "option") {
						out = append(out, gc)
					}
				}
			}
		}
	case isElement(n, "datalist"):
		var rec func(*html.Node)
		rec = func(x *html.Node) {
			for c := x.FirstChild; c != nil; c = c.NextSibling {
				if isElement(c, "option") {
					out = append(out, c)
				}
				rec(c)
			}
		}
		rec(n)
	}
	return out
}

func owningSelect(opt *html.Node) *html.Node {
	p := opt.Parent
	if isElement(p, "optgroup") {
		p = p.Parent
	}
	if isElement(p, "select") {
		return p
	}
	return nil
}

func optionDisabled(opt *html.Node) bool {
	if HasAttr(opt, "disabled") {
		return true
	}
	return isElement(opt.Parent, "optgroup") && HasAttr(opt.Parent, "disabled")
}

// selectedness reports the selected state of each option of sel after
// parsing. A single select with a display size of one selects the last
// option marked selected, or failing that its first enabled option.
func selectedness(sel *html.Node) []bool {
	opts := options(sel)
	state := make([]bool, len(opts))
	if HasAttr(sel, "multiple") {
		for i, o := range opts {
			state[i] = HasAttr(o, "selected")
		}
		return state
	}
	last := -1
	for i, o := range opts {
		if HasAttr(o, "selected") {
			last = i
		}
	}
	if last >= 0 {
		state[last] = true
		return state
	}
	if displaySize(sel) > 1 {
		return state
	}
	for i, o := range opts {
		if !optionDisabled(o) {
			state[i] = true
			break
		}
	}
	return state
}

func displaySize(sel *html.Node) int {
	raw := strings.TrimSpace(GetAttr(sel, "size"))
	size := 0
	for _, c := range raw {
		if c < '0' || c > '9' {
			break
		}
		size = size*10 + int(c-'0')
		if size > 1<<16 {
			break
		}
	}
	if size == 0 {
		return 1
	}
	return size
}
