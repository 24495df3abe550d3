// Package htmlnode exposes golang.org/x/net/html parse trees as formval
// nodes. Control properties are derived from markup the way a browser
// initialises them for a freshly parsed document.
package htmlnode

import (
	"strings"

	"golang.org/x/net/html"

	"parsifal/formval"
)

const fragmentData = "#document-fragment"

type node struct {
	n *html.Node
}

// Wrap returns the formval view of n, or nil when n is nil.
func Wrap(n *html.Node) formval.Node {
	if n == nil {
		return nil
	}
	return node{n: n}
}

// Unwrap returns the html node behind a Node produced by this package.
func Unwrap(n formval.Node) (*html.Node, bool) {
	w, ok := n.(node)
	if !ok {
		return nil, false
	}
	return w.n, true
}

// Fragment groups detached nodes, as returned by html.ParseFragment, under a
// document-fragment node.
func Fragment(nodes []*html.Node) formval.Node {
	frag := &html.Node{Type: html.DocumentNode, Data: fragmentData}
	for _, c := range nodes {
		if c == nil || c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
			continue
		}
		frag.AppendChild(c)
	}
	return node{n: frag}
}

func (w node) Kind() formval.Kind {
	switch w.n.Type {
	case html.ElementNode:
		return formval.ElementKind
	case html.DocumentNode:
		if w.n.Data == fragmentData {
			return formval.FragmentKind
		}
		return formval.DocumentKind
	case html.TextNode:
		return formval.TextKind
	}
	return formval.OtherKind
}

func (w node) NodeName() string {
	switch w.n.Type {
	case html.ElementNode:
		if w.n.Namespace == "" {
			return strings.ToUpper(w.n.Data)
		}
		return w.n.Data
	case html.DocumentNode:
		if w.n.Data == fragmentData {
			return fragmentData
		}
		return "#document"
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DoctypeNode:
		return w.n.Data
	}
	return ""
}

func (w node) tag() string {
	if w.n.Type != html.ElementNode || w.n.Namespace != "" {
		return ""
	}
	return strings.ToLower(w.n.Data)
}

func (w node) Data() string {
	if w.n.Type == html.TextNode {
		return w.n.Data
	}
	return ""
}

// TextContent is never offered; x/net/html keeps no cached text.
func (w node) TextContent() (string, bool) { return "", false }

func (w node) Parent() formval.Node      { return Wrap(w.n.Parent) }
func (w node) FirstChild() formval.Node  { return Wrap(w.n.FirstChild) }
func (w node) NextSibling() formval.Node { return Wrap(w.n.NextSibling) }

func (w node) Attribute(name string) (string, bool) {
	if w.n.Type != html.ElementNode {
		return "", false
	}
	return lookupAttr(w.n, name)
}

// AttributeNode always reports parsed attributes as specified.
func (w node) AttributeNode(name string) (formval.Attr, bool) {
	v, ok := w.Attribute(name)
	if !ok {
		return formval.Attr{}, false
	}
	return formval.Attr{Value: v, Specified: true}, true
}

func (w node) Disabled() bool {
	if w.n.Type != html.ElementNode {
		return false
	}
	return HasAttr(w.n, "disabled")
}

// GetAttr returns the value of the named attribute, matching keys without
// regard to case, or "" when it is missing.
func GetAttr(n *html.Node, name string) string {
	v, _ := lookupAttr(n, name)
	return v
}

// HasAttr reports whether n carries the named attribute.
func HasAttr(n *html.Node, name string) bool {
	_, ok := lookupAttr(n, name)
	return ok
}

func lookupAttr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Namespace == "" && strings.EqualFold(n.Data, tag)
}

// collectText concatenates every text node below n in document order.
func collectText(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(x *html.Node) {
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if isElement(c, "script") {
					continue
				}
				rec(c)
			}
		}
	}
	rec(n)
	return b.String()
}
