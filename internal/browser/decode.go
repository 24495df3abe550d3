package browser

import (
	"errors"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"parsifal/formval"
)

var errBadProbe = errors.New("probe result is not a JSON object")

// DecodeFlags reads the probe's JSON result. Keys that are missing or not
// booleans count as false.
func DecodeFlags(raw []byte) (formval.Flags, error) {
	if !gjson.ValidBytes(raw) {
		return formval.Flags{}, errBadProbe
	}
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		return formval.Flags{}, errBadProbe
	}
	flag := func(key string) bool {
		v := res.Get(key)
		return v.Type == gjson.True
	}
	return formval.Flags{
		On:         flag("on"),
		Disabled:   flag("disabled"),
		Attributes: flag("attributes"),
		XML:        flag("xml"),
		HTML:       flag("html"),
	}, nil
}

// FromCDP converts a DevTools DOM snapshot into an html tree. xml reports
// whether the snapshot is of an XML document.
func FromCDP(root *cdp.Node) (doc *html.Node, xml bool) {
	if root == nil {
		return nil, false
	}
	n := convert(root)
	if n == nil {
		return nil, false
	}
	if n.Type != html.DocumentNode {
		wrapper := &html.Node{Type: html.DocumentNode}
		wrapper.AppendChild(n)
		n = wrapper
	}
	return n, root.XMLVersion != ""
}

func convert(c *cdp.Node) *html.Node {
	var n *html.Node
	switch c.NodeType {
	case cdp.NodeTypeDocument:
		n = &html.Node{Type: html.DocumentNode}
	case cdp.NodeTypeDocumentType:
		return &html.Node{Type: html.DoctypeNode, Data: c.NodeName}
	case cdp.NodeTypeText, cdp.NodeTypeCDATA:
		return &html.Node{Type: html.TextNode, Data: c.NodeValue}
	case cdp.NodeTypeComment:
		return &html.Node{Type: html.CommentNode, Data: c.NodeValue}
	case cdp.NodeTypeElement:
		n = element(c)
	default:
		return nil
	}
	for _, child := range c.Children {
		if cn := convert(child); cn != nil {
			n.AppendChild(cn)
		}
	}
	return n
}

func element(c *cdp.Node) *html.Node {
	name := c.LocalName
	if name == "" {
		name = strings.ToLower(c.NodeName)
	}
	n := &html.Node{Type: html.ElementNode, Data: name}
	if c.IsSVG {
		n.Namespace = "svg"
	} else {
		n.DataAtom = atom.Lookup([]byte(name))
	}
	for i := 0; i+1 < len(c.Attributes); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: c.Attributes[i], Val: c.Attributes[i+1]})
	}
	return n
}
