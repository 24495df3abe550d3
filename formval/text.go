package formval

import (
	"strings"
	"unicode"
)

// Trim strips whitespace, byte-order marks and no-break spaces from both
// ends of s. Interior runs are left alone.
func Trim(s string) string {
	return strings.TrimFunc(s, isTrimmable)
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF' || r == '\u00A0'
}

// Text returns the concatenated text content of n. Container nodes that
// expose a text-content primitive answer with it directly; otherwise the
// children are walked in document order.
func Text(n Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case ElementKind, DocumentKind, FragmentKind:
		if s, ok := n.TextContent(); ok {
			return s
		}
		var b strings.Builder
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			b.WriteString(Text(c))
		}
		return b.String()
	case TextKind, CDATAKind:
		return n.Data()
	}
	return ""
}
