package formval

// Kind is the node-kind discriminant a host reports for a Node.
type Kind int

const (
	OtherKind Kind = iota
	ElementKind
	DocumentKind
	FragmentKind
	TextKind
	CDATAKind
)

func (k Kind) String() string {
	switch k {
	case ElementKind:
		return "element"
	case DocumentKind:
		return "document"
	case FragmentKind:
		return "fragment"
	case TextKind:
		return "text"
	case CDATAKind:
		return "cdata"
	default:
		return "other"
	}
}

// Attr is the low-level attribute node a host hands out. Specified is false
// when the host synthesised the attribute from a default rather than markup.
type Attr struct {
	Value     string
	Specified bool
}

// Node is the read-only view of a host tree the resolver works on. The host
// owns every Node; nothing in this package mutates one.
//
// Methods that do not apply to a node kind return their zero value: an
// element without options returns nil from Options, a text node returns ""
// from NodeName-dependent accessors, and so on.
type Node interface {
	Kind() Kind
	// NodeName is the tag name for elements, in whatever case the host uses.
	NodeName() string
	// Type is the control's type property, or "" when the node has none.
	Type() string
	// Value is the native value property. ok is false when the host reports
	// null or has no such property.
	Value() (v string, ok bool)
	// Data is the character data of text and CDATA nodes.
	Data() string
	// TextContent is the host's own text-content primitive, if it has one.
	TextContent() (s string, ok bool)

	Parent() Node
	FirstChild() Node
	NextSibling() Node

	// Attribute is the high-level attribute getter.
	Attribute(name string) (v string, ok bool)
	// AttributeNode is the lower-level accessor used on hosts that conflate
	// attributes and properties.
	AttributeNode(name string) (Attr, bool)

	Selected() bool
	Disabled() bool
	Options() []Node
	SelectedIndex() int
}
