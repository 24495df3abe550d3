package formval

// Flags records the quirks of a host engine. They are probed once, before
// any resolution, and a Resolver keeps its own copy. The zero value selects
// every compensating code path.
type Flags struct {
	// On is true when an unchecked checkbox without a value attribute
	// already reports "on" as its value.
	On bool `json:"on" mapstructure:"on"`
	// Disabled is true when the disabled property of an option is
	// trustworthy, i.e. options inside a disabled select do not report
	// themselves disabled.
	Disabled bool `json:"disabled" mapstructure:"disabled"`
	// Attributes is true when getAttribute never returns property values.
	Attributes bool `json:"attributes" mapstructure:"attributes"`
	XML        bool `json:"xml" mapstructure:"xml"`
	HTML       bool `json:"html" mapstructure:"html"`
}

// Standards describes a current, standards-compliant HTML engine.
func Standards() Flags {
	return Flags{On: true, Disabled: true, Attributes: true, HTML: true}
}

// Legacy describes an engine about which nothing is certified.
func Legacy() Flags {
	return Flags{}
}

// directAttributes reports whether attribute reads can go through the
// high-level getter.
func (f Flags) directAttributes() bool {
	return f.Attributes || !f.HTML
}
