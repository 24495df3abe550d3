package formval

import "strings"

// parseOption yields the value attribute, or the option's trimmed text when
// no value attribute is set.
func parseOption(r *Resolver, n Node) (Value, bool) {
	if v, ok := r.attribute(n, "value"); ok {
		return StringValue(v), true
	}
	return StringValue(Trim(Text(n))), true
}

// parseSelect walks the options that can contribute to the control's value.
// A select-one, or any select with a negative selectedIndex, only looks at
// the option at selectedIndex; a negative index inspects nothing.
func parseSelect(r *Resolver, n Node) (Value, bool) {
	options := n.Options()
	index := n.SelectedIndex()
	one := n.Type() == "select-one" || index < 0

	var start, end int
	switch {
	case index < 0:
		start, end = 0, 0
	case one:
		start, end = index, index+1
	default:
		start, end = 0, len(options)
	}
	if end > len(options) {
		end = len(options)
	}

	values := []string{}
	for i := start; i < end; i++ {
		opt := options[i]
		if opt == nil || !r.included(opt, i == index) {
			continue
		}
		v := r.Get(opt)
		if one {
			return v, true
		}
		values = append(values, v.Strings()...)
	}
	if one {
		return Value{}, false
	}
	return ListValue(values), true
}

// included reports whether opt contributes to its select's value. current
// marks the option at selectedIndex, which counts even when the host did not
// refresh its selected state after a form reset.
func (r *Resolver) included(opt Node, current bool) bool {
	if !opt.Selected() && !current {
		return false
	}
	if r.flags.Disabled {
		if opt.Disabled() {
			return false
		}
	} else if _, ok := opt.Attribute("disabled"); ok {
		return false
	}
	if p := opt.Parent(); p != nil && p.Disabled() && strings.EqualFold(p.NodeName(), "optgroup") {
		return false
	}
	return true
}

// parseCheckable patches engines that report "" instead of "on" for
// checkboxes and radios without a value attribute.
func parseCheckable(r *Resolver, n Node) (Value, bool) {
	if v, ok := r.attribute(n, "value"); ok {
		return StringValue(v), true
	}
	return StringValue("on"), true
}
