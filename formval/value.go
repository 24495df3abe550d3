package formval

import (
	"encoding/json"
	"strings"
)

// Value is a resolved control value: either a single string or, for
// multi-selects, a sequence of strings.
type Value struct {
	s     string
	list  []string
	multi bool
}

// StringValue wraps a scalar value.
func StringValue(s string) Value { return Value{s: s} }

// ListValue wraps a sequence. A nil slice still yields a sequence.
func ListValue(ss []string) Value {
	if ss == nil {
		ss = []string{}
	}
	return Value{list: ss, multi: true}
}

// IsList reports whether v came from a multi-select.
func (v Value) IsList() bool { return v.multi }

// String returns the scalar, or the sequence joined with commas.
func (v Value) String() string {
	if v.multi {
		return strings.Join(v.list, ",")
	}
	return v.s
}

// Strings returns the sequence, or a one-element slice for a scalar.
func (v Value) Strings() []string {
	if v.multi {
		out := make([]string, len(v.list))
		copy(out, v.list)
		return out
	}
	return []string{v.s}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		return json.Marshal(v.list)
	}
	return json.Marshal(v.s)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*v = ListValue(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*v = StringValue(s)
	return nil
}
