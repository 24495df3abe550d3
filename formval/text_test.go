package formval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parsifal/formval"
)

func TestTrim(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"right", "foo   ", "foo"},
		{"left", "   foo", "foo"},
		{"both", "  foo  ", "foo"},
		{"untouched", "foo", "foo"},
		{"empty", "", ""},
		{"only space", " \t\n ", ""},
		{"bom and nbsp", "\uFEFF\u00A0 foo\u00A0\uFEFF", "foo"},
		{"interior kept", "  foo  bar ", "foo  bar"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := formval.Trim(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, formval.Trim(got), "Trim must be idempotent")
		})
	}
}

func TestTextFromTextNode(t *testing.T) {
	assert.Equal(t, "foo", formval.Text(txt("foo")))
}

func TestTextFromFragment(t *testing.T) {
	frag := &fake{kind: formval.FragmentKind}
	frag.append(txt("bar"))
	assert.Equal(t, "bar", formval.Text(frag))
}

func TestTextRecursesInDocumentOrder(t *testing.T) {
	root := el("div",
		txt("a"),
		el("span", txt("b"), el("em", txt("c"))),
		&fake{kind: formval.CDATAKind, data: "d"},
		&fake{kind: formval.OtherKind, data: "comment"},
		txt("e"),
	)
	assert.Equal(t, "abcde", formval.Text(root))
}

func TestTextPrefersTextContent(t *testing.T) {
	root := el("div", txt("walked"))
	root.text = strp("native")
	assert.Equal(t, "native", formval.Text(root))

	root.text = strp("")
	assert.Equal(t, "", formval.Text(root), "an empty text-content string still wins")
}

func TestTextOtherKinds(t *testing.T) {
	assert.Equal(t, "", formval.Text(&fake{kind: formval.OtherKind, data: "x"}))
	assert.Equal(t, "", formval.Text(nil))
}
