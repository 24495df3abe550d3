// Package inspect selects form controls from a parsed document and reports
// their resolved values.
package inspect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andybalholm/cascadia"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"parsifal/formval"
	"parsifal/htmlnode"
	"parsifal/internal/source"
)

// ErrBadSelector wraps selector compilation failures.
var ErrBadSelector = errors.New("inspect: bad selector")

var titleStyle = lipgloss.NewStyle().Bold(true)

// Control is one matched element and its resolved value.
type Control struct {
	Path  string        `json:"path"`
	Tag   string        `json:"tag"`
	Type  string        `json:"type,omitempty"`
	Name  string        `json:"name,omitempty"`
	Value formval.Value `json:"value"`
}

// Report lists the controls of one document.
type Report struct {
	URL      string        `json:"url"`
	Flags    formval.Flags `json:"flags"`
	Controls []Control     `json:"controls"`
}

// Compile parses a CSS selector group.
func Compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadSelector, selector, err)
	}
	return sel, nil
}

// DocumentFlags adjusts flags to the document mode of doc.
func DocumentFlags(flags formval.Flags, doc *source.Document) formval.Flags {
	if doc != nil && doc.XML {
		flags.XML = true
		flags.HTML = false
	}
	return flags
}

// Run resolves every element of doc matching selector.
func Run(doc *source.Document, flags formval.Flags, selector string, logger *log.Logger) (*Report, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("inspect: no document")
	}
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	flags = DocumentFlags(flags, doc)
	r := formval.New(flags)

	rep := &Report{URL: doc.URL, Flags: flags, Controls: []Control{}}
	for _, n := range sel.MatchAll(doc.Root) {
		node := htmlnode.Wrap(n)
		c := Control{
			Path:  path(n),
			Tag:   strings.ToLower(n.Data),
			Type:  node.Type(),
			Name:  htmlnode.GetAttr(n, "name"),
			Value: r.Get(node),
		}
		logger.Debug("resolved", "path", c.Path, "value", c.Value.String())
		rep.Controls = append(rep.Controls, c)
	}
	return rep, nil
}

// WriteJSON writes the report as indented JSON.
func (rep *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteText writes the report as an aligned table.
func (rep *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%d controls)", rep.URL, len(rep.Controls)))); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTYPE\tNAME\tVALUE")
	for _, c := range rep.Controls {
		typ := c.Type
		if typ == "" {
			typ = "-"
		}
		name := c.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Path, typ, name, quote(c.Value))
	}
	return tw.Flush()
}

func quote(v formval.Value) string {
	if !v.IsList() {
		return fmt.Sprintf("%q", v.String())
	}
	parts := v.Strings()
	for i, p := range parts {
		parts[i] = fmt.Sprintf("%q", p)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// path describes n by its ancestry up to the nearest form or id.
func path(n *html.Node) string {
	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		part := strings.ToLower(cur.Data)
		if id := htmlnode.GetAttr(cur, "id"); id != "" {
			parts = append(parts, part+"#"+id)
			break
		}
		if name := htmlnode.GetAttr(cur, "name"); name != "" {
			part += "[name=" + name + "]"
		} else if idx := position(cur); idx > 0 {
			part += fmt.Sprintf(":nth-of-type(%d)", idx)
		}
		parts = append(parts, part)
		if strings.EqualFold(cur.Data, "form") || strings.EqualFold(cur.Data, "body") {
			break
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

// position is the 1-based index of n among same-tag siblings, or 0 when it
// is the only one.
func position(n *html.Node) int {
	idx, total := 0, 0
	if n.Parent == nil {
		return 0
	}
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == n.Data {
			total++
			if c == n {
				idx = total
			}
		}
	}
	if total <= 1 {
		return 0
	}
	return idx
}
