package vdom

import "strings"

// Style holds the inline presentation attributes a node can carry.
// It is plain data: renderers turn it into a CSS declaration list.
// Empty fields are omitted.
type Style struct {
	Alignment       string // text-align
	BackgroundColor string // background-color
	TextColor       string // color
	Padding         string // padding
	FontSize        string // font-size
	FontStyle       string // font-style
}

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool {
	return s == Style{}
}

// CSS renders the style as an inline declaration list, e.g.
// "text-align: center; padding: 10px". Properties always appear in the
// same order so the output is stable across renders.
func (s Style) CSS() string {
	decls := make([]string, 0, 6)
	add := func(prop, value string) {
		if value != "" {
			decls = append(decls, prop+": "+value)
		}
	}

	add("text-align", s.Alignment)
	add("background-color", s.BackgroundColor)
	add("color", s.TextColor)
	add("padding", s.Padding)
	add("font-size", s.FontSize)
	add("font-style", s.FontStyle)

	return strings.Join(decls, "; ")
}
