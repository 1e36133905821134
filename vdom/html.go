package vdom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TextTag marks a pure text node with no element wrapper.
const TextTag = "#text"

// ErrUnsupportedTag is returned when a tree contains a tag the renderers
// do not know how to produce.
var ErrUnsupportedTag = errors.New("unsupported tag")

// supportedTags lists the elements both the DOM and the HTML renderers handle.
var supportedTags = map[string]bool{
	"div": true, "p": true, "span": true, "a": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "main": true, "footer": true, "section": true,
	"article": true, "nav": true, "aside": true,
	"ul": true, "ol": true, "li": true,
}

// IsSupported reports whether tag can be rendered.
func IsSupported(tag string) bool {
	return tag == TextTag || supportedTags[tag]
}

// HTML serializes the tree to an HTML fragment.
func HTML(n *VNode) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderHTML writes the tree to w as an HTML fragment. A nil node writes nothing.
func RenderHTML(w io.Writer, n *VNode) error {
	if n == nil {
		return nil
	}

	node, err := toHTMLNode(n)
	if err != nil {
		return err
	}

	if err := html.Render(w, node); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

// toHTMLNode converts a VNode tree to an x/net/html node tree.
func toHTMLNode(n *VNode) (*html.Node, error) {
	if n.Tag == TextTag {
		return &html.Node{Type: html.TextNode, Data: n.Content}, nil
	}
	if !supportedTags[n.Tag] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTag, n.Tag)
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
		Attr:     htmlAttributes(n),
	}

	if n.Content != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}

	for _, child := range n.Children {
		// nil children are placeholders left by conditional rendering
		if child == nil {
			continue
		}
		childNode, err := toHTMLNode(child)
		if err != nil {
			return nil, err
		}
		el.AppendChild(childNode)
	}

	return el, nil
}

// htmlAttributes returns the node's attributes in sorted key order.
// Boolean attributes are written without a value when true and dropped
// when false. Function values are event handlers and never serialized.
func htmlAttributes(n *VNode) []html.Attribute {
	keys := make([]string, 0, len(n.Attributes)+1)
	for k := range n.Attributes {
		if k == "style" && n.Style != nil {
			continue
		}
		keys = append(keys, k)
	}
	if n.Style != nil && !n.Style.IsZero() {
		keys = append(keys, "style")
	}
	sort.Strings(keys)

	attrs := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		if k == "style" && n.Style != nil {
			attrs = append(attrs, html.Attribute{Key: k, Val: n.Style.CSS()})
			continue
		}
		if val, ok := AttributeString(n.Attributes[k]); ok {
			attrs = append(attrs, html.Attribute{Key: k, Val: val})
		}
	}
	return attrs
}

// AttributeString converts an attribute value to its serialized form.
// The boolean result is false when the attribute must be omitted.
func AttributeString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		return "", v
	case string:
		return v, true
	case func():
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}
