package vdom

// VNode represents a virtual DOM node.
type VNode struct {
	Tag          string         // The HTML tag name
	Attributes   map[string]any // The attributes of the node
	Children     []*VNode       // The child nodes
	Content      string         // The text content of the node
	Style        *Style         // Optional inline presentation attributes
	ComponentKey string         // Key of the component that produced this node, if any
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
	}
}

// SetContent updates the Content field of the VNode.
func (v *VNode) SetContent(content string) {
	v.Content = content
}

// WithStyle attaches inline presentation attributes to the node and returns it,
// so constructors can be chained:
//
//	vdom.Paragraph("Powered by synapse labs", nil).WithStyle(vdom.Style{FontStyle: "italic"})
func (v *VNode) WithStyle(s Style) *VNode {
	v.Style = &s
	return v
}

// Paragraph creates a <p> VNode with the given text as its content and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// H1 creates an <h1> heading with the given text.
func H1(text string, attrs map[string]any) *VNode {
	return NewVNode("h1", attrs, nil, text)
}

// H2 creates an <h2> heading with the given text.
func H2(text string, attrs map[string]any) *VNode {
	return NewVNode("h2", attrs, nil, text)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Header creates a <header> section.
func Header(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("header", attrs, children, "")
}

// Main creates a <main> section.
func Main(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("main", attrs, children, "")
}

// Footer creates a <footer> section.
func Footer(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("footer", attrs, children, "")
}

// Text returns the concatenated text content of the node and all of its
// descendants, depth first.
func (v *VNode) Text() string {
	if v == nil {
		return ""
	}
	out := v.Content
	for _, child := range v.Children {
		out += child.Text()
	}
	return out
}

// Find returns the first node in the tree, depth first, whose tag matches.
func (v *VNode) Find(tag string) *VNode {
	if v == nil {
		return nil
	}
	if v.Tag == tag {
		return v
	}
	for _, child := range v.Children {
		if found := child.Find(tag); found != nil {
			return found
		}
	}
	return nil
}
