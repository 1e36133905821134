//go:build js || wasm
// +build js wasm

package vdom

import (
	"fmt"
	"syscall/js"
)

// DOMSurface renders trees into the browser document under the first
// element matching a CSS selector.
type DOMSurface struct {
	selector string
}

// NewDOMSurface creates a surface bound to the mount selector, e.g. "#app".
func NewDOMSurface(selector string) *DOMSurface {
	return &DOMSurface{selector: selector}
}

// Mount clears the mount element and renders the tree fresh.
func (s *DOMSurface) Mount(tree *VNode) error {
	mount, err := s.mountElement()
	if err != nil {
		return err
	}

	mount.Set("innerHTML", "")
	if tree == nil {
		return nil
	}

	el, err := createElement(tree)
	if err != nil {
		return err
	}
	mount.Call("appendChild", el)
	return nil
}

// Patch updates the DOM by comparing old and new trees and applying minimal changes.
func (s *DOMSurface) Patch(prev, next *VNode) error {
	mount, err := s.mountElement()
	if err != nil {
		return err
	}

	rootElement := mount.Get("firstChild")
	if prev == nil || !rootElement.Truthy() {
		// No existing DOM, just render fresh
		return s.Mount(next)
	}

	return patchElement(rootElement, prev, next)
}

// Clear removes everything under the mount element.
func (s *DOMSurface) Clear() error {
	mount, err := s.mountElement()
	if err != nil {
		return err
	}
	mount.Set("innerHTML", "")
	return nil
}

func (s *DOMSurface) mountElement() (js.Value, error) {
	if s.selector == "" {
		return js.Undefined(), fmt.Errorf("empty mount selector")
	}

	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return js.Undefined(), fmt.Errorf("document is not available")
	}

	mount := doc.Call("querySelector", s.selector)
	if !mount.Truthy() {
		return js.Undefined(), fmt.Errorf("mount element not found for selector %q", s.selector)
	}
	return mount, nil
}

// setAttributes applies the node's attributes and inline style to an element.
func setAttributes(el js.Value, n *VNode) {
	for k, v := range n.Attributes {
		if k == "style" && n.Style != nil {
			continue
		}
		if val, ok := AttributeString(v); ok {
			el.Call("setAttribute", k, val)
		}
	}
	if n.Style != nil && !n.Style.IsZero() {
		el.Call("setAttribute", "style", n.Style.CSS())
	}
}

func createElement(n *VNode) (js.Value, error) {
	doc := js.Global().Get("document")

	if n.Tag == TextTag {
		return doc.Call("createTextNode", n.Content), nil
	}
	if !supportedTags[n.Tag] {
		return js.Undefined(), fmt.Errorf("%w: %q", ErrUnsupportedTag, n.Tag)
	}

	el := doc.Call("createElement", n.Tag)
	setAttributes(el, n)

	if n.Content != "" {
		el.Set("textContent", n.Content)
	}

	for _, child := range n.Children {
		if child == nil {
			continue
		}
		childEl, err := createElement(child)
		if err != nil {
			return js.Undefined(), err
		}
		el.Call("appendChild", childEl)
	}

	return el, nil
}

// patchElement updates a single DOM element based on VDOM differences.
func patchElement(domElement js.Value, oldVNode, newVNode *VNode) error {
	// Different component or different tag: replace the entire subtree
	keysDiffer := oldVNode.ComponentKey != "" && newVNode.ComponentKey != "" &&
		oldVNode.ComponentKey != newVNode.ComponentKey
	if keysDiffer || oldVNode.Tag != newVNode.Tag {
		newElement, err := createElement(newVNode)
		if err != nil {
			return err
		}
		parent := domElement.Get("parentNode")
		if parent.Truthy() {
			parent.Call("replaceChild", newElement, domElement)
		}
		return nil
	}

	if newVNode.Tag == TextTag {
		if oldVNode.Content != newVNode.Content {
			domElement.Set("nodeValue", newVNode.Content)
		}
		return nil
	}

	patchAttributes(domElement, oldVNode, newVNode)

	// Setting textContent wipes out all child nodes, so only do it for leaves
	if len(newVNode.Children) == 0 && oldVNode.Content != newVNode.Content {
		domElement.Set("textContent", newVNode.Content)
	}

	return patchChildren(domElement, oldVNode.Children, newVNode.Children)
}

// patchAttributes updates the attributes of a DOM element.
func patchAttributes(domElement js.Value, oldVNode, newVNode *VNode) {
	for key := range oldVNode.Attributes {
		if _, exists := newVNode.Attributes[key]; !exists {
			domElement.Call("removeAttribute", key)
		}
	}

	for key, value := range newVNode.Attributes {
		if key == "style" && newVNode.Style != nil {
			continue
		}
		if oldVNode.Attributes != nil && oldVNode.Attributes[key] == value {
			continue
		}
		if val, ok := AttributeString(value); ok {
			domElement.Call("setAttribute", key, val)
		} else {
			domElement.Call("removeAttribute", key)
		}
	}

	oldCSS, newCSS := "", ""
	if oldVNode.Style != nil {
		oldCSS = oldVNode.Style.CSS()
	}
	if newVNode.Style != nil {
		newCSS = newVNode.Style.CSS()
	}
	switch {
	case newCSS == oldCSS:
	case newCSS == "":
		domElement.Call("removeAttribute", "style")
	default:
		domElement.Call("setAttribute", "style", newCSS)
	}
}

// patchChildren updates the children of a DOM element.
// Children are matched by index against the element children only, so
// text content set on the parent does not shift positions.
func patchChildren(domElement js.Value, oldChildren, newChildren []*VNode) error {
	oldChildren = compact(oldChildren)
	newChildren = compact(newChildren)

	oldLen := len(oldChildren)
	newLen := len(newChildren)
	minLen := min(oldLen, newLen)

	domChildren := domElement.Get("children")

	for i := 0; i < minLen; i++ {
		childElement := domChildren.Call("item", i)
		if !childElement.Truthy() {
			continue
		}
		if err := patchElement(childElement, oldChildren[i], newChildren[i]); err != nil {
			return err
		}
	}

	for i := oldLen; i < newLen; i++ {
		newChild, err := createElement(newChildren[i])
		if err != nil {
			return err
		}
		domElement.Call("appendChild", newChild)
	}

	for i := oldLen - 1; i >= newLen; i-- {
		childElement := domChildren.Call("item", i)
		if childElement.Truthy() {
			domElement.Call("removeChild", childElement)
		}
	}

	return nil
}

func compact(nodes []*VNode) []*VNode {
	out := make([]*VNode, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
