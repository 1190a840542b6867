package vdom

import "strings"

// SVGNamespace is applied by H to "svg" elements and their descendants.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Attr is a single attribute passed to H. The attribute "key" sets the
// node key instead of an attribute.
type Attr struct {
	Key   string
	Value string
}

// ClassToggle toggles a class through the attrs module.
type ClassToggle struct {
	Name string
	On   bool
}

// Namespace sets Data.NS when passed to H.
type Namespace string

// Key returns an Attr that sets the node key.
func Key(k string) Attr {
	return Attr{Key: "key", Value: k}
}

// A returns an attribute argument for H.
func A(name, value string) Attr {
	return Attr{Key: name, Value: value}
}

// Class returns a class toggle argument for H.
func Class(name string, on bool) ClassToggle {
	return ClassToggle{Name: name, On: on}
}

// H builds an element node from sel and a variadic argument list.
//
// Arguments can be: nil (ignored), Attr, []Attr, ClassToggle, Namespace,
// *Hooks, *Data, *VNode, []*VNode or string. A lone string becomes the
// node's text; strings mixed with child nodes become text children. A nil
// *VNode is kept as a hole.
//
// H also puts "svg" subtrees in the SVG namespace, except below a
// foreignObject.
func H(sel string, args ...any) *VNode {
	v := &VNode{Sel: sel}
	var texts []string
	textOnly := true

	data := func() *Data {
		if v.Data == nil {
			v.Data = &Data{}
		}
		return v.Data
	}
	addAttr := func(a Attr) {
		if a.Key == "" {
			return
		}
		if a.Key == "key" {
			v.Key = a.Value
			return
		}
		d := data()
		if d.Attrs == nil {
			d.Attrs = make(map[string]string)
		}
		d.Attrs[a.Key] = a.Value
	}

	for _, arg := range args {
		switch a := arg.(type) {
		case nil:
			continue
		case Attr:
			addAttr(a)
		case []Attr:
			for _, attr := range a {
				addAttr(attr)
			}
		case ClassToggle:
			d := data()
			if d.Class == nil {
				d.Class = make(map[string]bool)
			}
			d.Class[a.Name] = a.On
		case Namespace:
			data().NS = string(a)
		case *Hooks:
			data().Hooks = a
		case *Data:
			mergeData(data(), a)
		case *VNode:
			textOnly = false
			v.Children = append(v.Children, a)
		case []*VNode:
			textOnly = false
			if v.Children == nil {
				v.Children = make([]*VNode, 0, len(a))
			}
			v.Children = append(v.Children, a...)
		case string:
			texts = append(texts, a)
			v.Children = append(v.Children, Text(a))
		}
	}

	if textOnly && len(texts) > 0 {
		v.Children = nil
		v.SetText(strings.Join(texts, ""))
	}

	if isSVG(sel) {
		addNS(v)
	}
	return v
}

// Text returns a bare text node.
func Text(s string) *VNode {
	return &VNode{Text: s, HasText: true}
}

// Comment returns a comment placeholder node.
func Comment(s string) *VNode {
	return &VNode{Sel: CommentSel, Text: s, HasText: true}
}

func mergeData(dst, src *Data) {
	if src == nil {
		return
	}
	if src.NS != "" {
		dst.NS = src.NS
	}
	if src.Hooks != nil {
		dst.Hooks = src.Hooks
	}
	if src.Thunk != nil {
		dst.Thunk = src.Thunk
	}
	for k, val := range src.Attrs {
		if dst.Attrs == nil {
			dst.Attrs = make(map[string]string, len(src.Attrs))
		}
		dst.Attrs[k] = val
	}
	for k, on := range src.Class {
		if dst.Class == nil {
			dst.Class = make(map[string]bool, len(src.Class))
		}
		dst.Class[k] = on
	}
	for k, val := range src.Ext {
		if dst.Ext == nil {
			dst.Ext = make(map[string]any, len(src.Ext))
		}
		dst.Ext[k] = val
	}
}

func isSVG(sel string) bool {
	return strings.HasPrefix(sel, "svg") &&
		(len(sel) == 3 || sel[3] == '.' || sel[3] == '#')
}

func addNS(v *VNode) {
	if v.Data == nil {
		v.Data = &Data{}
	}
	v.Data.NS = SVGNamespace
	if ParseSelector(v.Sel).Tag == "foreignObject" {
		return
	}
	for _, ch := range v.Children {
		if ch != nil && ch.Sel != "" && ch.Sel != CommentSel {
			addNS(ch)
		}
	}
}
