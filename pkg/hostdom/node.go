package hostdom

import (
	"sort"
	"strings"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1 // <div>, <svg>, etc.
	TextNode                        // Character data
	CommentNode                     // <!-- placeholder -->
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Node is a host tree node.
type Node struct {
	id       uint64
	typ      NodeType
	tag      string
	ns       string
	data     string
	attrs    map[string]string
	parent   *Node
	children []*Node
}

// ID returns the node's document-unique identifier.
func (n *Node) ID() uint64 { return n.id }

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag name, or "" for text and comment nodes.
func (n *Node) Tag() string { return n.tag }

// Namespace returns the element namespace URI, if any.
func (n *Node) Namespace() string { return n.ns }

// Data returns the character data of a text or comment node.
func (n *Node) Data() string { return n.data }

// Parent returns the parent node or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildAt returns the i-th child or nil.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// AttrNames returns the attribute names in sorted order.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TextContent returns the concatenated text of the node and its
// descendants. Comments contribute nothing, as in the DOM.
func (n *Node) TextContent() string {
	switch n.typ {
	case TextNode:
		return n.data
	case CommentNode:
		return ""
	}
	var b strings.Builder
	n.collectText(&b)
	return b.String()
}

func (n *Node) collectText(b *strings.Builder) {
	for _, c := range n.children {
		switch c.typ {
		case TextNode:
			b.WriteString(c.data)
		case ElementNode:
			c.collectText(b)
		}
	}
}

// indexOf returns the index of child among n's children, or -1.
func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// detach removes n from its current parent, if any.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}
