package hostdom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vdomkit/pkg/host"
)

// Document owns a host tree rooted at a <body> element.
// A Document is not safe for concurrent use.
type Document struct {
	body   *Node
	nextID uint64
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newNode(ElementNode)
	d.body.tag = "body"
	return d
}

// Body returns the document's root element.
func (d *Document) Body() *Node {
	return d.body
}

// Mount creates an element with the given tag, appends it to the body and
// returns it. It is the usual starting point for Patcher.PatchElement.
func (d *Document) Mount(tag string) *Node {
	n := d.CreateElement(tag).(*Node)
	d.AppendChild(d.body, n)
	return n
}

// ID returns the identifier of a host node, or 0 for nil or foreign values.
// It is meant to be passed to host.NewRecorder.
func (d *Document) ID(node host.Node) uint64 {
	n, ok := node.(*Node)
	if !ok || n == nil {
		return 0
	}
	return n.id
}

// Lookup finds an attached node by ID.
func (d *Document) Lookup(id uint64) *Node {
	var found *Node
	walk(d.body, func(n *Node) bool {
		if n.id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func (d *Document) newNode(typ NodeType) *Node {
	d.nextID++
	return &Node{id: d.nextID, typ: typ}
}

func mustNode(op string, v host.Node) *Node {
	n, ok := v.(*Node)
	if !ok || n == nil {
		panic(fmt.Sprintf("hostdom: %s: not a hostdom node: %T", op, v))
	}
	return n
}

// CreateElement implements host.Adapter.
func (d *Document) CreateElement(tag string) host.Node {
	n := d.newNode(ElementNode)
	n.tag = tag
	return n
}

// CreateElementNS implements host.Adapter.
func (d *Document) CreateElementNS(ns, tag string) host.Node {
	n := d.newNode(ElementNode)
	n.tag = tag
	n.ns = ns
	return n
}

// CreateTextNode implements host.Adapter.
func (d *Document) CreateTextNode(text string) host.Node {
	n := d.newNode(TextNode)
	n.data = text
	return n
}

// CreateComment implements host.Adapter.
func (d *Document) CreateComment(text string) host.Node {
	n := d.newNode(CommentNode)
	n.data = text
	return n
}

// AppendChild implements host.Adapter.
func (d *Document) AppendChild(parent, child host.Node) {
	d.InsertBefore(parent, child, nil)
}

// InsertBefore implements host.Adapter.
func (d *Document) InsertBefore(parent, child, ref host.Node) {
	p := mustNode("InsertBefore", parent)
	c := mustNode("InsertBefore", child)
	if p.typ != ElementNode {
		panic(fmt.Sprintf("hostdom: InsertBefore: parent #%d is a %s node", p.id, p.typ))
	}
	for a := p; a != nil; a = a.parent {
		if a == c {
			panic(fmt.Sprintf("hostdom: InsertBefore: #%d would become its own ancestor", c.id))
		}
	}

	if ref == nil {
		c.detach()
		p.children = append(p.children, c)
		c.parent = p
		return
	}
	r := mustNode("InsertBefore", ref)
	if r == c {
		return
	}
	if r.parent != p {
		panic(fmt.Sprintf("hostdom: InsertBefore: #%d is not a child of #%d", r.id, p.id))
	}
	c.detach()
	i := p.indexOf(r)
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = c
	c.parent = p
}

// RemoveChild implements host.Adapter.
func (d *Document) RemoveChild(parent, child host.Node) {
	p := mustNode("RemoveChild", parent)
	c := mustNode("RemoveChild", child)
	if c.parent != p {
		panic(fmt.Sprintf("hostdom: RemoveChild: #%d is not a child of #%d", c.id, p.id))
	}
	c.detach()
}

// ParentNode implements host.Adapter.
func (d *Document) ParentNode(node host.Node) host.Node {
	n := mustNode("ParentNode", node)
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// NextSibling implements host.Adapter.
func (d *Document) NextSibling(node host.Node) host.Node {
	n := mustNode("NextSibling", node)
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// SetTextContent implements host.Adapter. On an element it replaces all
// children with a single text node, or with nothing when text is empty.
func (d *Document) SetTextContent(node host.Node, text string) {
	n := mustNode("SetTextContent", node)
	if n.typ != ElementNode {
		n.data = text
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	if text != "" {
		t := d.newNode(TextNode)
		t.data = text
		t.parent = n
		n.children = []*Node{t}
	}
}

// TagName implements host.Adapter. Tag names are reported upper-cased for
// HTML elements, as a browser does.
func (d *Document) TagName(node host.Node) string {
	n := mustNode("TagName", node)
	if n.ns != "" {
		return n.tag
	}
	return strings.ToUpper(n.tag)
}

// SetAttribute implements host.Adapter.
func (d *Document) SetAttribute(node host.Node, name, value string) {
	n := mustNode("SetAttribute", node)
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// Attribute implements host.AttributeEditor.
func (d *Document) Attribute(node host.Node, name string) (string, bool) {
	return mustNode("Attribute", node).Attr(name)
}

// RemoveAttribute implements host.AttributeEditor.
func (d *Document) RemoveAttribute(node host.Node, name string) {
	delete(mustNode("RemoveAttribute", node).attrs, name)
}

var (
	_ host.Adapter         = (*Document)(nil)
	_ host.AttributeEditor = (*Document)(nil)
)
