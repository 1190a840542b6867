package host

// Node is an opaque reference to a node of the host tree.
// A nil Node means "no node" (no parent, no next sibling, append at end).
type Node = any

// Adapter is the minimal set of host-tree primitives.
//
// Implementations must return an untyped nil (not a typed nil pointer
// wrapped in Node) from ParentNode and NextSibling when there is no such
// node.
type Adapter interface {
	CreateElement(tag string) Node
	CreateElementNS(ns, tag string) Node
	CreateTextNode(text string) Node
	CreateComment(text string) Node

	AppendChild(parent, child Node)
	// InsertBefore inserts child before ref; a nil ref appends.
	// Inserting a node that is already attached moves it.
	InsertBefore(parent, child, ref Node)
	RemoveChild(parent, child Node)

	ParentNode(node Node) Node
	NextSibling(node Node) Node

	SetTextContent(node Node, text string)
	TagName(node Node) string
	SetAttribute(node Node, name, value string)
}

// AttributeEditor is an optional capability for adapters that can read and
// remove attributes.
type AttributeEditor interface {
	Attribute(node Node, name string) (string, bool)
	RemoveAttribute(node Node, name string)
}
