package host

import (
	"fmt"
	"strings"
	"sync"
)

// OpKind is the type of a recorded host primitive.
type OpKind uint8

const (
	OpCreateElement   OpKind = 0x01
	OpCreateElementNS OpKind = 0x02
	OpCreateText      OpKind = 0x03
	OpCreateComment   OpKind = 0x04
	OpAppendChild     OpKind = 0x05
	OpInsertBefore    OpKind = 0x06
	OpRemoveChild     OpKind = 0x07
	OpSetText         OpKind = 0x08
	OpSetAttr         OpKind = 0x09
	OpRemoveAttr      OpKind = 0x0A
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateElementNS:
		return "CreateElementNS"
	case OpCreateText:
		return "CreateText"
	case OpCreateComment:
		return "CreateComment"
	case OpAppendChild:
		return "AppendChild"
	case OpInsertBefore:
		return "InsertBefore"
	case OpRemoveChild:
		return "RemoveChild"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so ops serialize by name.
func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsCreate reports whether the op materializes a new host node.
func (k OpKind) IsCreate() bool {
	return k >= OpCreateElement && k <= OpCreateComment
}

// Op is a single recorded host mutation. Node references are recorded as the
// IDs returned by the recorder's ID function; 0 means "none".
type Op struct {
	Kind   OpKind `json:"op"`
	Node   uint64 `json:"node,omitempty"`
	Parent uint64 `json:"parent,omitempty"`
	Ref    uint64 `json:"ref,omitempty"`
	Tag    string `json:"tag,omitempty"`
	NS     string `json:"ns,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}

// String renders the op in a compact, log-friendly form.
func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Kind.String())
	switch o.Kind {
	case OpCreateElement, OpCreateElementNS:
		fmt.Fprintf(&b, " #%d <%s>", o.Node, o.Tag)
	case OpCreateText, OpCreateComment, OpSetText:
		fmt.Fprintf(&b, " #%d %q", o.Node, o.Value)
	case OpAppendChild:
		fmt.Fprintf(&b, " #%d -> #%d", o.Node, o.Parent)
	case OpInsertBefore:
		if o.Ref == 0 {
			fmt.Fprintf(&b, " #%d -> #%d (end)", o.Node, o.Parent)
		} else {
			fmt.Fprintf(&b, " #%d -> #%d before #%d", o.Node, o.Parent, o.Ref)
		}
	case OpRemoveChild:
		fmt.Fprintf(&b, " #%d from #%d", o.Node, o.Parent)
	case OpSetAttr:
		fmt.Fprintf(&b, " #%d %s=%q", o.Node, o.Name, o.Value)
	case OpRemoveAttr:
		fmt.Fprintf(&b, " #%d %s", o.Node, o.Name)
	}
	return b.String()
}

// Recorder is an Adapter decorator that records every mutating primitive.
// Reads (ParentNode, NextSibling, TagName, Attribute) are forwarded without
// being recorded. Recorder is safe for concurrent use.
type Recorder struct {
	inner Adapter
	id    func(Node) uint64

	mu  sync.Mutex
	ops []Op
}

// NewRecorder wraps inner. id maps a host node to a stable identifier; it
// must return 0 for nil.
func NewRecorder(inner Adapter, id func(Node) uint64) *Recorder {
	return &Recorder{inner: inner, id: id}
}

// Inner returns the wrapped adapter.
func (r *Recorder) Inner() Adapter {
	return r.inner
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// Ops returns a copy of the ops recorded so far.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Take returns the ops recorded so far and clears the log.
func (r *Recorder) Take() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.ops
	r.ops = nil
	return out
}

// Reset clears the log.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

// Count returns how many recorded ops have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) CreateElement(tag string) Node {
	n := r.inner.CreateElement(tag)
	r.record(Op{Kind: OpCreateElement, Node: r.id(n), Tag: tag})
	return n
}

func (r *Recorder) CreateElementNS(ns, tag string) Node {
	n := r.inner.CreateElementNS(ns, tag)
	r.record(Op{Kind: OpCreateElementNS, Node: r.id(n), Tag: tag, NS: ns})
	return n
}

func (r *Recorder) CreateTextNode(text string) Node {
	n := r.inner.CreateTextNode(text)
	r.record(Op{Kind: OpCreateText, Node: r.id(n), Value: text})
	return n
}

func (r *Recorder) CreateComment(text string) Node {
	n := r.inner.CreateComment(text)
	r.record(Op{Kind: OpCreateComment, Node: r.id(n), Value: text})
	return n
}

func (r *Recorder) AppendChild(parent, child Node) {
	r.inner.AppendChild(parent, child)
	r.record(Op{Kind: OpAppendChild, Node: r.id(child), Parent: r.id(parent)})
}

func (r *Recorder) InsertBefore(parent, child, ref Node) {
	r.inner.InsertBefore(parent, child, ref)
	r.record(Op{Kind: OpInsertBefore, Node: r.id(child), Parent: r.id(parent), Ref: r.id(ref)})
}

func (r *Recorder) RemoveChild(parent, child Node) {
	r.inner.RemoveChild(parent, child)
	r.record(Op{Kind: OpRemoveChild, Node: r.id(child), Parent: r.id(parent)})
}

func (r *Recorder) ParentNode(node Node) Node {
	return r.inner.ParentNode(node)
}

func (r *Recorder) NextSibling(node Node) Node {
	return r.inner.NextSibling(node)
}

func (r *Recorder) SetTextContent(node Node, text string) {
	r.inner.SetTextContent(node, text)
	r.record(Op{Kind: OpSetText, Node: r.id(node), Value: text})
}

func (r *Recorder) TagName(node Node) string {
	return r.inner.TagName(node)
}

func (r *Recorder) SetAttribute(node Node, name, value string) {
	r.inner.SetAttribute(node, name, value)
	r.record(Op{Kind: OpSetAttr, Node: r.id(node), Name: name, Value: value})
}

// Attribute forwards to the wrapped adapter when it implements
// AttributeEditor.
func (r *Recorder) Attribute(node Node, name string) (string, bool) {
	if ed, ok := r.inner.(AttributeEditor); ok {
		return ed.Attribute(node, name)
	}
	return "", false
}

// RemoveAttribute forwards to the wrapped adapter when it implements
// AttributeEditor. It is a no-op otherwise.
func (r *Recorder) RemoveAttribute(node Node, name string) {
	ed, ok := r.inner.(AttributeEditor)
	if !ok {
		return
	}
	ed.RemoveAttribute(node, name)
	r.record(Op{Kind: OpRemoveAttr, Node: r.id(node), Name: name})
}

var (
	_ Adapter         = (*Recorder)(nil)
	_ AttributeEditor = (*Recorder)(nil)
)
