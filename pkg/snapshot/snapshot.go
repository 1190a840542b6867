// Package snapshot encodes virtual trees as JSON.
//
// A snapshot is the serializable part of a tree: selectors, keys, text,
// children, namespace, attributes and class toggles. Hooks, thunk state and
// extension data are functions or arbitrary values and are not encoded;
// a thunk is encoded as the subtree it rendered.
//
// Wire shape of a node:
//
//	{
//	  "sel": "ul#list.big",
//	  "key": "k1",
//	  "text": "hello",
//	  "children": [ {...}, null, {...} ],
//	  "ns": "http://www.w3.org/2000/svg",
//	  "attrs": {"href": "/x"},
//	  "class": {"active": true}
//	}
//
// A present "text" field (even "") sets the text payload. A present
// "children" array (even []) sets the children list; null entries are holes.
// A node without "sel" is a text node.
package snapshot

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Node is the JSON form of a vdom.VNode.
type Node struct {
	Sel      string            `json:"sel,omitempty"`
	Key      string            `json:"key,omitempty"`
	Text     *string           `json:"text,omitempty"`
	Children *[]*Node          `json:"children,omitempty"`
	NS       string            `json:"ns,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Class    map[string]bool   `json:"class,omitempty"`
}

// Decode parses a snapshot into a tree ready to be patched.
func Decode(data []byte) (*vdom.VNode, error) {
	v, _, err := decode(data)
	return v, err
}

// Read parses a snapshot from r.
func Read(r io.Reader) (*vdom.VNode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidSnapshot).Wrap(err)
	}
	return Decode(data)
}

// DecodeFile reads and parses the snapshot in path. Syntax errors carry the
// file location and the surrounding lines.
func DecodeFile(path string) (*vdom.VNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeInputUnreadable).Wrap(err)
	}
	v, offset, err := decode(data)
	if err != nil {
		var verr *errors.Error
		if offset >= 0 && stderrors.As(err, &verr) {
			line, col := position(data, offset)
			verr.WithLocation(path, line, col)
		}
		return nil, err
	}
	return v, nil
}

// decode returns the tree, or an error and the input offset it refers to
// (-1 when the error is structural rather than syntactic).
func decode(data []byte) (*vdom.VNode, int64, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var n *Node
	if err := dec.Decode(&n); err != nil {
		return nil, errorOffset(dec, err), errors.New(errors.CodeInvalidSnapshot).Wrap(err)
	}
	if dec.More() {
		return nil, dec.InputOffset(), errors.New(errors.CodeInvalidSnapshot).
			WithDetail("The snapshot contains more than one JSON value.")
	}
	if n == nil {
		return nil, -1, errors.New(errors.CodeInvalidSnapshot).
			WithDetail("The snapshot root is null.")
	}

	v, err := toVNode(n, "")
	if err != nil {
		return nil, -1, err
	}
	return v, -1, nil
}

func errorOffset(dec *json.Decoder, err error) int64 {
	var syntax *json.SyntaxError
	if stderrors.As(err, &syntax) {
		return syntax.Offset
	}
	var typ *json.UnmarshalTypeError
	if stderrors.As(err, &typ) {
		return typ.Offset
	}
	return dec.InputOffset()
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func label(n *Node) string {
	switch {
	case n.Sel == "":
		return "#text"
	case n.Key != "":
		return n.Sel + "@" + n.Key
	default:
		return n.Sel
	}
}

func toVNode(n *Node, path string) (*vdom.VNode, error) {
	here := path + label(n)
	if n.Text != nil && n.Children != nil {
		return nil, errors.New(errors.CodeTextAndChildren).
			WithPath(here).
			WithSuggestion(`Remove either "text" or "children" from the node`)
	}
	if n.Sel == "" && (n.Children != nil || n.NS != "" || len(n.Attrs) > 0 || len(n.Class) > 0) {
		return nil, errors.New(errors.CodeTextNodeFields).
			WithPath(here).
			WithSuggestion(`Add a "sel" to make the node an element`)
	}
	if n.Sel == vdom.CommentSel && (n.Children != nil || n.NS != "" || len(n.Attrs) > 0 || len(n.Class) > 0) {
		return nil, errors.New(errors.CodeCommentFields).
			WithPath(here).
			WithSuggestion(`Keep only "text" and "key" on comment nodes`)
	}

	v := &vdom.VNode{Sel: n.Sel, Key: n.Key}
	if n.Text != nil {
		v.Text = *n.Text
		v.HasText = true
	}
	if n.NS != "" || len(n.Attrs) > 0 || len(n.Class) > 0 {
		v.Data = &vdom.Data{NS: n.NS, Attrs: n.Attrs, Class: n.Class}
	}
	if n.Children != nil {
		v.Children = make([]*vdom.VNode, len(*n.Children))
		for i, c := range *n.Children {
			if c == nil {
				continue
			}
			ch, err := toVNode(c, fmt.Sprintf("%s[%d] > ", here, i))
			if err != nil {
				return nil, err
			}
			v.Children[i] = ch
		}
	}
	return v, nil
}

// Encode returns the JSON snapshot of v.
func Encode(v *vdom.VNode) ([]byte, error) {
	if v == nil {
		return nil, errors.New(errors.CodeInvalidSnapshot).
			WithDetail("Cannot encode a nil tree.")
	}
	return json.Marshal(FromVNode(v))
}

// EncodeIndent is Encode with indentation.
func EncodeIndent(v *vdom.VNode, indent string) ([]byte, error) {
	if v == nil {
		return nil, errors.New(errors.CodeInvalidSnapshot).
			WithDetail("Cannot encode a nil tree.")
	}
	return json.MarshalIndent(FromVNode(v), "", indent)
}

// FromVNode converts v to its JSON form.
func FromVNode(v *vdom.VNode) *Node {
	if v == nil {
		return nil
	}
	n := &Node{Sel: v.Sel, Key: v.Key}
	if v.HasText {
		text := v.Text
		n.Text = &text
	}
	if v.Data != nil {
		n.NS = v.Data.NS
		n.Attrs = v.Data.Attrs
		n.Class = v.Data.Class
	}
	if v.Children != nil && !v.HasText {
		children := make([]*Node, len(v.Children))
		for i, c := range v.Children {
			children[i] = FromVNode(c)
		}
		n.Children = &children
	}
	return n
}
