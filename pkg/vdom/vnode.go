package vdom

import (
	"errors"
	"fmt"

	"github.com/vango-dev/vdomkit/pkg/host"
)

// CommentSel is the selector of a comment placeholder node.
const CommentSel = "!"

// VNode is a node of a virtual tree.
//
// A VNode is built by the caller, consumed once by a Patcher and then either
// kept as the old tree for the next Patch or discarded.
type VNode struct {
	// Sel is the selector "tag#id.class1.class2". Empty for text nodes.
	Sel string

	// Key identifies the node among its siblings. Empty means unkeyed.
	Key string

	// Data holds optional metadata: hooks, module configuration, thunk state.
	Data *Data

	// Children of an element. nil means "no children"; a non-nil empty
	// slice means "children, currently none". nil entries are skipped.
	Children []*VNode

	// Text payload, meaningful only when HasText is set.
	Text    string
	HasText bool

	// Elm is the materialized host node, assigned by the Patcher.
	Elm host.Node
}

// Data is the per-node metadata. Each concern has its own field.
type Data struct {
	// NS is the element namespace, e.g. "http://www.w3.org/2000/svg".
	NS string

	// Hooks are the per-node lifecycle callbacks.
	Hooks *Hooks

	// Attrs and Class are read by the attrs module.
	Attrs map[string]string
	Class map[string]bool

	// Thunk is set on nodes built by Thunk and Memo.
	Thunk *ThunkData

	// Ext holds configuration for third-party modules, keyed by module name.
	Ext map[string]any
}

// Hooks are per-node lifecycle callbacks. A nil field is skipped.
type Hooks struct {
	// Init runs first when the node is materialized. It may replace
	// v.Data and v.Children.
	Init func(v *VNode)

	// Create runs after the host element and its children exist.
	Create func(empty, v *VNode)

	// Insert runs once the whole patched tree is attached to the host.
	Insert func(v *VNode)

	// Prepatch runs before a matched node is patched.
	Prepatch func(old, v *VNode)

	// Update runs after module update callbacks, before children are patched.
	Update func(old, v *VNode)

	// Postpatch runs after the node and its children are patched.
	Postpatch func(old, v *VNode)

	// Destroy runs when the node or one of its ancestors is removed.
	Destroy func(v *VNode)

	// Remove runs when the node itself is removed. The host node is
	// detached only after done is called.
	Remove func(v *VNode, done func())
}

// SameVNode reports whether a and b are the same logical node and can be
// patched in place.
func SameVNode(a, b *VNode) bool {
	return a.Key == b.Key && a.Sel == b.Sel
}

// IsComment reports whether v is a comment placeholder.
func (v *VNode) IsComment() bool {
	return v.Sel == CommentSel
}

// IsText reports whether v is a bare text node.
func (v *VNode) IsText() bool {
	return v.Sel == ""
}

// hooks returns v's hooks or nil.
func (v *VNode) hooks() *Hooks {
	if v.Data == nil {
		return nil
	}
	return v.Data.Hooks
}

// SetText sets the text payload and clears children.
func (v *VNode) SetText(text string) {
	v.Text = text
	v.HasText = true
	v.Children = nil
}

var (
	errTextAndChildren = errors.New("node has both text and children")
	errThunkRender     = errors.New("thunk has no render function")
	errCommentChildren = errors.New("comment node has children")
)

// Validate checks v and its descendants for malformed input: text and
// children set together, a comment with children, or a thunk without a
// render function.
// Patch does not call Validate; it is for callers that build trees from
// untrusted input.
func (v *VNode) Validate() error {
	return v.validate("")
}

func (v *VNode) validate(path string) error {
	if v.HasText && v.Children != nil {
		return fmt.Errorf("%s%s: %w", path, v.label(), errTextAndChildren)
	}
	if v.IsComment() && v.Children != nil {
		return fmt.Errorf("%s%s: %w", path, v.label(), errCommentChildren)
	}
	if v.Data != nil && v.Data.Thunk != nil && v.Data.Thunk.Render == nil {
		return fmt.Errorf("%s%s: %w", path, v.label(), errThunkRender)
	}
	for i, c := range v.Children {
		if c == nil {
			continue
		}
		if err := c.validate(fmt.Sprintf("%s%s[%d] > ", path, v.label(), i)); err != nil {
			return err
		}
	}
	return nil
}

func (v *VNode) label() string {
	switch {
	case v.Sel == "":
		return "#text"
	case v.Key != "":
		return v.Sel + "@" + v.Key
	default:
		return v.Sel
	}
}
