package hostdom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// voidElements cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// RenderOptions configures HTML serialization.
type RenderOptions struct {
	// Pretty enables indented output, one node per line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// IDs adds a data-node attribute carrying each element's node ID.
	IDs bool
}

// HTML serializes the node and its subtree.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	_ = Render(&buf, n, RenderOptions{})
	return buf.String()
}

// InnerHTML serializes the node's children.
func (n *Node) InnerHTML() string {
	var buf bytes.Buffer
	r := renderer{opts: RenderOptions{}}
	for _, c := range n.children {
		_ = r.render(&buf, c, 0)
	}
	return buf.String()
}

// Render writes the HTML serialization of n to w.
func Render(w io.Writer, n *Node, opts RenderOptions) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	r := renderer{opts: opts}
	return r.render(w, n, 0)
}

type renderer struct {
	opts RenderOptions
}

func (r *renderer) render(w io.Writer, n *Node, depth int) error {
	if n == nil {
		return nil
	}
	switch n.typ {
	case ElementNode:
		return r.renderElement(w, n, depth)
	case TextNode:
		if r.opts.Pretty {
			r.writeIndent(w, depth)
		}
		if _, err := io.WriteString(w, escapeHTML(n.data)); err != nil {
			return err
		}
	case CommentNode:
		if r.opts.Pretty {
			r.writeIndent(w, depth)
		}
		if _, err := fmt.Fprintf(w, "<!--%s-->", escapeComment(n.data)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("hostdom: unknown node type: %d", n.typ)
	}
	if r.opts.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

func (r *renderer) renderElement(w io.Writer, n *Node, depth int) error {
	if r.opts.Pretty {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "<%s", n.tag); err != nil {
		return err
	}
	if r.opts.IDs {
		if _, err := fmt.Fprintf(w, ` data-node="%d"`, n.id); err != nil {
			return err
		}
	}
	for _, name := range n.AttrNames() {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(n.attrs[name])); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if voidElements[n.tag] && n.ns == "" && len(n.children) == 0 {
		if r.opts.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	if r.opts.Pretty && len(n.children) > 0 {
		io.WriteString(w, "\n")
	}
	for _, c := range n.children {
		if err := r.render(w, c, depth+1); err != nil {
			return err
		}
	}
	if r.opts.Pretty && len(n.children) > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", n.tag); err != nil {
		return err
	}
	if r.opts.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

func (r *renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.opts.Indent, depth))
}
