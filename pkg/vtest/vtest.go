package vtest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/hostdom"
	"github.com/vango-dev/vdomkit/pkg/modules/attrs"
	"github.com/vango-dev/vdomkit/pkg/store"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Builder allows fluent construction of test harnesses.
type Builder struct {
	t       testing.TB
	modules []vdom.Module
	attrs   bool
	tag     string
	store   store.Store
	id      string
}

// New creates a new harness builder for testing.
//
// Example:
//
//	h := vtest.New(t).
//	    WithAttrs().
//	    WithModules(myModule).
//	    Build()
func New(t testing.TB) *Builder {
	return &Builder{t: t, tag: "div", id: "vtest"}
}

// WithModules appends modules to the Patcher's module list.
func (b *Builder) WithModules(modules ...vdom.Module) *Builder {
	b.modules = append(b.modules, modules...)
	return b
}

// WithAttrs registers the attrs module first, writing through the recorder
// so attribute changes show up as ops.
func (b *Builder) WithAttrs() *Builder {
	b.attrs = true
	return b
}

// WithMountTag sets the tag of the host element the first Patch starts
// from (default "div").
func (b *Builder) WithMountTag(tag string) *Builder {
	b.tag = tag
	return b
}

// WithStore sets the store SimulateRestart goes through. If unset, an
// in-memory store is created.
func (b *Builder) WithStore(st store.Store) *Builder {
	b.store = st
	return b
}

// Build returns the harness.
func (b *Builder) Build() *Harness {
	if b.store == nil {
		b.store = store.NewMemoryStore()
	}
	h := &Harness{t: b.t, builder: *b}
	h.reset()
	return h
}

// Harness owns a host document, a recorder over it and a Patcher, and keeps
// the tree of the last patch.
type Harness struct {
	t       testing.TB
	builder Builder

	Doc     *hostdom.Document
	Mount   *hostdom.Node
	Rec     *host.Recorder
	Patcher *vdom.Patcher
	Tree    *vdom.VNode

	last []host.Op
}

func (h *Harness) reset() {
	h.Doc = hostdom.NewDocument()
	h.Mount = h.Doc.Mount(h.builder.tag)
	h.Rec = host.NewRecorder(h.Doc, h.Doc.ID)

	var modules []vdom.Module
	if h.builder.attrs {
		modules = append(modules, attrs.New(h.Rec))
	}
	modules = append(modules, h.builder.modules...)
	h.Patcher = vdom.New(modules, h.Rec)
	h.Tree = nil
	h.last = nil
}

// Patch patches v over the previous tree, or over the mount element on the
// first call, and returns the recorded ops.
func (h *Harness) Patch(v *vdom.VNode) []host.Op {
	h.Rec.Reset()
	if h.Tree == nil {
		h.Tree = h.Patcher.PatchElement(h.Mount, v)
	} else {
		h.Tree = h.Patcher.Patch(h.Tree, v)
	}
	h.last = h.Rec.Take()
	return h.last
}

// Ops returns the ops of the last Patch.
func (h *Harness) Ops() []host.Op {
	return h.last
}

// HTML returns the serialized document body content.
func (h *Harness) HTML() string {
	return h.Doc.Body().InnerHTML()
}

// ExpectHTML asserts the document content.
//
// Example:
//
//	h.Patch(vdom.H("ul", vdom.H("li", "a")))
//	h.ExpectHTML("<ul><li>a</li></ul>")
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("html mismatch:\n got: %s\nwant: %s", truncate(got, 500), want)
	}
}

// ExpectOps asserts the kinds of the ops of the last Patch, in order.
//
// Example:
//
//	h.ExpectOps(host.OpSetText)
func (h *Harness) ExpectOps(kinds ...host.OpKind) {
	h.t.Helper()
	got := make([]string, len(h.last))
	for i, op := range h.last {
		got[i] = op.Kind.String()
	}
	want := make([]string, len(kinds))
	for i, k := range kinds {
		want[i] = k.String()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		h.t.Errorf("ops mismatch (-want +got):\n%s\nall ops:\n%s", diff, formatOps(h.last))
	}
}

// ExpectNoCreates asserts the last Patch reused every host node.
func (h *Harness) ExpectNoCreates() {
	h.t.Helper()
	for _, op := range h.last {
		if op.Kind.IsCreate() {
			h.t.Errorf("expected no node creation, got %v\nall ops:\n%s", op, formatOps(h.last))
			return
		}
	}
}

func formatOps(ops []host.Op) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString("  ")
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderToString materializes node in a fresh document, attrs module
// included, and returns its HTML. node is consumed: it now carries host
// references and must not be patched elsewhere.
//
// Example:
//
//	html := vtest.RenderToString(vdom.H("p", "hello"))
//	if !strings.Contains(html, "hello") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	if node == nil {
		return ""
	}
	doc := hostdom.NewDocument()
	p := vdom.New([]vdom.Module{attrs.New(doc)}, doc)
	p.Patch(nil, node)
	elm, ok := node.Elm.(*hostdom.Node)
	if !ok {
		return ""
	}
	return elm.HTML()
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, view(), "Welcome Admin")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
//
// Example:
//
//	vtest.ExpectElement(t, view(), "button")
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, view(), "class", "btn primary")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
