package attrs_test

import (
	"testing"

	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/hostdom"
	"github.com/vango-dev/vdomkit/pkg/modules/attrs"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

func setup(t *testing.T) (*hostdom.Document, *host.Recorder, *vdom.Patcher, *hostdom.Node) {
	t.Helper()
	doc := hostdom.NewDocument()
	rec := host.NewRecorder(doc, doc.ID)
	p := vdom.New([]vdom.Module{attrs.New(rec)}, rec)
	return doc, rec, p, doc.Mount("div")
}

func TestAttributesAreSetAndRemoved(t *testing.T) {
	doc, rec, p, mount := setup(t)

	cur := p.PatchElement(mount, vdom.H("div",
		vdom.H("a", vdom.A("href", "/a"), vdom.A("title", "t"), "link"),
	))
	if got, want := doc.Body().InnerHTML(), `<div><a href="/a" title="t">link</a></div>`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	rec.Reset()

	p.Patch(cur, vdom.H("div",
		vdom.H("a", vdom.A("href", "/b"), vdom.A("rel", "next"), "link"),
	))
	if got, want := doc.Body().InnerHTML(), `<div><a href="/b" rel="next">link</a></div>`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if n := rec.Count(host.OpSetAttr); n != 2 {
		t.Errorf("SetAttr count=%d, want 2", n)
	}
	if n := rec.Count(host.OpRemoveAttr); n != 1 {
		t.Errorf("RemoveAttr count=%d, want 1", n)
	}
}

func TestUnchangedAttributesProduceNoOps(t *testing.T) {
	_, rec, p, mount := setup(t)
	view := func() *vdom.VNode {
		return vdom.H("div", vdom.H("input", vdom.A("type", "text"), vdom.Class("wide", true)))
	}

	cur := p.PatchElement(mount, view())
	rec.Reset()
	p.Patch(cur, view())

	if ops := rec.Ops(); len(ops) != 0 {
		t.Fatalf("expected no ops, got %v", ops)
	}
}

func TestClassTogglesMergeWithSelector(t *testing.T) {
	doc, _, p, mount := setup(t)

	cur := p.PatchElement(mount, vdom.H("div",
		vdom.H("p.base.keep", vdom.Class("active", true), vdom.Class("base", false), "x"),
	))
	if got, want := doc.Body().InnerHTML(), `<div><p class="keep active">x</p></div>`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	cur = p.Patch(cur, vdom.H("div", vdom.H("p.base.keep", vdom.Class("active", false), "x")))
	if got, want := doc.Body().InnerHTML(), `<div><p class="base keep">x</p></div>`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	p.Patch(cur, vdom.H("div", vdom.H("p.base.keep", vdom.Class("base", false), vdom.Class("keep", false), "x")))
	if got, want := doc.Body().InnerHTML(), `<div><p>x</p></div>`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTextAndCommentNodesAreSkipped(t *testing.T) {
	_, rec, p, mount := setup(t)

	cur := p.PatchElement(mount, vdom.H("div", vdom.Text("a"), vdom.Comment("c")))
	rec.Reset()
	p.Patch(cur, vdom.H("div", vdom.Text("b"), vdom.Comment("c")))

	if n := rec.Count(host.OpSetAttr) + rec.Count(host.OpRemoveAttr); n != 0 {
		t.Fatalf("attribute ops=%d, want 0", n)
	}
}

func TestClassList(t *testing.T) {
	tests := []struct {
		name    string
		base    []string
		toggles map[string]bool
		want    string
	}{
		{"empty", nil, nil, ""},
		{"selector only", []string{"a", "b"}, nil, "a b"},
		{"toggles sorted", nil, map[string]bool{"z": true, "m": true, "off": false}, "m z"},
		{"no duplicates", []string{"a"}, map[string]bool{"a": true}, "a"},
		{"toggle off selector class", []string{"a", "b"}, map[string]bool{"a": false}, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attrs.ClassList(tt.base, tt.toggles); got != tt.want {
				t.Errorf("ClassList()=%q, want %q", got, tt.want)
			}
		})
	}
}
