package vdom

import (
	"errors"
	"testing"

	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/hostdom"
)

func TestPatchElementReusesMatchingElement(t *testing.T) {
	e := newTestEnv(t)
	mountID := e.mount.ID()

	cur := e.p.PatchElement(e.mount, H("div", H("span", "hi")))

	if got, want := e.html(), "<div><span>hi</span></div>"; got != want {
		t.Fatalf("html=%q, want %q", got, want)
	}
	if elm(t, cur).ID() != mountID {
		t.Fatalf("root element was re-created: got #%d, want #%d", elm(t, cur).ID(), mountID)
	}
}

func TestPatchElementReadsIDAndClass(t *testing.T) {
	doc := hostdom.NewDocument()
	mount := doc.Mount("section")
	doc.SetAttribute(mount, "id", "app")
	doc.SetAttribute(mount, "class", "a b")
	p := New(nil, doc)

	cur := p.PatchElement(mount, H("section#app.a.b", "ok"))

	if cur.Elm != host.Node(mount) {
		t.Fatal("expected the existing element to be reused")
	}
	if got, want := doc.Body().InnerHTML(), `<section class="a b" id="app">ok</section>`; got != want {
		t.Fatalf("html=%q, want %q", got, want)
	}
}

func TestPatchSelectorAttributes(t *testing.T) {
	e := newTestEnv(t)
	e.p.PatchElement(e.mount, H("div#app.a.b"))

	if got, want := e.html(), `<div class="a b" id="app"></div>`; got != want {
		t.Fatalf("html=%q, want %q", got, want)
	}
}

func TestPatchIdentityIsNoop(t *testing.T) {
	e := newTestEnv(t)
	cur := e.render(H("div", H("p", "one"), H("p", "two")))

	e.p.Patch(cur, cur)

	if ops := e.rec.Ops(); len(ops) != 0 {
		t.Fatalf("expected no host ops for identical trees, got %v", ops)
	}
}

func TestPatchRoundTrip(t *testing.T) {
	viewA := func() *VNode {
		return H("div", H("h1", "title"), H("p#x.y", "body"), H("ul", keyed("1", "2", "3")))
	}
	viewB := func() *VNode {
		return H("div", H("h2", "other"), H("ul", keyed("3", "1")), "tail")
	}

	e := newTestEnv(t)
	cur := e.render(viewA())
	want := e.html()

	cur = e.p.Patch(cur, viewB())
	if e.html() == want {
		t.Fatal("expected B to render differently from A")
	}
	e.p.Patch(cur, viewA())

	if got := e.html(); got != want {
		t.Fatalf("round trip html=%q, want %q", got, want)
	}
}

func TestPatchRootReplacement(t *testing.T) {
	var destroyed, created []string
	mod := &ModuleFuncs{
		Create:  func(_, v *VNode) { created = append(created, v.Sel) },
		Destroy: func(v *VNode) { destroyed = append(destroyed, v.Sel) },
	}
	e := newTestEnv(t, mod)
	old := e.render(H("div", H("b", "x")))
	oldElm := elm(t, old)
	created, destroyed = nil, nil

	cur := e.p.Patch(old, H("span", H("i", "y")))

	if got, want := e.html(), "<span><i>y</i></span>"; got != want {
		t.Fatalf("html=%q, want %q", got, want)
	}
	if oldElm.Parent() != nil {
		t.Fatal("expected old root to be detached")
	}
	if elm(t, cur) == oldElm {
		t.Fatal("expected a new root element")
	}
	if len(destroyed) != 2 || destroyed[0] != "div" || destroyed[1] != "b" {
		t.Fatalf("destroyed=%v, want [div b]", destroyed)
	}
	if len(created) != 2 || created[0] != "span" || created[1] != "i" {
		t.Fatalf("created=%v, want [span i]", created)
	}
}

func TestPatchRootReplacementKeepsPosition(t *testing.T) {
	doc := hostdom.NewDocument()
	before := doc.Mount("header")
	mount := doc.Mount("div")
	after := doc.Mount("footer")
	p := New(nil, doc)

	p.PatchElement(mount, H("main", "content"))

	body := doc.Body()
	if body.ChildAt(0) != before || body.ChildAt(2) != after {
		t.Fatalf("siblings moved: %s", body.InnerHTML())
	}
	if got := body.ChildAt(1).Tag(); got != "main" {
		t.Fatalf("middle child=%q, want main", got)
	}
}

func TestPatchNilOldMaterializesDetached(t *testing.T) {
	doc := hostdom.NewDocument()
	p := New(nil, doc)

	v := p.Patch(nil, H("p", "free"))

	n := v.Elm.(*hostdom.Node)
	if n.Parent() != nil {
		t.Fatal("expected a detached element")
	}
	if got := n.HTML(); got != "<p>free</p>" {
		t.Fatalf("html=%q", got)
	}
}

func TestPatchTextTransitions(t *testing.T) {
	e := newTestEnv(t)
	cur := e.render(H("div", "hello"))

	cur = e.p.Patch(cur, H("div", "world"))
	if got := e.html(); got != "<div>world</div>" {
		t.Fatalf("text update html=%q", got)
	}

	cur = e.p.Patch(cur, H("div", H("b", "bold")))
	if got := e.html(); got != "<div><b>bold</b></div>" {
		t.Fatalf("text to children html=%q", got)
	}

	cur = e.p.Patch(cur, H("div", "again"))
	if got := e.html(); got != "<div>again</div>" {
		t.Fatalf("children to text html=%q", got)
	}

	cur = e.p.Patch(cur, H("div"))
	if got := e.html(); got != "<div></div>" {
		t.Fatalf("text to empty html=%q", got)
	}

	cur = e.p.Patch(cur, H("div", []*VNode{H("i", "1")}))
	e.p.Patch(cur, H("div"))
	if got := e.html(); got != "<div></div>" {
		t.Fatalf("children to empty html=%q", got)
	}
}

func TestPatchUnchangedTextIssuesNoOps(t *testing.T) {
	e := newTestEnv(t)
	cur := e.render(H("div", H("p", "same"), Text("bare")))

	e.p.Patch(cur, H("div", H("p", "same"), Text("bare")))

	if ops := e.rec.Ops(); len(ops) != 0 {
		t.Fatalf("expected no ops, got %v", ops)
	}
}

func TestPatchComment(t *testing.T) {
	e := newTestEnv(t)
	cur := e.render(H("div", Comment("slot"), H("p", "x")))

	if got, want := e.html(), "<div><!--slot--><p>x</p></div>"; got != want {
		t.Fatalf("html=%q, want %q", got, want)
	}

	e.p.Patch(cur, H("div", Comment("other"), H("p", "x")))
	if got, want := e.html(), "<div><!--other--><p>x</p></div>"; got != want {
		t.Fatalf("html=%q, want %q", got, want)
	}
}

func TestPatchEmptyComment(t *testing.T) {
	e := newTestEnv(t)
	e.render(H("div", &VNode{Sel: CommentSel}))

	if got, want := e.html(), "<div><!----></div>"; got != want {
		t.Fatalf("html=%q, want %q", got, want)
	}
}

func TestPatchNamespacedElements(t *testing.T) {
	e := newTestEnv(t)
	e.p.PatchElement(e.mount, H("div", H("svg", H("circle"))))

	ns := opsOf(e.rec.Ops(), host.OpCreateElementNS)
	if len(ns) != 2 {
		t.Fatalf("expected 2 namespaced creations, got %v", ns)
	}
	for _, op := range ns {
		if op.NS != SVGNamespace {
			t.Fatalf("op %v has namespace %q", op, op.NS)
		}
	}
}

func TestPatchHookOrder(t *testing.T) {
	var log []string
	add := func(s string) { log = append(log, s) }

	mod := &ModuleFuncs{
		Pre:    func() { add("pre") },
		Create: func(_, v *VNode) { add("module.create " + v.Sel) },
		Update: func(_, v *VNode) { add("module.update " + v.Sel) },
		Post:   func() { add("post") },
	}
	hooks := func(name string) *Hooks {
		return &Hooks{
			Init:      func(*VNode) { add(name + ".init") },
			Create:    func(_, _ *VNode) { add(name + ".create") },
			Insert:    func(*VNode) { add(name + ".insert") },
			Prepatch:  func(_, _ *VNode) { add(name + ".prepatch") },
			Update:    func(_, _ *VNode) { add(name + ".update") },
			Postpatch: func(_, _ *VNode) { add(name + ".postpatch") },
		}
	}

	e := newTestEnv(t, mod)
	cur := e.p.Patch(e.p.emptyNodeAt(e.mount), H("div", H("p", hooks("p"), "x")))

	want := []string{
		"pre",
		"module.update div",
		"p.init",
		"module.create p",
		"p.create",
		"p.insert",
		"post",
	}
	assertLog(t, log, want)

	log = nil
	e.p.Patch(cur, H("div", H("p", hooks("p"), "y")))
	want = []string{
		"pre",
		"module.update div",
		"p.prepatch",
		"module.update p",
		"p.update",
		"p.postpatch",
		"post",
	}
	assertLog(t, log, want)
}

func TestInsertHooksSeeAttachedTree(t *testing.T) {
	var order []string
	e := newTestEnv(t)
	body := e.doc.Body()
	insert := func(name string) *Hooks {
		return &Hooks{Insert: func(v *VNode) {
			n := v.Elm.(*hostdom.Node)
			for p := n; p != nil; p = p.Parent() {
				if p == body {
					order = append(order, name)
					return
				}
			}
			t.Errorf("%s: insert hook ran before the node was attached", name)
		}}
	}

	e.render(H("div", H("section", insert("outer"), H("p", insert("inner"), "x")), H("aside", insert("sibling"))))

	assertLog(t, order, []string{"inner", "outer", "sibling"})
}

func TestInitHookMayReplaceData(t *testing.T) {
	e := newTestEnv(t)
	var created bool
	v := H("p", &Hooks{Init: func(v *VNode) {
		v.Data = &Data{Hooks: &Hooks{Create: func(_, _ *VNode) { created = true }}}
	}}, "x")

	e.render(H("div", v))

	if !created {
		t.Fatal("expected the create hook installed by init to run")
	}
}

func TestValidate(t *testing.T) {
	ok := H("div", H("p", "x"), nil, Text("y"))
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	bad := H("div", H("ul", &VNode{Sel: "li", Text: "x", HasText: true, Children: []*VNode{}}))
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for node with text and children")
	}

	thunk := &VNode{Sel: "div", Data: &Data{Thunk: &ThunkData{}}}
	if err := thunk.Validate(); err == nil {
		t.Fatal("expected error for thunk without render function")
	}

	comment := H("div", &VNode{Sel: CommentSel, Children: []*VNode{Text("x")}})
	if err := comment.Validate(); !errors.Is(err, errCommentChildren) {
		t.Fatalf("Validate() = %v, want comment children error", err)
	}
}

func assertLog(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("log=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("log[%d]=%q, want %q (full log %v)", i, got[i], want[i], got)
		}
	}
}
