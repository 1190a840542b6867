package vdom

import (
	"sync"
	"testing"

	"github.com/vango-dev/vdomkit/pkg/host"
)

// deferringModule holds on to every done callback it receives.
type deferringModule struct {
	pending []func()
}

func (m *deferringModule) Remove(_ *VNode, done func()) {
	m.pending = append(m.pending, done)
}

func TestRemovalGateWaitsForAllParties(t *testing.T) {
	m1, m2 := &deferringModule{}, &deferringModule{}
	e := newTestEnv(t, m1, m2)

	var hookDone func()
	leaving := H("p", Key("bye"), &Hooks{Remove: func(_ *VNode, done func()) { hookDone = done }}, "bye")
	old := e.render(H("div", leaving, H("p", Key("stay"), "stay")))
	leavingElm := elm(t, old.Children[0])

	e.p.Patch(old, H("div", H("p", Key("stay"), "stay")))

	if len(m1.pending) != 1 || len(m2.pending) != 1 || hookDone == nil {
		t.Fatalf("expected one pending done per party, got %d/%d/%v", len(m1.pending), len(m2.pending), hookDone != nil)
	}

	steps := []func(){m1.pending[0], hookDone, m2.pending[0]}
	for i, done := range steps {
		if leavingElm.Parent() == nil {
			t.Fatalf("detached after %d of %d completions", i, len(steps))
		}
		done()
	}
	if leavingElm.Parent() != nil {
		t.Fatal("expected detachment after all completions")
	}
	if n := e.rec.Count(host.OpRemoveChild); n != 1 {
		t.Fatalf("RemoveChild count=%d, want 1", n)
	}

	// Extra completions are ignored.
	hookDone()
	m1.pending[0]()
	if n := e.rec.Count(host.OpRemoveChild); n != 1 {
		t.Fatalf("RemoveChild count after extra done=%d, want 1", n)
	}
}

func TestRemovalGateWithoutHooksDetachesImmediately(t *testing.T) {
	e := newTestEnv(t)
	old := e.render(H("div", H("p", "a"), H("p", "b")))
	gone := elm(t, old.Children[1])

	e.p.Patch(old, H("div", H("p", "a")))

	if gone.Parent() != nil {
		t.Fatal("expected immediate detachment")
	}
}

func TestRemovalGateCompletesAfterPatchReturns(t *testing.T) {
	m := &deferringModule{}
	e := newTestEnv(t, m)
	old := e.render(H("div", H("p", Key("a"), "a"), H("p", Key("b"), "b")))
	b := elm(t, old.Children[1])

	cur := e.p.Patch(old, H("div", H("p", Key("a"), "a")))
	if got := e.html(); got != "<div><p>a</p><p>b</p></div>" {
		t.Fatalf("html while removal pending=%q", got)
	}

	// A later patch must not trip over the node still waiting to leave.
	cur = e.p.Patch(cur, H("div", H("p", Key("a"), "a2")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.pending[0]()
	}()
	wg.Wait()

	if b.Parent() != nil {
		t.Fatal("expected detachment once the module completed")
	}
	if got := e.html(); got != "<div><p>a2</p></div>" {
		t.Fatalf("html=%q", got)
	}
}

func TestTextNodesBypassRemovalGate(t *testing.T) {
	m := &deferringModule{}
	e := newTestEnv(t, m)
	old := e.render(H("div", Text("a"), Text("b")))

	e.p.Patch(old, H("div", Text("a")))

	if len(m.pending) != 0 {
		t.Fatalf("text node reached remove modules: %d", len(m.pending))
	}
	if got := e.html(); got != "<div>a</div>" {
		t.Fatalf("html=%q", got)
	}
}

func TestDestroyIsDepthFirstPreOrder(t *testing.T) {
	var log []string
	mod := &ModuleFuncs{Destroy: func(v *VNode) { log = append(log, "module "+v.Sel) }}
	hook := func(name string) *Hooks {
		return &Hooks{Destroy: func(*VNode) { log = append(log, "hook "+name) }}
	}

	e := newTestEnv(t, mod)
	tree := H("section", hook("section"),
		H("h1", hook("h1"), "t"),
		"text child",
		H("ul", H("li", hook("li"), "x")),
	)
	old := e.render(H("div", tree))

	e.p.Patch(old, H("div"))

	assertLog(t, log, []string{
		"hook section", "module section",
		"hook h1", "module h1",
		"module ul",
		"hook li", "module li",
	})
}

func TestRemoveHookOnlyForSubtreeRoot(t *testing.T) {
	var removed []string
	hook := func(name string) *Hooks {
		return &Hooks{Remove: func(_ *VNode, done func()) {
			removed = append(removed, name)
			done()
		}}
	}

	e := newTestEnv(t)
	old := e.render(H("div", H("ul", hook("ul"), H("li", hook("li"), "x"))))

	e.p.Patch(old, H("div"))

	assertLog(t, removed, []string{"ul"})
}

func TestModuleFuncsNilPhasesAreNotRegistered(t *testing.T) {
	// Only Create is set, so removal gates wait for the node alone.
	e := newTestEnv(t, &ModuleFuncs{Create: func(_, _ *VNode) {}})
	old := e.render(H("div", H("p", "x")))
	p := elm(t, old.Children[0])

	e.p.Patch(old, H("div"))

	if p.Parent() != nil {
		t.Fatal("expected immediate detachment with no remove callbacks registered")
	}
}
