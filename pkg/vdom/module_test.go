package vdom

import "testing"

type recordingModule struct {
	name string
	log  *[]string
}

func (m recordingModule) Pre() {
	*m.log = append(*m.log, m.name+".pre")
}

func (m recordingModule) Create(_, v *VNode) {
	*m.log = append(*m.log, m.name+".create "+v.Sel)
}

func (m recordingModule) Post() {
	*m.log = append(*m.log, m.name+".post")
}

func TestDispatcherRegistersImplementedPhasesOnly(t *testing.T) {
	var log []string
	d := newDispatcher([]Module{
		recordingModule{name: "a", log: &log},
		&ModuleFuncs{Update: func(_, _ *VNode) {}},
		&ModuleFuncs{},
		(*ModuleFuncs)(nil),
		ModuleFuncs{Remove: func(_ *VNode, done func()) { done() }},
		struct{}{},
	})

	got := []int{len(d.pre), len(d.create), len(d.update), len(d.destroy), len(d.remove), len(d.post)}
	want := []int{1, 1, 1, 0, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("phase counts=%v, want %v", got, want)
		}
	}
}

func TestModulesRunInRegistrationOrder(t *testing.T) {
	var log []string
	e := newTestEnv(t,
		recordingModule{name: "a", log: &log},
		recordingModule{name: "b", log: &log},
	)

	e.render(H("div", H("p", "x")))

	assertLog(t, log, []string{
		"a.pre", "b.pre",
		"a.create p", "b.create p",
		"a.post", "b.post",
	})
}

func TestModuleCreateSeesParentBeforeChildren(t *testing.T) {
	var log []string
	e := newTestEnv(t, &ModuleFuncs{Create: func(_, v *VNode) { log = append(log, v.Sel) }})

	e.render(H("div", H("ul", H("li", "a"), H("li", "b"))))

	assertLog(t, log, []string{"ul", "li", "li"})
}

func TestModuleCreateReceivesEmptyNode(t *testing.T) {
	var empties []*VNode
	e := newTestEnv(t, &ModuleFuncs{Create: func(empty, _ *VNode) { empties = append(empties, empty) }})

	e.render(H("div", H("p", "a"), H("p", "b")))

	if len(empties) != 2 {
		t.Fatalf("create ran %d times, want 2", len(empties))
	}
	for _, empty := range empties {
		if empty.Sel != "" || empty.Data == nil || empty.Children == nil || len(empty.Children) != 0 {
			t.Fatalf("unexpected empty node %+v", empty)
		}
	}
}

func TestModuleUpdateRunsForTextNodes(t *testing.T) {
	var kinds []string
	e := newTestEnv(t, &ModuleFuncs{Update: func(_, v *VNode) {
		if v.IsText() {
			kinds = append(kinds, "text")
		} else {
			kinds = append(kinds, v.Sel)
		}
	}})

	old := e.render(H("div", Text("a"), H("p", "b")))
	kinds = nil
	e.p.Patch(old, H("div", Text("a2"), H("p", "b")))

	assertLog(t, kinds, []string{"div", "text", "p"})
}
