package vdom

import (
	"testing"

	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/hostdom"
)

type testEnv struct {
	doc   *hostdom.Document
	rec   *host.Recorder
	p     *Patcher
	mount *hostdom.Node
}

func newTestEnv(t *testing.T, modules ...Module) *testEnv {
	t.Helper()
	doc := hostdom.NewDocument()
	rec := host.NewRecorder(doc, doc.ID)
	return &testEnv{
		doc:   doc,
		rec:   rec,
		p:     New(modules, rec),
		mount: doc.Mount("div"),
	}
}

// render performs the first patch into the mount element and clears the
// recorded ops.
func (e *testEnv) render(v *VNode) *VNode {
	out := e.p.PatchElement(e.mount, v)
	e.rec.Reset()
	return out
}

func (e *testEnv) html() string {
	return e.doc.Body().InnerHTML()
}

func elm(t *testing.T, v *VNode) *hostdom.Node {
	t.Helper()
	n, ok := v.Elm.(*hostdom.Node)
	if !ok || n == nil {
		t.Fatalf("node %s has no host element (Elm=%T)", v.label(), v.Elm)
	}
	return n
}

// keyed builds <li> children keyed and labelled by each string.
func keyed(keys ...string) []*VNode {
	out := make([]*VNode, len(keys))
	for i, k := range keys {
		out[i] = H("li", Key(k), k)
	}
	return out
}

func list(keys ...string) *VNode {
	return H("ul", keyed(keys...))
}

func opsOf(ops []host.Op, kind host.OpKind) []host.Op {
	var out []host.Op
	for _, op := range ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
