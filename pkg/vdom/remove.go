package vdom

import (
	"sync/atomic"

	"github.com/vango-dev/vdomkit/pkg/host"
)

// removalGate detaches a host node once every party holding it has called
// Done. Calls beyond the expected count are ignored. Done may be called from
// any goroutine.
type removalGate struct {
	remaining atomic.Int32
	detach    func()
}

func newRemovalGate(parties int, detach func()) *removalGate {
	g := &removalGate{detach: detach}
	g.remaining.Store(int32(parties))
	return g
}

// Done records one completion.
func (g *removalGate) Done() {
	if g.remaining.Add(-1) == 0 {
		g.detach()
	}
}

// removeVnodes removes vnodes[start..end] from parent, skipping holes.
func (p *Patcher) removeVnodes(parent host.Node, vnodes []*VNode, start, end int) {
	for ; start <= end; start++ {
		if ch := vnodes[start]; ch != nil {
			p.removeVnode(parent, ch)
		}
	}
}

// removeVnode destroys ch's subtree and detaches its host node once the
// removal gate opens. Text nodes are detached immediately.
func (p *Patcher) removeVnode(parent host.Node, ch *VNode) {
	if ch.Sel == "" {
		p.api.RemoveChild(parent, ch.Elm)
		return
	}

	p.invokeDestroyHook(ch)

	elm := ch.Elm
	gate := newRemovalGate(len(p.cbs.remove)+1, func() { p.detach(elm) })
	p.cbs.runRemove(ch, gate.Done)
	if h := ch.hooks(); h != nil && h.Remove != nil {
		h.Remove(ch, gate.Done)
	} else {
		gate.Done()
	}
}

// detach removes elm from whatever parent it has when the gate opens. A
// node that is already detached, for instance because its parent's text
// content was replaced meanwhile, is left alone.
func (p *Patcher) detach(elm host.Node) {
	if elm == nil {
		return
	}
	if parent := p.api.ParentNode(elm); parent != nil {
		p.api.RemoveChild(parent, elm)
	}
}

// invokeDestroyHook runs destroy callbacks depth-first, pre-order: the
// node's own hook, then the modules, then each element child.
func (p *Patcher) invokeDestroyHook(v *VNode) {
	if h := v.hooks(); h != nil && h.Destroy != nil {
		h.Destroy(v)
	}
	p.cbs.runDestroy(v)
	for _, ch := range v.Children {
		if ch != nil && ch.Sel != "" {
			p.invokeDestroyHook(ch)
		}
	}
}
