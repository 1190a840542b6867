package vdom

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/vdomkit/pkg/host"
)

// Patcher reconciles virtual trees against a host tree through a
// host.Adapter. The module list is fixed at construction.
type Patcher struct {
	api    host.Adapter
	cbs    *dispatcher
	empty  *VNode
	logger *slog.Logger
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithLogger sets the logger used for debug output.
// Default: slog.Default() with component=vdom.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Patcher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Patcher that drives api and dispatches to modules in the
// given order.
func New(modules []Module, api host.Adapter, opts ...Option) *Patcher {
	p := &Patcher{
		api:    api,
		cbs:    newDispatcher(modules),
		empty:  &VNode{Data: &Data{}, Children: []*VNode{}},
		logger: slog.Default().With("component", "vdom"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// insertQueue collects materialized nodes with an Insert hook. It is drained
// once the whole tree is attached.
type insertQueue []*VNode

// Patch reconciles the host tree materialized from old so that it matches
// v, and returns v. The returned tree carries host references and is the
// old tree for the next call.
//
// When old and v are not the same logical node, v is materialized fresh,
// inserted next to old's host node and old is removed. A nil old only
// materializes v; the caller attaches v.Elm.
//
// Patch mutates neither old's children slices nor any node of v's tree
// beyond assigning host references and running thunk hooks. Panics raised by
// hooks, modules or the adapter propagate and leave the host tree in an
// unspecified state.
func (p *Patcher) Patch(old, v *VNode) *VNode {
	var queue insertQueue
	p.cbs.runPre()

	switch {
	case old == nil:
		p.createElm(v, &queue)
	case SameVNode(old, v):
		p.patchVnode(old, v, &queue)
	default:
		elm := old.Elm
		p.logger.Debug("replacing root", "old", old.label(), "new", v.label())
		p.createElm(v, &queue)
		if elm != nil {
			if parent := p.api.ParentNode(elm); parent != nil {
				p.api.InsertBefore(parent, v.Elm, p.api.NextSibling(elm))
				p.removeVnodes(parent, []*VNode{old}, 0, 0)
			}
		}
	}

	for _, n := range queue {
		n.Data.Hooks.Insert(n)
	}
	p.cbs.runPost()
	return v
}

// PatchElement is Patch for the first render into an existing host element.
// The element is wrapped in a placeholder node whose selector is rebuilt
// from the element's tag name and, when the adapter implements
// host.AttributeEditor, its id and class attributes. If v matches that
// selector the element is reused; otherwise it is replaced.
func (p *Patcher) PatchElement(elm host.Node, v *VNode) *VNode {
	return p.Patch(p.emptyNodeAt(elm), v)
}

func (p *Patcher) emptyNodeAt(elm host.Node) *VNode {
	sel := strings.ToLower(p.api.TagName(elm))
	if ed, ok := p.api.(host.AttributeEditor); ok {
		if id, ok := ed.Attribute(elm, "id"); ok && id != "" {
			sel += "#" + id
		}
		if class, ok := ed.Attribute(elm, "class"); ok && class != "" {
			sel += "." + strings.Join(strings.Split(class, " "), ".")
		}
	}
	return &VNode{Sel: sel, Data: &Data{}, Children: []*VNode{}, Elm: elm}
}
