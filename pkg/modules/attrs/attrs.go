// Package attrs synchronizes element attributes and classes from node data.
//
// The module reads Data.Attrs and Data.Class. Attributes present on the new
// node are set when their value changed; attributes that disappeared are
// removed. Class toggles are merged with the classes of the selector into a
// single class attribute.
//
//	p := vdom.New([]vdom.Module{attrs.New(doc)}, doc)
package attrs

import (
	"slices"
	"strings"

	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Editor is the part of the host the module writes to. hostdom.Document and
// host.Recorder implement it.
type Editor interface {
	SetAttribute(node host.Node, name, value string)
	RemoveAttribute(node host.Node, name string)
}

// Module is the attribute and class module.
type Module struct {
	ed Editor
}

// New returns a module writing through ed.
func New(ed Editor) *Module {
	return &Module{ed: ed}
}

// Create implements vdom.CreateModule.
func (m *Module) Create(empty, v *vdom.VNode) {
	m.Update(empty, v)
}

// Update implements vdom.UpdateModule.
func (m *Module) Update(old, v *vdom.VNode) {
	if v.Sel == "" || v.IsComment() || v.Elm == nil {
		return
	}
	var oldData, data *vdom.Data
	if old != nil {
		oldData = old.Data
	}
	data = v.Data
	if oldData == data {
		return
	}

	m.updateAttrs(v.Elm, attrsOf(oldData), attrsOf(data))
	m.updateClass(old, v)
}

func attrsOf(d *vdom.Data) map[string]string {
	if d == nil {
		return nil
	}
	return d.Attrs
}

func classOf(d *vdom.Data) map[string]bool {
	if d == nil {
		return nil
	}
	return d.Class
}

func (m *Module) updateAttrs(elm host.Node, old, cur map[string]string) {
	if len(old) == 0 && len(cur) == 0 {
		return
	}
	for name, val := range cur {
		if prev, ok := old[name]; !ok || prev != val {
			m.ed.SetAttribute(elm, name, val)
		}
	}
	for name := range old {
		if _, ok := cur[name]; !ok {
			m.ed.RemoveAttribute(elm, name)
		}
	}
}

func (m *Module) updateClass(old, v *vdom.VNode) {
	var oldClass map[string]bool
	if old != nil {
		oldClass = classOf(old.Data)
	}
	cur := classOf(v.Data)
	if len(oldClass) == 0 && len(cur) == 0 {
		return
	}

	base := vdom.ParseSelector(v.Sel).Classes
	want := ClassList(base, cur)
	if old != nil && old.Sel == v.Sel && want == ClassList(base, oldClass) {
		return
	}
	if want == "" {
		m.ed.RemoveAttribute(v.Elm, "class")
		return
	}
	m.ed.SetAttribute(v.Elm, "class", want)
}

// ClassList returns the class attribute value for the selector classes base
// with the toggles applied: classes toggled on are appended in name order,
// classes toggled off are dropped even when the selector names them.
func ClassList(base []string, toggles map[string]bool) string {
	out := make([]string, 0, len(base)+len(toggles))
	for _, c := range base {
		if on, ok := toggles[c]; ok && !on {
			continue
		}
		out = append(out, c)
	}
	names := make([]string, 0, len(toggles))
	for name, on := range toggles {
		if on && !slices.Contains(base, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	out = append(out, names...)
	return strings.Join(out, " ")
}

var (
	_ vdom.CreateModule = (*Module)(nil)
	_ vdom.UpdateModule = (*Module)(nil)
)
