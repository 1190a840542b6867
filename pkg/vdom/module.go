package vdom

// Module is a cross-cutting extension that observes every node.
//
// A module implements any subset of the phase interfaces below. Phases it
// does not implement are not registered at all, which matters for removal:
// the completion gate waits for exactly the registered RemoveModule
// callbacks. Use ModuleFuncs (value or pointer) to build a module from plain
// functions.
type Module any

// PreModule runs at the start of every Patch call.
type PreModule interface {
	Pre()
}

// CreateModule runs for every element created, before its children.
type CreateModule interface {
	Create(empty, v *VNode)
}

// UpdateModule runs for every matched node, text nodes included, before
// its children are patched.
type UpdateModule interface {
	Update(old, v *VNode)
}

// DestroyModule runs for every element in a removed subtree.
type DestroyModule interface {
	Destroy(v *VNode)
}

// RemoveModule runs for the root of every removed subtree. The host node is
// detached only after done has been called by every RemoveModule and by the
// node's own Remove hook.
type RemoveModule interface {
	Remove(v *VNode, done func())
}

// PostModule runs at the end of every Patch call, after insert hooks.
type PostModule interface {
	Post()
}

// ModuleFuncs is a Module assembled from functions. Nil fields are not
// registered.
type ModuleFuncs struct {
	Pre     func()
	Create  func(empty, v *VNode)
	Update  func(old, v *VNode)
	Destroy func(v *VNode)
	Remove  func(v *VNode, done func())
	Post    func()
}

// dispatcher holds the per-phase callback lists. It is built once by New and
// never modified afterwards.
type dispatcher struct {
	pre     []func()
	create  []func(empty, v *VNode)
	update  []func(old, v *VNode)
	destroy []func(v *VNode)
	remove  []func(v *VNode, done func())
	post    []func()
}

func newDispatcher(modules []Module) *dispatcher {
	d := &dispatcher{}
	for _, m := range modules {
		switch f := m.(type) {
		case *ModuleFuncs:
			d.addFuncs(f)
			continue
		case ModuleFuncs:
			d.addFuncs(&f)
			continue
		}
		if pm, ok := m.(PreModule); ok {
			d.pre = append(d.pre, pm.Pre)
		}
		if cm, ok := m.(CreateModule); ok {
			d.create = append(d.create, cm.Create)
		}
		if um, ok := m.(UpdateModule); ok {
			d.update = append(d.update, um.Update)
		}
		if dm, ok := m.(DestroyModule); ok {
			d.destroy = append(d.destroy, dm.Destroy)
		}
		if rm, ok := m.(RemoveModule); ok {
			d.remove = append(d.remove, rm.Remove)
		}
		if pm, ok := m.(PostModule); ok {
			d.post = append(d.post, pm.Post)
		}
	}
	return d
}

func (d *dispatcher) addFuncs(f *ModuleFuncs) {
	if f == nil {
		return
	}
	if f.Pre != nil {
		d.pre = append(d.pre, f.Pre)
	}
	if f.Create != nil {
		d.create = append(d.create, f.Create)
	}
	if f.Update != nil {
		d.update = append(d.update, f.Update)
	}
	if f.Destroy != nil {
		d.destroy = append(d.destroy, f.Destroy)
	}
	if f.Remove != nil {
		d.remove = append(d.remove, f.Remove)
	}
	if f.Post != nil {
		d.post = append(d.post, f.Post)
	}
}

func (d *dispatcher) runPre() {
	for _, fn := range d.pre {
		fn()
	}
}

func (d *dispatcher) runCreate(empty, v *VNode) {
	for _, fn := range d.create {
		fn(empty, v)
	}
}

func (d *dispatcher) runUpdate(old, v *VNode) {
	for _, fn := range d.update {
		fn(old, v)
	}
}

func (d *dispatcher) runDestroy(v *VNode) {
	for _, fn := range d.destroy {
		fn(v)
	}
}

func (d *dispatcher) runRemove(v *VNode, done func()) {
	for _, fn := range d.remove {
		fn(v, done)
	}
}

func (d *dispatcher) runPost() {
	for _, fn := range d.post {
		fn()
	}
}
