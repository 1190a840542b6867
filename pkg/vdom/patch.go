package vdom

// patchVnode patches old's host node in place so it matches v. The caller
// guarantees SameVNode(old, v).
func (p *Patcher) patchVnode(old, v *VNode, queue *insertQueue) {
	if old == v {
		return
	}

	// Prepatch may replace v.Data (thunks do); postpatch still belongs to
	// the hooks v was built with.
	hooks := v.hooks()
	if hooks != nil && hooks.Prepatch != nil {
		hooks.Prepatch(old, v)
	}

	elm := old.Elm
	v.Elm = elm
	oldCh, ch := old.Children, v.Children

	p.cbs.runUpdate(old, v)
	if h := v.hooks(); h != nil && h.Update != nil {
		h.Update(old, v)
	}

	if !v.HasText {
		switch {
		case oldCh != nil && ch != nil:
			if !sameChildren(oldCh, ch) {
				p.updateChildren(elm, oldCh, ch, queue)
			}
		case ch != nil:
			if old.HasText {
				p.api.SetTextContent(elm, "")
			}
			p.addVnodes(elm, nil, ch, 0, len(ch)-1, queue)
		case oldCh != nil:
			p.removeVnodes(elm, oldCh, 0, len(oldCh)-1)
		case old.HasText:
			p.api.SetTextContent(elm, "")
		}
	} else if oldCh != nil {
		p.removeVnodes(elm, oldCh, 0, len(oldCh)-1)
		p.api.SetTextContent(elm, v.Text)
	} else if !old.HasText || old.Text != v.Text {
		p.api.SetTextContent(elm, v.Text)
	}

	if hooks != nil && hooks.Postpatch != nil {
		hooks.Postpatch(old, v)
	}
}

// sameChildren reports whether a and b are the same slice, which is how a
// reused thunk hands its old children to the new node.
func sameChildren(a, b []*VNode) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
