package vdom

import "github.com/vango-dev/vdomkit/pkg/host"

// updateChildren diffs two sibling lists under parent.
//
// Four cursors walk inward from both ends of oldCh and newCh. Each step
// tries, in order: old start vs new start, old end vs new end, old start vs
// new end (moved right), old end vs new start (moved left). Only when none of
// those match is the key index consulted for new start. When either range
// runs out, the rest of newCh is inserted or the rest of oldCh removed.
//
// oldCh is never written. Old nodes reused through the key index are marked
// in consumed and treated as holes from then on.
func (p *Patcher) updateChildren(parent host.Node, oldCh, newCh []*VNode, queue *insertQueue) {
	oldStart, oldEnd := 0, len(oldCh)-1
	newStart, newEnd := 0, len(newCh)-1

	consumed := make([]bool, len(oldCh))
	var keyToOld map[string]int

	oldAt := func(i int) *VNode {
		if consumed[i] {
			return nil
		}
		return oldCh[i]
	}

	for oldStart <= oldEnd && newStart <= newEnd {
		os, oe := oldAt(oldStart), oldAt(oldEnd)
		ns, ne := newCh[newStart], newCh[newEnd]

		switch {
		case os == nil:
			oldStart++
		case oe == nil:
			oldEnd--
		case ns == nil:
			newStart++
		case ne == nil:
			newEnd--

		case SameVNode(os, ns):
			p.patchVnode(os, ns, queue)
			oldStart++
			newStart++

		case SameVNode(oe, ne):
			p.patchVnode(oe, ne, queue)
			oldEnd--
			newEnd--

		case SameVNode(os, ne):
			// Moved right.
			p.patchVnode(os, ne, queue)
			p.api.InsertBefore(parent, os.Elm, p.api.NextSibling(oe.Elm))
			oldStart++
			newEnd--

		case SameVNode(oe, ns):
			// Moved left.
			p.patchVnode(oe, ns, queue)
			p.api.InsertBefore(parent, oe.Elm, os.Elm)
			oldEnd--
			newStart++

		default:
			if keyToOld == nil {
				keyToOld = keyIndex(oldCh, oldStart, oldEnd)
			}
			idx, ok := keyToOld[ns.Key]
			// Entries the cursors have already passed, or that were reused
			// earlier in this pass, belong to another new node by now.
			if ok && (idx < oldStart || idx > oldEnd || consumed[idx]) {
				ok = false
			}
			if !ok || oldCh[idx].Sel != ns.Sel {
				p.api.InsertBefore(parent, p.createElm(ns, queue), os.Elm)
			} else {
				move := oldCh[idx]
				p.patchVnode(move, ns, queue)
				consumed[idx] = true
				p.api.InsertBefore(parent, move.Elm, os.Elm)
			}
			newStart++
		}
	}

	if oldStart > oldEnd {
		if newStart <= newEnd {
			// Insert before the next placed sibling, skipping holes.
			var before host.Node
			for i := newEnd + 1; i < len(newCh); i++ {
				if newCh[i] != nil {
					before = newCh[i].Elm
					break
				}
			}
			p.addVnodes(parent, before, newCh, newStart, newEnd, queue)
		}
		return
	}
	if newStart > newEnd {
		for i := oldStart; i <= oldEnd; i++ {
			if ch := oldAt(i); ch != nil {
				p.removeVnode(parent, ch)
			}
		}
	}
}

// keyIndex maps the keys of oldCh[start..end] to their index. Unkeyed nodes
// and holes are skipped. With duplicate keys the last one wins.
func keyIndex(oldCh []*VNode, start, end int) map[string]int {
	m := make(map[string]int, end-start+1)
	for i := start; i <= end; i++ {
		if ch := oldCh[i]; ch != nil && ch.Key != "" {
			m[ch.Key] = i
		}
	}
	return m
}
