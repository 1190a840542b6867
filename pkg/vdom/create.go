package vdom

import "github.com/vango-dev/vdomkit/pkg/host"

// createElm materializes v and its subtree, assigns v.Elm and returns it.
// Nodes with an Insert hook are appended to queue in creation order.
func (p *Patcher) createElm(v *VNode, queue *insertQueue) host.Node {
	if h := v.hooks(); h != nil && h.Init != nil {
		h.Init(v)
	}

	switch {
	case v.Sel == CommentSel:
		v.HasText = true
		v.Elm = p.api.CreateComment(v.Text)

	case v.Sel != "":
		s := ParseSelector(v.Sel)
		var elm host.Node
		if v.Data != nil && v.Data.NS != "" {
			elm = p.api.CreateElementNS(v.Data.NS, s.Tag)
		} else {
			elm = p.api.CreateElement(s.Tag)
		}
		v.Elm = elm
		if s.HasID {
			p.api.SetAttribute(elm, "id", s.ID)
		}
		if s.Classes != nil {
			p.api.SetAttribute(elm, "class", s.ClassAttr())
		}

		p.cbs.runCreate(p.empty, v)

		if v.Children != nil {
			for _, ch := range v.Children {
				if ch != nil {
					p.api.AppendChild(elm, p.createElm(ch, queue))
				}
			}
		} else if v.HasText {
			p.api.AppendChild(elm, p.api.CreateTextNode(v.Text))
		}

		if h := v.hooks(); h != nil {
			if h.Create != nil {
				h.Create(p.empty, v)
			}
			if h.Insert != nil {
				*queue = append(*queue, v)
			}
		}

	default:
		v.Elm = p.api.CreateTextNode(v.Text)
	}
	return v.Elm
}

// addVnodes materializes vnodes[start..end] and inserts each before ref
// (nil appends).
func (p *Patcher) addVnodes(parent, ref host.Node, vnodes []*VNode, start, end int, queue *insertQueue) {
	for ; start <= end; start++ {
		if ch := vnodes[start]; ch != nil {
			p.api.InsertBefore(parent, p.createElm(ch, queue), ref)
		}
	}
}
