// Package hostdom is an in-memory retained host tree.
//
// Document implements host.Adapter and host.AttributeEditor, so it can be
// driven directly by vdom.Patcher. Every node carries a stable numeric ID,
// which makes recorded operations (host.Recorder) readable and lets tests
// assert that a patch reused a node instead of re-creating it.
//
//	doc := hostdom.NewDocument()
//	p := vdom.New([]vdom.Module{attrs.New(doc)}, doc)
//	root := p.PatchElement(doc.Mount("div"), view(state))
//	fmt.Println(doc.Body().HTML())
//
// The tree follows DOM semantics where they matter to reconciliation:
// InsertBefore moves an already attached node, SetTextContent replaces all
// children of an element, and RemoveChild or InsertBefore against a node
// that is not a child of the given parent panics.
package hostdom
