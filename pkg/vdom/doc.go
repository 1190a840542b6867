// Package vdom reconciles virtual trees against a host tree.
//
// A VNode describes one node of the desired UI: a selector (tag, id and
// classes), an optional sibling key, optional typed metadata and either
// children or text. Each render produces a fresh VNode tree; the Patcher
// compares it with the tree returned by the previous call and issues the
// minimal set of host.Adapter primitives that turn the existing host tree
// into the new shape.
//
// # Patching
//
//	doc := hostdom.NewDocument()
//	p := vdom.New([]vdom.Module{attrs.New(doc)}, doc)
//
//	cur := p.PatchElement(doc.Mount("div"), view(state))
//	// ... state changes ...
//	cur = p.Patch(cur, view(state))
//
// Two nodes are the same logical node when their Key and Sel are equal.
// Same nodes are patched in place; anything else is re-created. Sibling
// lists are diffed with four cursors (both ends of the old and the new list)
// before falling back to a key lookup, so appends, prepends, swaps and
// reversals cost no lookups at all.
//
// # Hooks and modules
//
// Per-node Hooks observe the lifecycle of a single node. Modules observe
// every node: a module implements any subset of PreModule, CreateModule,
// UpdateModule, DestroyModule, RemoveModule and PostModule. Module callbacks
// run in registration order; node hooks run after them.
//
// Removal is gated: a node leaves the host tree only after every RemoveModule
// and the node's own Remove hook have called their done function, which lets
// exit transitions delay detachment past the end of Patch.
//
// # Thunks
//
// Thunk and Memo build nodes whose subtree is produced by a render function.
// When the function and its arguments are unchanged the previous subtree is
// reused and the diff below the thunk is skipped entirely.
//
// A Patcher is not safe for concurrent use.
package vdom
