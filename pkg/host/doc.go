// Package host defines the primitive operations the reconciler needs from a
// concrete host tree.
//
// Any rendering target that implements Adapter can be driven by
// vdom.Patcher: a browser DOM bridge, a terminal scene graph, or the
// in-memory document in package hostdom.
//
// # Recording
//
// Recorder wraps an Adapter and records every primitive call as an Op.
// Tests use it to assert exactly which mutations a patch performed, and the
// server streams recorded batches to websocket subscribers:
//
//	rec := host.NewRecorder(doc, doc.ID)
//	p := vdom.New(nil, rec)
//	p.Patch(old, next)
//	for _, op := range rec.Take() {
//	    fmt.Println(op)
//	}
package host
