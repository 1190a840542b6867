// Package vtest provides testing helpers for code built on the reconciler.
//
// The vtest package reduces boilerplate when testing views and modules by
// providing a fluent harness builder, op assertions and render assertions.
//
// # Quick Start
//
//	func TestTodoList(t *testing.T) {
//	    h := vtest.New(t).WithAttrs().Build()
//	    h.Patch(TodoList([]string{"a", "b"}))
//	    h.ExpectHTML(`<ul><li>a</li><li>b</li></ul>`)
//
//	    h.Patch(TodoList([]string{"b", "a"}))
//	    h.ExpectNoCreates()
//	}
//
// # Op Assertions
//
// Every Patch goes through a host.Recorder, so the exact host mutations of
// the last patch can be asserted:
//
//	h.Patch(vdom.H("p", "new text"))
//	h.ExpectOps(host.OpSetText)
//
// # Render Assertions
//
// Assert on the HTML of a freshly materialized tree:
//
//	vtest.ExpectContains(t, Greeting("Ada"), "Hello, Ada")
//	vtest.ExpectAttribute(t, Button("ok"), "class", "btn")
//
// # Restart Simulation
//
// SimulateRestart round-trips the current tree through the snapshot codec
// and a store, the way the server restores a session after a restart.
package vtest
