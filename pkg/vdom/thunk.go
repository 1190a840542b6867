package vdom

import "reflect"

// ThunkData is the render state of a thunk node.
type ThunkData struct {
	// Render produces the thunk's subtree from Args.
	Render func(args []any) *VNode

	// Args are the arguments Render was (or will be) called with.
	Args []any

	// fn identifies the caller's function, independent of the Render
	// wrapper built around it.
	fn uintptr
}

var thunkHooks = &Hooks{
	Init:     thunkInit,
	Prepatch: thunkPrepatch,
}

// Thunk returns a node whose subtree is fn(args...). On later patches the
// subtree is rebuilt only when fn or one of args changed; otherwise the
// previous subtree is reused and not diffed.
//
// sel should match the selector of the node fn returns. Thunks in keyed
// sibling lists need a stable key, like any other node.
//
// Arguments are compared positionally with ==: by value for comparable
// values, by identity for pointers. Arguments that are not comparable
// (slices, maps, funcs) always count as changed. Functions are identified by
// their code pointer, so a closure must not carry state that is not also
// passed in args.
func Thunk(sel, key string, fn func(args ...any) *VNode, args ...any) *VNode {
	return &VNode{
		Sel: sel,
		Key: key,
		Data: &Data{
			Hooks: thunkHooks,
			Thunk: &ThunkData{
				Render: func(a []any) *VNode { return fn(a...) },
				Args:   args,
				fn:     funcID(fn),
			},
		},
	}
}

// Memo is Thunk for a single typed argument. Use a struct to pass several
// values; it is compared field by field.
func Memo[A comparable](sel, key string, fn func(A) *VNode, arg A) *VNode {
	return &VNode{
		Sel: sel,
		Key: key,
		Data: &Data{
			Hooks: thunkHooks,
			Thunk: &ThunkData{
				Render: func(a []any) *VNode {
					arg, _ := a[0].(A)
					return fn(arg)
				},
				Args: []any{arg},
				fn:   funcID(fn),
			},
		},
	}
}

func funcID(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

func thunkInit(thunk *VNode) {
	td := thunk.Data.Thunk
	copyToThunk(td.Render(td.Args), thunk)
}

func thunkPrepatch(old, thunk *VNode) {
	cur := thunk.Data.Thunk
	var prev *ThunkData
	if old.Data != nil {
		prev = old.Data.Thunk
	}
	if prev == nil || prev.fn != cur.fn || len(prev.Args) != len(cur.Args) {
		copyToThunk(cur.Render(cur.Args), thunk)
		return
	}
	for i := range cur.Args {
		if !argEqual(prev.Args[i], cur.Args[i]) {
			copyToThunk(cur.Render(cur.Args), thunk)
			return
		}
	}
	copyToThunk(old, thunk)
}

// copyToThunk makes thunk indistinguishable from src while keeping the
// thunk's own render state.
func copyToThunk(src, thunk *VNode) {
	td := thunk.Data.Thunk
	if src.Data == nil {
		src.Data = &Data{}
	}
	src.Data.Thunk = td
	thunk.Data = src.Data
	thunk.Children = src.Children
	thunk.Text = src.Text
	thunk.HasText = src.HasText
	thunk.Elm = src.Elm
}

func argEqual(a, b any) (eq bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	// Structs and arrays of interfaces pass Comparable but still panic
	// when the dynamic values are not comparable.
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
