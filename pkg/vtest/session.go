package vtest

import (
	"context"
	"errors"

	"github.com/vango-dev/vdomkit/pkg/snapshot"
)

// Common errors for restart simulation.
var (
	ErrNothingPatched   = errors.New("nothing patched yet")
	ErrSnapshotNotFound = errors.New("snapshot not found in store")
)

// SimulateRestart simulates a process restart: the current tree goes
// through the snapshot codec and the store, and is patched into a fresh
// document with fresh modules state. Hooks and thunk state do not survive,
// as with a real restart.
//
// Example:
//
//	h.Patch(view(state))
//	if err := h.SimulateRestart(); err != nil {
//	    t.Fatal(err)
//	}
//	h.Patch(view(next))
//	h.ExpectNoCreates()
func (h *Harness) SimulateRestart() error {
	if h.Tree == nil {
		return ErrNothingPatched
	}
	ctx := context.Background()
	st := h.builder.store

	data, err := snapshot.Encode(h.Tree)
	if err != nil {
		return err
	}
	if err := st.Save(ctx, h.builder.id, data); err != nil {
		return err
	}

	stored, err := st.Load(ctx, h.builder.id)
	if err != nil {
		return err
	}
	if stored == nil {
		return ErrSnapshotNotFound
	}
	tree, err := snapshot.Decode(stored)
	if err != nil {
		return err
	}

	h.reset()
	h.Patch(tree)
	return nil
}
