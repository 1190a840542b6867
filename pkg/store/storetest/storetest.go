// Package storetest keeps a test suite run against every store.Store
// implementation.
package storetest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/store"
)

// TestStore runs the suite against st. st must be empty.
func TestStore(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		data, err := st.Load(ctx, "missing")
		if err != nil || data != nil {
			t.Fatalf("Load(missing) = %q, %v; want nil, nil", data, err)
		}
		if err := st.Delete(ctx, "missing"); err != nil {
			t.Fatalf("Delete(missing) = %v", err)
		}
	})

	t.Run("save load delete", func(t *testing.T) {
		if err := st.Save(ctx, "s1", []byte(`{"sel":"div"}`)); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
		if err := st.Save(ctx, "s1", []byte(`{"sel":"p"}`)); err != nil {
			t.Fatalf("Save() overwrite error: %v", err)
		}
		data, err := st.Load(ctx, "s1")
		if err != nil || string(data) != `{"sel":"p"}` {
			t.Fatalf("Load() = %q, %v", data, err)
		}
		if err := st.Delete(ctx, "s1"); err != nil {
			t.Fatalf("Delete() error: %v", err)
		}
		if data, _ := st.Load(ctx, "s1"); data != nil {
			t.Fatalf("Load() after Delete = %q", data)
		}
	})

	t.Run("caller buffer is not retained", func(t *testing.T) {
		buf := []byte("abc")
		if err := st.Save(ctx, "buf", buf); err != nil {
			t.Fatal(err)
		}
		buf[0] = 'x'
		data, _ := st.Load(ctx, "buf")
		if string(data) != "abc" {
			t.Fatalf("Load() = %q, want abc", data)
		}
		data[1] = 'y'
		again, _ := st.Load(ctx, "buf")
		if string(again) != "abc" {
			t.Fatalf("Load() after mutating result = %q, want abc", again)
		}
		st.Delete(ctx, "buf")
	})

	t.Run("list", func(t *testing.T) {
		for _, id := range []string{"b", "a", "c.1"} {
			if err := st.Save(ctx, id, []byte("{}")); err != nil {
				t.Fatal(err)
			}
		}
		ids, err := st.List(ctx)
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if diff := cmp.Diff([]string{"a", "b", "c.1"}, ids); diff != "" {
			t.Fatalf("List() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, id := range []string{"", "a/b", "..", "sp ace"} {
			if err := st.Save(ctx, id, nil); !errors.HasCode(err, errors.CodeInvalidRequest) {
				t.Errorf("Save(%q) = %v, want %s", id, err, errors.CodeInvalidRequest)
			}
			if _, err := st.Load(ctx, id); !errors.HasCode(err, errors.CodeInvalidRequest) {
				t.Errorf("Load(%q) = %v, want %s", id, err, errors.CodeInvalidRequest)
			}
		}
	})
}
