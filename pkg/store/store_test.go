package store_test

import (
	"path/filepath"
	"testing"

	"github.com/vango-dev/vdomkit/internal/config"
	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/store"
	"github.com/vango-dev/vdomkit/pkg/store/storetest"
)

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"abc", true},
		{"a.b_c-1", true},
		{"", false},
		{".", false},
		{"..", false},
		{"...", true},
		{"a/b", false},
		{"a b", false},
		{"é", false},
	}
	for _, tt := range tests {
		if got := store.ValidID(tt.id); got != tt.want {
			t.Errorf("store.ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'a'
	}
	if store.ValidID(string(long)) {
		t.Error("ValidID accepted a 129 byte ID")
	}
	if !store.ValidID(string(long[:128])) {
		t.Error("ValidID rejected a 128 byte ID")
	}
}

func TestMemoryStore(t *testing.T) {
	storetest.TestStore(t, store.NewMemoryStore())
}

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		st, err := store.Open(config.Store{})
		if err != nil {
			t.Fatalf("store.Open() error: %v", err)
		}
		defer st.Close()
		if _, ok := st.(*store.MemoryStore); !ok {
			t.Fatalf("store.Open() = %T, want *store.MemoryStore", st)
		}
	})

	t.Run("bolt", func(t *testing.T) {
		cfg := config.Store{Backend: config.BackendBolt}
		cfg.Bolt.Path = filepath.Join(t.TempDir(), "snap.db")
		st, err := store.Open(cfg)
		if err != nil {
			t.Fatalf("store.Open() error: %v", err)
		}
		defer st.Close()
		if _, ok := st.(*store.BoltStore); !ok {
			t.Fatalf("store.Open() = %T, want *store.BoltStore", st)
		}
	})

	t.Run("s3", func(t *testing.T) {
		cfg := config.Store{Backend: config.BackendS3}
		cfg.S3.Bucket = "snaps"
		cfg.S3.Region = "us-east-1"
		st, err := store.Open(cfg)
		if err != nil {
			t.Fatalf("store.Open() error: %v", err)
		}
		if _, ok := st.(*store.S3Store); !ok {
			t.Fatalf("store.Open() = %T, want *store.S3Store", st)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := store.Open(config.Store{Backend: "redis"})
		if !errors.HasCode(err, errors.CodeUnknownBackend) {
			t.Fatalf("store.Open() error = %v, want %s", err, errors.CodeUnknownBackend)
		}
	})
}
