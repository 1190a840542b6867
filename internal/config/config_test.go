package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/vdomkit/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, BackendMemory)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  shutdownTimeout: 2s
store:
  backend: bolt
  bolt:
    path: data/snapshots.db
metrics:
  enabled: false
log:
  level: debug
  format: json
`)

	cfg, err := Load(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := New()
	want.Server.Addr = "127.0.0.1:9000"
	want.Server.ShutdownTimeout = 2 * time.Second
	want.Store.Backend = BackendBolt
	want.Store.Bolt.Path = filepath.Join(filepath.Dir(path), "data/snapshots.db")
	want.Metrics.Enabled = false
	want.Log = LogConfig{Level: "debug", Format: "json"}

	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Path() != path || cfg.Dir() != filepath.Dir(path) {
		t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr || cfg.Store.Backend != BackendMemory {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.HasCode(err, errors.CodeConfigNotFound) {
		t.Fatalf("expected %s, got %v", errors.CodeConfigNotFound, err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"unknown key", "server:\n  addr: x\n  port: 80\n", 3},
		{"bad duration", "server:\n  readTimeout: soon\n", 2},
		{"not yaml", "server: [\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadFile(path)
			if !errors.HasCode(err, errors.CodeInvalidConfig) {
				t.Fatalf("expected %s, got %v", errors.CodeInvalidConfig, err)
			}
			if tt.wantLine == 0 {
				return
			}
			verr := errors.FromError(err, "")
			if verr.Location == nil || verr.Location.Line != tt.wantLine {
				t.Fatalf("Location = %v, want line %d", verr.Location, tt.wantLine)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, errors.CodeInvalidConfig},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, errors.CodeUnknownBackend},
		{"bolt without path", func(c *Config) { c.Store.Backend = BackendBolt; c.Store.Bolt.Path = "" }, errors.CodeInvalidConfig},
		{"s3 without bucket", func(c *Config) { c.Store.Backend = BackendS3 }, errors.CodeInvalidConfig},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, errors.CodeInvalidConfig},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, errors.CodeInvalidConfig},
		{"s3 ok", func(c *Config) { c.Store.Backend = BackendS3; c.Store.S3.Bucket = "b" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Fatalf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvAddr: ":7000", EnvLogLevel: "warn"}
	cfg := New()
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	if cfg.Server.Addr != ":7000" || cfg.Log.Level != "warn" {
		t.Errorf("env not applied: %+v %+v", cfg.Server, cfg.Log)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Store.Backend = BackendS3
	cfg.Store.S3 = S3Config{Bucket: "b", Prefix: "p/", PathStyle: true}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	if !Exists(dir) {
		t.Fatal("Exists() = false after SaveTo")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	// The default bolt path is resolved against the config directory.
	cfg.Store.Bolt.Path = filepath.Join(dir, DefaultBoltPath)
	if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("unexpected output %q", out)
	}

	if lvl, err := (LogConfig{Level: "debug"}).SlogLevel(); err != nil || lvl != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v", lvl, err)
	}
}
